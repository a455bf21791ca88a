package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrGatewayUnavailable indicates the movie metadata API could not be reached
	ErrGatewayUnavailable = errors.New("movie gateway is unreachable")

	// ErrMalformedResponse indicates the gateway answered with a body we cannot interpret
	ErrMalformedResponse = errors.New("malformed gateway response")

	// ErrMissingAPIKey indicates no gateway API key is configured
	ErrMissingAPIKey = errors.New("gateway API key is not configured")

	// ErrNotInWatchlist indicates the requested film is not on the watchlist
	ErrNotInWatchlist = errors.New("film not in watchlist")
)
