package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "http://www.omdbapi.com/"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client implements domain.SearchClient for the OMDb API
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing searches at perSecond requests per second.
// Zero or negative means unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid gateway base URL %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL: u,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// searchURL builds <base>?apikey=<key>&s=<title>, keeping any query already on base
func (c *Client) searchURL(title string) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("s", title)
	u.RawQuery = q.Encode()
	return u.String()
}

// SearchTitle performs one title search. No retries are attempted.
func (c *Client) SearchTitle(ctx context.Context, title string) (domain.SearchResult, error) {
	if c.apiKey == "" {
		return domain.SearchResult{}, domain.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.SearchResult{}, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.searchURL(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("omdb request", "title", title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "error", err)
		return domain.SearchResult{}, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	// OMDb reports errors such as an invalid key as JSON with a non-200
	// status, so the body is decoded before the status is considered.
	var sr SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		if resp.StatusCode != http.StatusOK {
			c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
			return domain.SearchResult{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return domain.SearchResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	result, err := mapSearchResponse(sr)
	if err != nil {
		if resp.StatusCode != http.StatusOK && errors.Is(err, domain.ErrMalformedResponse) {
			return domain.SearchResult{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return domain.SearchResult{}, err
	}

	c.logger.Debug("omdb search complete",
		"title", title,
		"found", result.Found,
		"results", len(result.Films),
		"status", resp.StatusCode,
	)
	return result, nil
}
