package domain

// KeyValueStore is the synchronous string store the watchlist persists into.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error

	Close() error
}
