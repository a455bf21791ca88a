package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketKV = []byte("kv")
)

// KVStore implements domain.KeyValueStore using BoltDB.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value read or written
	cache map[string]string
}

// NewMemoryStore returns a store that keeps values in memory only.
func NewMemoryStore() *KVStore {
	return &KVStore{cache: make(map[string]string)}
}

// NewKVStore opens (or creates) the BoltDB file at dbPath.
// An empty path selects memory-only mode.
func NewKVStore(dbPath string) (*KVStore, error) {
	if dbPath == "" {
		return NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// A held lock means another marquee process owns the watchlist
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKV)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string]string)}, nil
}

// Close releases the database file
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key
func (s *KVStore) Get(key string) (string, bool) {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var (
		value string
		found bool
	)
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		// Bolt memory is only valid inside the transaction; string() copies
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})

	if !found {
		return "", false
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true
}

// Set writes value under key. The write is committed before Set returns.
func (s *KVStore) Set(key, value string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketKV).Put([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return nil
}
