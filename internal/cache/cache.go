// Package cache wraps a badger key-value store with TTL-based memoization.
// Records are written whole and replaced whole on refresh; concurrent
// fetches for the same key may both run and redundantly overwrite each
// other, which is acceptable because results are idempotent per key within
// the TTL window.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Cache is a handle to the on-disk store. It is passed to collaborators
// explicitly rather than living as package state.
type Cache struct {
	db *badger.DB
}

// Open initializes the store at path.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	db, err := badger.Open(
		badger.DefaultOptions(path).
			WithNumVersionsToKeep(0).
			WithValueLogFileSize(1024 * 1024 * 100).
			WithLogger(&badgerLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to badger.Open: %w", err)
	}
	return &Cache{db: db}, nil
}

// Memoize retrieves a cached value for the specified cacheKey. If the value
// is present it is returned. Otherwise fn is called to compute the value,
// which is then stored with the specified TTL and returned. Expired entries
// are invisible to reads, so an expired key recomputes and replaces the
// record wholesale. If fn returns an error nothing is stored.
func Memoize[V any](c *Cache, cacheKey string, ttl time.Duration, fn func() (*V, error)) (*V, error) {

	value := new(V)

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			return err
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, value)
		})
		if err != nil {
			return fmt.Errorf("failed to json.Unmarshal: %w", err)
		}

		return nil
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	} else if err == nil {
		return value, nil
	}

	value, err = fn()
	if err != nil {
		return nil, err
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		valueJSONBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to json.Marshal: %w", err)
		}
		entry := badger.NewEntry([]byte(cacheKey), valueJSONBytes).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store on cache: %w", err)
	}

	return value, nil
}

// Close closes the store. It's crucial to call it to ensure all the pending
// updates make their way to disk. Calling Close multiple times would still
// only close the store once.
func (c *Cache) Close() error {
	return c.db.Close()
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(s string, i ...interface{}) {
	l.logger.Error(fmt.Sprintf(s, i...))
}

func (l *badgerLogger) Warningf(s string, i ...interface{}) {
	l.logger.Warn(fmt.Sprintf(s, i...))
}

func (l *badgerLogger) Infof(s string, i ...interface{}) {
	l.logger.Info(fmt.Sprintf(s, i...))
}

func (l *badgerLogger) Debugf(s string, i ...interface{}) {
	l.logger.Debug(fmt.Sprintf(s, i...))
}
