/*
cache.go - Result cache interface for memoized calculations

PURPOSE:
  Every calculation is a pure function of its input, so a response computed
  once can be served again for the same input. The cache holds encoded
  responses keyed by a hash of the canonical request. It never holds user
  state and losing it changes nothing but latency.

KEY INTERFACES:
  ResultCache: Get/Put/Purge of encoded results

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory map with an entry limit
  - store/sqlite/sqlite.go: SQLite table (":memory:" by default)

SEE ALSO:
  - api/handlers.go: Looks up and fills the cache around each calculator
*/
package engine

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// ResultCache stores encoded calculation results by key.
type ResultCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores a value, replacing any previous value for the key.
	Put(ctx context.Context, key string, value []byte) error

	// Purge drops every entry.
	Purge(ctx context.Context) error
}

// CacheKey derives a stable key from a calculator name and canonical input.
func CacheKey(calculator string, canonical []byte) string {
	return fmt.Sprintf("%s:%x", calculator, sha256.Sum256(canonical))
}

// NopCache is a ResultCache that never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Put(context.Context, string, []byte) error         { return nil }
func (NopCache) Purge(context.Context) error                       { return nil }
