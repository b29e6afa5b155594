// Package store provides ResultCache implementations.
package store

import (
	"context"
	"sync"

	"github.com/tigerkidtools/calc-engine/engine"
)

// =============================================================================
// MEMORY CACHE - In-memory implementation (default, and for tests)
// =============================================================================

// DefaultMaxEntries bounds the memory cache when no limit is given.
const DefaultMaxEntries = 4096

type Memory struct {
	mu         sync.RWMutex
	entries    map[string][]byte
	order      []string // insertion order, oldest first
	maxEntries int
}

var _ engine.ResultCache = (*Memory)(nil)

// NewMemory creates a cache holding at most maxEntries results.
// The oldest entry is evicted first.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		entries:    make(map[string][]byte),
		maxEntries: maxEntries,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)

	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = stored

	for len(m.order) > m.maxEntries {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	return nil
}

func (m *Memory) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	m.order = nil
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
