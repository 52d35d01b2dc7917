// Package store provides Catalog implementations and the line-oriented
// file persistence for the ledger.
package store

import "sync"

// =============================================================================
// MEMORY CATALOG - In-memory implementation (the default)
// =============================================================================

// Memory is an insert-if-absent keyed store that remembers insertion
// order for listing. Safe for concurrent use.
type Memory[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{items: make(map[K]V)}
}

// Add inserts value under key if absent. Duplicate keys report false
// and never overwrite.
func (m *Memory[K, V]) Add(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; exists {
		return false
	}
	m.items[key] = value
	m.order = append(m.order, key)
	return true
}

func (m *Memory[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

// List returns all values in insertion order.
func (m *Memory[K, V]) List() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values := make([]V, 0, len(m.order))
	for _, k := range m.order {
		values = append(values, m.items[k])
	}
	return values
}

func (m *Memory[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
