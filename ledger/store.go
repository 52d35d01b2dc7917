/*
store.go - Collaborator interfaces for catalogs and persistence

PURPOSE:
  Defines the boundary between the registry and whatever holds its
  data. The core never touches files or databases directly; it talks
  to a Catalog for keyed storage and to a SnapshotStore for whole-state
  persistence.

CATALOG CONTRACT:
  Add is insert-if-absent: a duplicate key returns false and never
  overwrites. List returns values in insertion order, which the report
  engine relies on for stable tie-breaking.

IMPLEMENTATIONS:
  - ledger/store/memory.go: in-memory catalog (the default)
  - ledger/store/file.go:   line-oriented file load/save
  - store/sqlite/:          SQLite-backed snapshot store
*/
package ledger

import "context"

// Catalog is a keyed store with insert-if-absent semantics.
type Catalog[K comparable, V any] interface {
	// Add inserts value under key if absent. Returns false on a
	// duplicate key, leaving the existing value in place.
	Add(key K, value V) bool

	// Get returns the value for key, and whether it was present.
	Get(key K) (V, bool)

	// List returns all values in insertion order.
	List() []V

	// Len returns the number of stored values.
	Len() int
}

// Snapshot is a consistent copy of the registry's collections, taken
// under the registry lock. Report reads and persistence both work from
// snapshots so they never observe a sale mid-finalization.
type Snapshot struct {
	Sales     []*Sale
	Customers []Customer
	Products  []*Product
}

// SnapshotStore persists and restores full registry state.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LoadSnapshot(ctx context.Context) (Snapshot, error)
}
