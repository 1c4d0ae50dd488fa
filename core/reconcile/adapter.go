package reconcile

import "context"

// Adapter defines the model-specific half of a reconciliation.
// The engine owns the diff; the adapter knows how to read and write one model
// inside whatever unit of work (usually a transaction) it was built for.
type Adapter[T any] interface {
	// Name returns the unique name of this adapter (e.g., "stored_items").
	Name() string

	// Key returns the identity of an item. Keys must be non-empty.
	Key(item T) string

	// LoadIndex loads all persisted items indexed by key.
	// Implementations should use one batch query with minimal columns.
	LoadIndex(ctx context.Context) (map[string]T, error)

	// SameIdentity reports whether incoming may be written over stored in place.
	// When false the stored row is deleted and incoming is inserted.
	SameIdentity(stored, incoming T) bool

	// Equal reports whether incoming carries no observable change over stored.
	Equal(stored, incoming T) bool
}

// Mutator is implemented by adapters that can apply a plan.
type Mutator[T any] interface {
	// Insert persists a new item.
	Insert(ctx context.Context, item T) error

	// Update overwrites the mutable fields of an existing item.
	Update(ctx context.Context, stored, incoming T) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys []string) error
}

// BatchInserter is an optional Mutator extension used when present.
type BatchInserter[T any] interface {
	InsertBatch(ctx context.Context, items []T) error
}
