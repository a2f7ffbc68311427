// Package store provides a generic document-store abstraction over named,
// schemaless collections. The production implementation is backed by
// Firestore; an in-memory implementation exists for tests.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Record is a single document: its id plus the stored fields.
type Record struct {
	ID   string
	Data map[string]any
}

// OpError wraps a failed store operation with the collection and operation
// that produced it. Callers unwrap to reach the transport error; the store
// itself never retries.
type OpError struct {
	Collection string
	Op         string
	Err        error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Store is the document-store contract. Every write is durable before the
// call returns; there is no client-visible eventual-consistency window.
type Store interface {
	// Create persists data as a new document. An empty id means the store
	// assigns one. Creating with an existing id overwrites that document.
	Create(ctx context.Context, collection string, data map[string]any, id string) (Record, error)

	// GetByID returns a single document or ErrNotFound.
	GetByID(ctx context.Context, collection, id string) (Record, error)

	// GetAll returns the documents matching the given constraints, in
	// constraint order if an ordering was supplied.
	GetAll(ctx context.Context, collection string, constraints ...Constraint) ([]Record, error)

	// Update applies a partial update to an existing document. Updating a
	// missing document is an error.
	Update(ctx context.Context, collection, id string, data map[string]any) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// DeleteAll removes the given documents from one collection as a batch.
	DeleteAll(ctx context.Context, collection string, ids []string) error

	// IncrementCounter atomically adds delta to a numeric field (dotted
	// paths allowed), clamping the result at zero, and refreshes the
	// document's updatedAt. Returns the new counter value.
	IncrementCounter(ctx context.Context, collection, id, field string, delta int64) (int64, error)
}
