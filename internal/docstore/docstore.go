// Package docstore defines the contract of the remote document store that
// backs the drivers and cargos collections, plus an in-memory implementation.
package docstore

import (
	"context"
	"errors"
)

// Collection names.
const (
	CollectionDrivers = "drivers"
	CollectionCargos  = "cargos"
)

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Document is a schemaless record keyed by a store-generated identifier.
// The identifier is never part of Fields.
type Document struct {
	ID     string
	Fields Fields
}

// Store is the set of operations the persistence gateway needs from the
// document store. Filtering is done by callers; there is no query primitive.
type Store interface {
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Get returns a single document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Add writes a new document and returns the generated identifier.
	Add(ctx context.Context, collection string, fields Fields) (string, error)

	// Update writes the given fields over an existing document, keeping the
	// fields it does not mention. Returns ErrNotFound if the document is absent.
	Update(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// FreshReader is implemented by stores that can serve Get from a cache and
// can also bypass it.
type FreshReader interface {
	GetFresh(ctx context.Context, collection, id string) (*Document, error)
}

// GetFresh reads the document from the authoritative store, skipping any
// cache layered over it.
func GetFresh(ctx context.Context, store Store, collection, id string) (*Document, error) {
	if fr, ok := store.(FreshReader); ok {
		return fr.GetFresh(ctx, collection, id)
	}
	return store.Get(ctx, collection, id)
}
