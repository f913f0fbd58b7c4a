package document

import (
	"errors"

	"dispatch/internal/docstore"
	"dispatch/internal/repository"
)

// translateError maps document store failures onto the repository taxonomy.
func translateError(op, collection string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return repository.ErrNotFound
	}
	return &repository.StorageError{Op: op, Collection: collection, Err: err}
}
