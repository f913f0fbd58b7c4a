package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dispatch/internal/docstore"
)

// Store is a PostgreSQL implementation of docstore.Store. Every collection
// lives in one JSONB table keyed by (collection, id).
type Store struct {
	q Querier
}

// NewStore creates a new PostgreSQL document store.
func NewStore(db *sql.DB) *Store {
	return &Store{q: db}
}

// NewStoreWithTx creates a document store using a transaction.
func NewStoreWithTx(tx *sql.Tx) *Store {
	return &Store{q: tx}
}

// List returns every document in the collection, oldest first.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at, id`
	rows, err := s.q.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		fields, err := decodeFields(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, docstore.Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`

	var data []byte
	err := s.q.QueryRowContext(ctx, query, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}

	fields, err := decodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return &docstore.Document{ID: id, Fields: fields}, nil
}

// Add inserts a new document under a generated UUID.
func (s *Store) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	data, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := s.q.ExecContext(ctx, query, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges fields into the stored document with the JSONB || operator.
func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Fields) error {
	data, err := encodeFields(fields)
	if err != nil {
		return err
	}

	query := `UPDATE documents SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`
	result, err := s.q.ExecContext(ctx, query, collection, id, data)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return docstore.ErrNotFound
	}

	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	_, err := s.q.ExecContext(ctx, query, collection, id)
	return err
}

// encodeFields returns the JSON text of fields. lib/pq would send a []byte
// argument as bytea, so the text form is passed instead.
func encodeFields(fields docstore.Fields) (string, error) {
	if fields == nil {
		fields = docstore.Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

func decodeFields(data []byte) (docstore.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	fields := docstore.Fields{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

var _ docstore.Store = (*Store)(nil)
