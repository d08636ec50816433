// Package postgres stores documents as JSONB rows in a single table keyed by
// (collection, id).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-fridge-tracker/internal/docstore"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Driver() docstore.Driver { return docstore.DriverPostgres }

// Close is a no-op; the pool is owned by database.DB.
func (s *Store) Close() error { return nil }

func (s *Store) Create(ctx context.Context, collection string, fields docstore.Fields) (docstore.Document, error) {
	payload, err := docstore.Encode(fields)
	if err != nil {
		return docstore.Document{}, err
	}

	doc := docstore.Document{Data: payload}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO documents (collection, data) VALUES ($1, $2::jsonb)
		 RETURNING id::text, created_at`,
		collection, payload).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("insert %s document: %w", collection, err)
	}
	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

func (s *Store) Get(ctx context.Context, collection string, id string) (docstore.Document, error) {
	doc := docstore.Document{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT data, created_at FROM documents WHERE collection = $1 AND id::text = $2`,
		collection, id).Scan(&doc.Data, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("get %s document: %w", collection, err)
	}
	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

func (s *Store) Merge(ctx context.Context, collection string, id string, fields docstore.Fields) error {
	patch, err := docstore.Encode(fields)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = clock_timestamp()
		 WHERE collection = $1 AND id::text = $2`,
		collection, id, patch)
	if err != nil {
		return fmt.Errorf("merge %s document: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id::text = $2`,
		collection, id); err != nil {
		return fmt.Errorf("delete %s document: %w", collection, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, data, created_at FROM documents
		 WHERE collection = $1
		 ORDER BY created_at ASC, id ASC`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", collection, err)
	}
	return collect(rows)
}

func (s *Store) Range(ctx context.Context, collection string, from time.Time, to time.Time) ([]docstore.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, data, created_at FROM documents
		 WHERE collection = $1 AND created_at >= $2 AND created_at <= $3
		 ORDER BY created_at ASC, id ASC`,
		collection, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("range %s documents: %w", collection, err)
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]docstore.Document, error) {
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		var doc docstore.Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.CreatedAt = doc.CreatedAt.UTC()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}
