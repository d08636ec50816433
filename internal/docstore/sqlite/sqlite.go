// Package sqlite is the single-file document store driver built on the pure-Go
// modernc.org/sqlite engine.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"go-fridge-tracker/internal/docstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	data       TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection_created ON documents (collection, created_at);
`

type Store struct {
	db *sql.DB

	// mu serializes writers so created_at stays strictly increasing.
	mu    sync.Mutex
	clock *docstore.Clock
}

// Open opens path (":memory:" for an ephemeral database) and applies the schema.
func Open(ctx context.Context, path string, now func() time.Time) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, clock: docstore.NewClock(now)}, nil
}

func (s *Store) Driver() docstore.Driver { return docstore.DriverSQLite }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Create(ctx context.Context, collection string, fields docstore.Fields) (docstore.Document, error) {
	payload, err := docstore.Encode(fields)
	if err != nil {
		return docstore.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := docstore.Document{ID: uuid.NewString(), Data: payload, CreatedAt: s.clock.Next()}
	stamp := doc.CreatedAt.UnixNano()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, doc.ID, string(payload), stamp, stamp); err != nil {
		return docstore.Document{}, fmt.Errorf("insert %s document: %w", collection, err)
	}
	return doc, nil
}

func (s *Store) Get(ctx context.Context, collection string, id string) (docstore.Document, error) {
	var (
		data  string
		stamp int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, created_at FROM documents WHERE collection = ? AND id = ?`,
		collection, id).Scan(&data, &stamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("get %s document: %w", collection, err)
	}
	return docstore.Document{ID: id, Data: []byte(data), CreatedAt: time.Unix(0, stamp).UTC()}, nil
}

func (s *Store) Merge(ctx context.Context, collection string, id string, fields docstore.Fields) error {
	patch, err := docstore.Encode(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = json_patch(data, ?), updated_at = ?
		 WHERE collection = ? AND id = ?`,
		string(patch), time.Now().UnixNano(), collection, id)
	if err != nil {
		return fmt.Errorf("merge %s document: %w", collection, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("merge %s document: %w", collection, err)
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return fmt.Errorf("delete %s document: %w", collection, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, created_at FROM documents
		 WHERE collection = ?
		 ORDER BY created_at ASC, id ASC`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", collection, err)
	}
	return collect(rows)
}

func (s *Store) Range(ctx context.Context, collection string, from time.Time, to time.Time) ([]docstore.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, created_at FROM documents
		 WHERE collection = ? AND created_at >= ? AND created_at <= ?
		 ORDER BY created_at ASC, id ASC`,
		collection, from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("range %s documents: %w", collection, err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]docstore.Document, error) {
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		var (
			doc   docstore.Document
			data  string
			stamp int64
		)
		if err := rows.Scan(&doc.ID, &data, &stamp); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.Data = []byte(data)
		doc.CreatedAt = time.Unix(0, stamp).UTC()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}
