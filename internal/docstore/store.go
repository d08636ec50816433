// Package docstore defines the document-collection contract the services are
// built on: generated ids, get/merge/delete, and inclusive range scans on the
// store-assigned creation timestamp.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Driver identifies a concrete document store backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

// Collection names.
const (
	ItemTypes   = "item_types"
	FridgeItems = "fridge_items"
	Cart        = "cart"
	ChangeLog   = "change_log"
)

var ErrNotFound = errors.New("docstore: document not found")

// Fields is a partial document. Values must be JSON-encodable.
type Fields map[string]any

// Document is a stored JSON object. CreatedAt is assigned by the store and is
// strictly increasing across writes to the same store.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
}

// Decode unmarshals the document payload into target.
func (d Document) Decode(target any) error {
	if len(d.Data) == 0 {
		return fmt.Errorf("decode document %s: empty payload", d.ID)
	}
	if err := json.Unmarshal(d.Data, target); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

type Store interface {
	// Create stores fields as a new document under a generated id.
	Create(ctx context.Context, collection string, fields Fields) (Document, error)
	// Get returns ErrNotFound when the id is unknown.
	Get(ctx context.Context, collection string, id string) (Document, error)
	// Merge overwrites the given top-level fields, keeping the rest. Returns ErrNotFound when the id is unknown.
	Merge(ctx context.Context, collection string, id string, fields Fields) error
	// Delete is idempotent.
	Delete(ctx context.Context, collection string, id string) error
	// List returns every document of the collection, oldest first.
	List(ctx context.Context, collection string) ([]Document, error)
	// Range returns documents with from <= CreatedAt <= to, oldest first.
	Range(ctx context.Context, collection string, from time.Time, to time.Time) ([]Document, error)
	Driver() Driver
	Close() error
}

// Encode marshals fields for persistence.
func Encode(fields Fields) ([]byte, error) {
	if fields == nil {
		fields = Fields{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return payload, nil
}

// MergeJSON applies the top-level keys of patch onto base.
func MergeJSON(base []byte, patch []byte) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if len(base) > 0 {
		if err := json.Unmarshal(base, &merged); err != nil {
			return nil, fmt.Errorf("decode base document: %w", err)
		}
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	for key, value := range overlay {
		merged[key] = value
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode merged document: %w", err)
	}
	return out, nil
}

// Clock hands out strictly increasing timestamps.
type Clock struct {
	now  func() time.Time
	last time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Next is not safe for concurrent use; callers hold their own lock.
func (c *Clock) Next() time.Time {
	t := c.now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}
