package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
)

type ChangeLogRepository struct {
	store docstore.Store
}

func NewChangeLogRepository(store docstore.Store) *ChangeLogRepository {
	return &ChangeLogRepository{store: store}
}

// Append writes entry and returns it with the store-assigned id and time.
func (r *ChangeLogRepository) Append(ctx context.Context, entry model.LogEntry) (model.LogEntry, error) {
	doc, err := r.store.Create(ctx, docstore.ChangeLog, logEntryFields(entry))
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("append change log entry: %w", err)
	}
	return decodeLogEntry(doc)
}

// Range returns entries with from <= time <= to in ascending time order.
// Documents that cannot be decoded are skipped.
func (r *ChangeLogRepository) Range(ctx context.Context, from time.Time, to time.Time) ([]model.LogEntry, error) {
	docs, err := r.store.Range(ctx, docstore.ChangeLog, from, to)
	if err != nil {
		return nil, fmt.Errorf("range change log: %w", err)
	}
	return decodeAll(docs, docstore.ChangeLog, decodeLogEntry), nil
}

func decodeAll[T any](docs []docstore.Document, collection string, decodeFn func(docstore.Document) (T, error)) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decodeFn(doc)
		if err != nil {
			slog.Warn("skipping undecodable document", "collection", collection, "id", doc.ID, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
