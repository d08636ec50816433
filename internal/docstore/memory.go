package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Used by tests and the memory driver.
type MemoryStore struct {
	mu          sync.RWMutex
	clock       *Clock
	collections map[string]map[string]Document
}

// NewMemory returns an empty store. now may be nil.
func NewMemory(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		clock:       NewClock(now),
		collections: make(map[string]map[string]Document),
	}
}

func (s *MemoryStore) Driver() Driver { return DriverMemory }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Create(_ context.Context, collection string, fields Fields) (Document, error) {
	payload, err := Encode(fields)
	if err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]Document)
		s.collections[collection] = docs
	}

	doc := Document{ID: uuid.NewString(), Data: payload, CreatedAt: s.clock.Next()}
	docs[doc.ID] = doc
	return cloneDocument(doc), nil
}

func (s *MemoryStore) Get(_ context.Context, collection string, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (s *MemoryStore) Merge(_ context.Context, collection string, id string, fields Fields) error {
	patch, err := Encode(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	merged, err := MergeJSON(doc.Data, patch)
	if err != nil {
		return err
	}
	doc.Data = merged
	s.collections[collection][id] = doc
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(collection, func(Document) bool { return true }), nil
}

func (s *MemoryStore) Range(_ context.Context, collection string, from time.Time, to time.Time) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(collection, func(doc Document) bool {
		return !doc.CreatedAt.Before(from) && !doc.CreatedAt.After(to)
	}), nil
}

// Seed stores a document with an explicit timestamp. Test helper for backdated change-log entries.
func (s *MemoryStore) Seed(collection string, createdAt time.Time, fields Fields) (Document, error) {
	payload, err := Encode(fields)
	if err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]Document)
		s.collections[collection] = docs
	}
	doc := Document{ID: uuid.NewString(), Data: payload, CreatedAt: createdAt.UTC()}
	docs[doc.ID] = doc
	return cloneDocument(doc), nil
}

func (s *MemoryStore) sorted(collection string, keep func(Document) bool) []Document {
	out := make([]Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		if keep(doc) {
			out = append(out, cloneDocument(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneDocument(doc Document) Document {
	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	doc.Data = data
	return doc
}
