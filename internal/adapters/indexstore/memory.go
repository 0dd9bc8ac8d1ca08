// Package indexstore provides append-only index store adapters.
// Adapters implementing ports.IndexStore. The store is the single shared
// mutable resource in the process: the ingestion loop is its sole writer,
// queries are concurrent readers.
package indexstore

import (
	"context"
	"sync"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
)

// MemoryStore is the in-memory append-only index.
type MemoryStore struct {
	mu      sync.RWMutex
	records []entities.IndexableRecord
}

// NewMemoryStore creates an empty in-memory index store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds one record to the end of the index.
func (s *MemoryStore) Append(ctx context.Context, rec entities.IndexableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

// Snapshot returns a stable point-in-time view of the index.
// Existing elements are never written again after append, so a capped
// three-index slice of the backing array is a consistent snapshot without
// copying.
func (s *MemoryStore) Snapshot(ctx context.Context) ([]entities.IndexableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	return s.records[:n:n], nil
}

// Len reports the current number of indexed records.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records), nil
}
