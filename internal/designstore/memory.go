package designstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and demos.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]memoryEntry
}

type memoryEntry struct {
	design    []byte
	title     string
	updatedAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, formID string, design []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(design))
	copy(cp, design)
	s.designs[formID] = memoryEntry{
		design:    cp,
		title:     designTitle(design),
		updatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, formID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.designs[formID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(entry.design))
	copy(cp, entry.design)
	return cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.designs))
	for id, entry := range s.designs {
		out = append(out, Summary{FormID: id, Title: entry.title, UpdatedAt: entry.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].FormID < out[j].FormID
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[formID]; !ok {
		return ErrNotFound
	}
	delete(s.designs, formID)
	return nil
}
