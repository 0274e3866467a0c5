package activity

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore implements Store using in-memory slices.
// Intended for demos and testing — no database required.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(_ context.Context, entry Entry) error {
	if err := validate(entry); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.EventID == entry.EventID {
			return nil
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, opts QueryOptions) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Entry
	for _, e := range s.entries {
		if opts.FormID != "" && e.FormID != opts.FormID {
			continue
		}
		if opts.EventType != "" && e.EventType != opts.EventType {
			continue
		}
		if opts.Since != nil && e.OccurredAt.Before(*opts.Since) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OccurredAt.After(matched[j].OccurredAt)
	})
	if limit := normalizeLimit(opts.Limit); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
