package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// MemoryStore keeps layouts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]layout.Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]layout.Layout)}
}

// Save stores a copy of l.
func (s *MemoryStore) Save(ctx context.Context, l *layout.Layout) (string, error) {
	prepare(l)
	cp := *l
	cp.Words = slices.Clone(l.Words)
	cp.Skipped = slices.Clone(l.Skipped)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[cp.ID] = cp
	return cp.ID, nil
}

// Get returns the layout with id.
func (s *MemoryStore) Get(ctx context.Context, id string) (layout.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return layout.Layout{}, ErrNotFound
	}
	l.Words = slices.Clone(l.Words)
	l.Skipped = slices.Clone(l.Skipped)
	return l, nil
}

// Delete removes the layout with id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return ErrNotFound
	}
	delete(s.layouts, id)
	return nil
}

// List returns the newest layouts first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	out := make([]Summary, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, summarize(l))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
