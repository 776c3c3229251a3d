// Package memory implements docask services held in process memory.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/docask"
	"github.com/google/uuid"
)

// DefaultHistoryCapacity is the number of entries kept per HistoryService.
const DefaultHistoryCapacity = 100

var _ docask.HistoryService = (*HistoryService)(nil)

// HistoryService keeps the most recent entries in a fixed-size ring buffer.
// When full, the oldest entry is overwritten.
type HistoryService struct {
	mu   sync.Mutex
	buf  []*docask.HistoryEntry
	head int // index of the oldest entry
	n    int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewHistoryService creates a HistoryService holding up to capacity entries.
// A non-positive capacity selects DefaultHistoryCapacity.
func NewHistoryService(capacity int) *HistoryService {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &HistoryService{
		buf: make([]*docask.HistoryEntry, capacity),
		Now: time.Now,
	}
}

// CreateEntry appends a copy of entry, assigning ID and CreatedAt when empty.
func (s *HistoryService) CreateEntry(ctx context.Context, entry *docask.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(entry)
	if s.n < len(s.buf) {
		s.buf[(s.head+s.n)%len(s.buf)] = stored
		s.n++
		return nil
	}
	s.buf[s.head] = stored
	s.head = (s.head + 1) % len(s.buf)
	return nil
}

// FindEntries returns copies of matching entries, oldest first unless
// filter.NewestFirst is set.
func (s *HistoryService) FindEntries(ctx context.Context, filter docask.HistoryFilter) ([]*docask.HistoryEntry, error) {
	s.mu.Lock()
	all := s.ordered()
	s.mu.Unlock()

	entries := make([]*docask.HistoryEntry, 0, len(all))
	for _, e := range all {
		if filter.SessionID != nil && e.SessionID != *filter.SessionID {
			continue
		}
		entries = append(entries, clone(e))
	}
	if filter.NewestFirst {
		slices.Reverse(entries)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(entries) {
			return []*docask.HistoryEntry{}, nil
		}
		entries = entries[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(entries) {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

// DeleteEntries removes every entry of the session.
func (s *HistoryService) DeleteEntries(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := slices.DeleteFunc(s.ordered(), func(e *docask.HistoryEntry) bool {
		return e.SessionID == sessionID
	})
	clear(s.buf)
	copy(s.buf, kept)
	s.head = 0
	s.n = len(kept)
	return nil
}

// ordered returns the stored entries oldest first. Caller holds mu.
func (s *HistoryService) ordered() []*docask.HistoryEntry {
	out := make([]*docask.HistoryEntry, s.n)
	for i := range s.n {
		out[i] = s.buf[(s.head+i)%len(s.buf)]
	}
	return out
}

func clone(e *docask.HistoryEntry) *docask.HistoryEntry {
	c := *e
	c.Sources = slices.Clone(e.Sources)
	return &c
}
