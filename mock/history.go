package mock

import (
	"context"

	"github.com/fwojciec/docask"
)

var _ docask.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of docask.HistoryService.
type HistoryService struct {
	CreateEntryFn   func(ctx context.Context, entry *docask.HistoryEntry) error
	FindEntriesFn   func(ctx context.Context, filter docask.HistoryFilter) ([]*docask.HistoryEntry, error)
	DeleteEntriesFn func(ctx context.Context, sessionID string) error
}

func (s *HistoryService) CreateEntry(ctx context.Context, entry *docask.HistoryEntry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *HistoryService) FindEntries(ctx context.Context, filter docask.HistoryFilter) ([]*docask.HistoryEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *HistoryService) DeleteEntries(ctx context.Context, sessionID string) error {
	return s.DeleteEntriesFn(ctx, sessionID)
}
