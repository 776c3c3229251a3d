package docask

import (
	"context"
	"time"
)

// HistoryEntry is one query and the answer rendered for it.
type HistoryEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Query     string    `json:"query"`
	Sources   []string  `json:"sources"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *HistoryEntry) Validate() error {
	if e.SessionID == "" {
		return Errorf(EINVALID, "history session ID required")
	}
	if e.Query == "" {
		return Errorf(EINVALID, "history query required")
	}
	if len(e.Sources) == 0 {
		return Errorf(EINVALID, "history sources required")
	}
	return nil
}

// HistoryService represents a service for recording query history.
type HistoryService interface {
	// CreateEntry appends an entry. ID and CreatedAt are assigned when empty.
	CreateEntry(ctx context.Context, entry *HistoryEntry) error

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)

	// DeleteEntries removes all entries of a session.
	DeleteEntries(ctx context.Context, sessionID string) error
}

// HistoryFilter represents a filter for FindEntries.
type HistoryFilter struct {
	SessionID *string `json:"sessionId"`

	// NewestFirst reverses the default oldest-first order.
	NewestFirst bool `json:"newestFirst"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
