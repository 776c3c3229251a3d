package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docask"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

var _ docask.HistoryService = (*HistoryService)(nil)

// HistoryService implements docask.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateEntry persists an entry, assigning ID and CreatedAt when empty.
func (s *HistoryService) CreateEntry(ctx context.Context, entry *docask.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	sources, err := json.Marshal(entry.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history_entries (id, session_id, query, sources, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Query, string(sources), entry.Answer,
		formatTime(entry.CreatedAt))
	var serr *sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode() == sqlite3.CONSTRAINT_UNIQUE {
		return docask.Errorf(docask.ECONFLICT, "history entry %s already exists", entry.ID)
	}
	return err
}

// FindEntries retrieves entries matching the filter in insertion order,
// newest first when filter.NewestFirst is set.
func (s *HistoryService) FindEntries(ctx context.Context, filter docask.HistoryFilter) ([]*docask.HistoryEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, session_id, query, sources, answer, created_at FROM history_entries WHERE 1=1")

	if filter.SessionID != nil {
		query.WriteString(" AND session_id = ?")
		args = append(args, *filter.SessionID)
	}

	if filter.NewestFirst {
		query.WriteString(" ORDER BY seq DESC")
	} else {
		query.WriteString(" ORDER BY seq ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*docask.HistoryEntry{}
	for rows.Next() {
		var e docask.HistoryEntry
		var sources, createdAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Query, &sources, &e.Answer, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sources), &e.Sources); err != nil {
			return nil, fmt.Errorf("failed to decode sources: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// DeleteEntries removes every entry of the session.
func (s *HistoryService) DeleteEntries(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history_entries WHERE session_id = ?", sessionID)
	return err
}
