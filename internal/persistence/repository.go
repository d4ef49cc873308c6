// Package persistence stores completed hunting sessions for the history
// view. The SQLite implementation is the default; the in-memory one backs
// tests and serves as a fallback when the database cannot be opened.
package persistence

import (
	"context"
	"time"

	"github.com/entropiahud/entropiahud/internal/session"
)

// SessionRecord is the persisted form of a finished session.
type SessionRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	EventCount int
	Snapshot   session.Snapshot
}

// SessionFilter narrows list queries.
type SessionFilter struct {
	FromTime *time.Time
	ToTime   *time.Time
	// Limit and Offset paginate the history list.
	// Limit == 0 means no limit (return all matching rows).
	Limit  int
	Offset int
}

type SessionRepository interface {
	// SaveSession inserts or replaces a record keyed by its ID.
	SaveSession(ctx context.Context, rec SessionRecord) error
	// GetSession returns nil, nil when the ID is unknown.
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
	// ListSessions returns matching records ordered by start time,
	// newest first.
	ListSessions(ctx context.Context, f SessionFilter) ([]SessionRecord, error)
	CountSessions(ctx context.Context, f SessionFilter) (int, error)
	DeleteSession(ctx context.Context, id string) error
}

func matchesFilter(rec SessionRecord, f SessionFilter) bool {
	if f.FromTime != nil && rec.StartedAt.Before(*f.FromTime) {
		return false
	}
	if f.ToTime != nil && rec.StartedAt.After(*f.ToTime) {
		return false
	}
	return true
}
