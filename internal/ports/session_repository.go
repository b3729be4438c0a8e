package ports

import (
	"context"

	"gearscan/internal/domain"
)

// SessionReader reads session data
type SessionReader interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
}

// SessionWriter persists and deletes sessions. Save must be durable before it
// returns; a failed Save leaves the stored session untouched.
//
// SaveExpecting writes the session only when the stored revision still equals
// expected, returning false (and writing nothing) when a concurrent write got
// there first. This is the compare-and-swap the sync engine relies on so a
// mutation landing mid-sync is never overwritten.
type SessionWriter interface {
	Save(ctx context.Context, session domain.Session) error
	SaveExpecting(ctx context.Context, session domain.Session, expected int64) (bool, error)
	Delete(ctx context.Context, id string) error
}

// ActiveSessionTracker owns the persisted active-session pointer
type ActiveSessionTracker interface {
	GetActive(ctx context.Context) (string, error)
	SetActive(ctx context.Context, id string) error
	ClearActive(ctx context.Context) error
}

// SessionRepository is the composite interface
type SessionRepository interface {
	SessionReader
	SessionWriter
	ActiveSessionTracker
	Close() error
}
