package ports

import (
	"context"
	"time"

	"gearscan/internal/domain"
)

// RemotePayload is the snapshot of a session pushed to the remote store
type RemotePayload struct {
	Items []domain.SessionItem
	Name  string
}

// RemoteSession is a session as held by the remote store. ExpiresAt reflects
// the server-side retention window; after it passes the remote id becomes
// inaccessible.
type RemoteSession struct {
	ExpiresAt time.Time
	ID        string
	Items     []domain.SessionItem
	Name      string
}

// RemoteSessionService is the remote authoritative session store.
// Implementations map transport failures to domain.ErrSyncNetwork, payload
// rejections to domain.ErrSyncValidation and unknown/expired ids to
// domain.ErrRemoteSessionNotFound.
type RemoteSessionService interface {
	Create(ctx context.Context, payload RemotePayload) (*RemoteSession, error)
	Update(ctx context.Context, id string, payload RemotePayload) (*RemoteSession, error)
	Get(ctx context.Context, id string) (*RemoteSession, error)
}
