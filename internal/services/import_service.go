package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gearscan/internal/domain"
	"gearscan/internal/logging"
	"gearscan/internal/ports"
)

// ImportService pulls server-owned sessions into fresh local copies
type ImportService struct {
	now    func() time.Time
	remote ports.RemoteSessionService
	repo   ports.SessionRepository
}

// NewImportService creates a new ImportService. A nil now falls back to UTC
// wall time.
func NewImportService(repo ports.SessionRepository, remote ports.RemoteSessionService, now func() time.Time) *ImportService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ImportService{
		now:    now,
		remote: remote,
		repo:   repo,
	}
}

// ImportFromServer fetches a remote session and creates a new local session
// from it: fresh local id, items copied verbatim, already clean, and made
// active. This is a one-time snapshot copy; later local edits diverge and the
// next sync overwrites the remote version (last-write-wins).
func (s *ImportService) ImportFromServer(ctx context.Context, remoteID string) (*domain.Session, error) {
	remote, err := s.remote.Get(ctx, remoteID)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Dirty:            false,
		ID:               uuid.New().String(),
		Items:            append([]domain.SessionItem(nil), remote.Items...),
		Name:             remote.Name,
		RemoteID:         remote.ID,
		SyncState:        domain.SyncStateClean,
		SyncedWithServer: true,
		UpdatedAt:        s.now(),
	}

	if err := s.repo.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to store imported session: %w", err)
	}
	if err := s.repo.SetActive(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to activate imported session: %w", err)
	}

	logging.Logger.Info("session imported",
		"session", session.ID,
		"remote_id", remote.ID,
		"items", len(session.Items))
	return session, nil
}
