package services

import (
	"context"

	"gearscan/internal/domain"
	"gearscan/internal/logging"
	"gearscan/internal/ports"
)

// ExportService converts sessions into draft bookable-project payloads
type ExportService struct {
	repo ports.SessionReader
}

// NewExportService creates a new ExportService
func NewExportService(repo ports.SessionReader) *ExportService {
	return &ExportService{repo: repo}
}

// ToProjectDraft builds the project draft for a session. The export is
// non-destructive: the session is neither cleared nor archived here; archival
// is a separate caller-invoked action.
func (s *ExportService) ToProjectDraft(ctx context.Context, sessionID string) (*domain.ProjectDraft, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft, err := domain.ToProjectDraft(session)
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("session exported to project draft",
		"session", sessionID,
		"bookings", len(draft.Bookings))
	return draft, nil
}
