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

// SessionService owns the set of local sessions and the active-session
// pointer. All mutations follow load-mutate-save: a failed save leaves the
// durable state untouched, so in-memory rollback is implicit.
type SessionService struct {
	lookup ports.EquipmentLookup
	now    func() time.Time
	repo   ports.SessionRepository
}

// NewSessionService creates a new SessionService. A nil now falls back to
// UTC wall time.
func NewSessionService(repo ports.SessionRepository, lookup ports.EquipmentLookup, now func() time.Time) *SessionService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SessionService{
		lookup: lookup,
		now:    now,
		repo:   repo,
	}
}

// CreateSession allocates a new empty dirty session and makes it active
func (s *SessionService) CreateSession(ctx context.Context, name string) (*domain.Session, error) {
	session := domain.NewSession(uuid.New().String(), name, s.now())

	if err := s.repo.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.repo.SetActive(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	logging.Logger.Info("session created", "session", session.ID, "name", name)
	return session, nil
}

// GetSession loads one session by id
func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.repo.Get(ctx, id)
}

// ListSessions lists all local sessions
func (s *SessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.repo.List(ctx)
}

// ActiveSession returns the active session, or nil when none is set
func (s *SessionService) ActiveSession(ctx context.Context) (*domain.Session, error) {
	id, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.repo.Get(ctx, id)
}

// SetActiveSession makes the given session active
func (s *SessionService) SetActiveSession(ctx context.Context, id string) error {
	return s.repo.SetActive(ctx, id)
}

// DeleteSession removes a session locally. The remote copy, if any, is left
// alone; it expires on its own server-side retention window.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Info("session deleted", "session", id)
	return nil
}

// AddEquipment merges an equipment record into a session and persists the
// result. Duplicate serials leave the session untouched, including its dirty
// flag, and are reported through the outcome rather than an error.
func (s *SessionService) AddEquipment(ctx context.Context, sessionID string, rec domain.EquipmentRecord) (domain.MergeOutcome, *domain.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	outcome := session.AddEquipment(rec, s.now())
	if outcome == domain.OutcomeDuplicateSerial {
		logging.Logger.Debug("duplicate serial ignored",
			"session", sessionID,
			"equipment", rec.EquipmentID,
			"serial", rec.SerialNumber)
		return outcome, session, nil
	}

	if err := s.repo.Save(ctx, *session); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}

	logging.Logger.Debug("equipment merged",
		"session", sessionID,
		"equipment", rec.EquipmentID,
		"outcome", outcome)
	return outcome, session, nil
}

// ScanBarcode resolves a barcode through the equipment lookup collaborator
// and merges the result into the session.
func (s *SessionService) ScanBarcode(ctx context.Context, sessionID, barcode string) (domain.MergeOutcome, *domain.Session, error) {
	rec, err := s.lookup.LookupBarcode(ctx, barcode)
	if err != nil {
		return "", nil, err
	}
	return s.AddEquipment(ctx, sessionID, *rec)
}

// RemoveEquipment removes the item with the exact (equipmentID, serialNumber)
// identity. Removing an absent item is a no-op; the session is only persisted
// when something changed. Returns whether an item was removed.
func (s *SessionService) RemoveEquipment(ctx context.Context, sessionID string, equipmentID int64, serialNumber string) (bool, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}

	removed := session.RemoveEquipment(equipmentID, serialNumber, s.now())
	if !removed {
		return false, nil
	}

	if err := s.repo.Save(ctx, *session); err != nil {
		return false, fmt.Errorf("failed to persist session: %w", err)
	}
	return true, nil
}

// AdjustQuantity applies a delta to the non-serialized item for equipmentID.
// Driving the quantity to zero or below removes the item.
func (s *SessionService) AdjustQuantity(ctx context.Context, sessionID string, equipmentID int64, delta int) (*domain.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.AdjustQuantity(equipmentID, delta, s.now()); err != nil {
		return nil, err
	}
	if delta == 0 {
		return session, nil
	}

	if err := s.repo.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// RenameSession changes a session's label; like any other mutation it marks
// the session dirty for the next sync.
func (s *SessionService) RenameSession(ctx context.Context, sessionID, name string) (*domain.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Rename(name, s.now())

	if err := s.repo.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}
