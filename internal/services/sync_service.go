package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gearscan/internal/domain"
	"gearscan/internal/logging"
	"gearscan/internal/ports"
)

// Defaults for the background reconciliation loop
const (
	DefaultSyncInterval = 60 * time.Second
	DefaultSyncTimeout  = 10 * time.Second
)

// SyncService reconciles dirty sessions with the remote session store under
// last-write-wins. Per session the state machine is
// Clean -> Dirty -> Syncing -> Clean | SyncFailed, with SyncFailed becoming
// eligible again on the next tick. At most one sync is in flight per session;
// different sessions sync concurrently.
//
// Mutations are never blocked by an in-flight sync: the sync pushes the item
// snapshot taken when it started, and a mutation landing during the request
// simply keeps the session dirty so the next sync carries it.
type SyncService struct {
	clock    ports.Clock
	interval time.Duration
	remote   ports.RemoteSessionService
	repo     ports.SessionRepository
	timeout  time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSyncService creates a new SyncService. Zero interval or timeout fall
// back to the defaults.
func NewSyncService(repo ports.SessionRepository, remote ports.RemoteSessionService, clock ports.Clock, interval, timeout time.Duration) *SyncService {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	return &SyncService{
		clock:    clock,
		inFlight: make(map[string]bool),
		interval: interval,
		remote:   remote,
		repo:     repo,
		timeout:  timeout,
	}
}

// Run drives the timer loop until ctx is cancelled. Each tick scans all
// sessions and pushes the ones that are dirty and not already syncing.
func (s *SyncService) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	logging.Logger.Info("sync loop started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			logging.Logger.Info("sync loop stopped")
			return ctx.Err()
		case <-ticker.C():
			if err := s.SyncDirty(ctx); err != nil {
				logging.Logger.Warn("sync pass finished with failures", "error", err)
			}
		}
	}
}

// SyncDirty pushes every eligible dirty session once. Sessions flagged with a
// validation rejection are skipped; they need caller resolution, not retries.
// Failures of individual sessions do not stop the others.
func (s *SyncService) SyncDirty(ctx context.Context) error {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	// Sessions sync independently; one failure must not cancel the rest
	var g errgroup.Group

	var scheduled int
	for _, session := range sessions {
		if !session.Dirty || session.SyncError != "" {
			continue
		}
		scheduled++
		id := session.ID
		g.Go(func() error {
			return s.syncOne(ctx, id)
		})
	}

	if scheduled > 0 {
		logging.Logger.Debug("sync pass scheduled", "sessions", scheduled)
	}
	return g.Wait()
}

// SyncNow pushes a single session on demand. It is a no-op when a sync for
// that session is already in flight. Unlike the timer loop, an explicit
// SyncNow retries even a session flagged with a validation rejection.
func (s *SyncService) SyncNow(ctx context.Context, sessionID string) error {
	return s.syncOne(ctx, sessionID)
}

// begin marks a session as syncing; returns false when one is already running
func (s *SyncService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *SyncService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *SyncService) syncOne(ctx context.Context, sessionID string) error {
	if !s.begin(sessionID) {
		return nil
	}
	defer s.end(sessionID)

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.Dirty {
		return nil
	}

	// Snapshot the payload before the request. The revision identifies the
	// exact state being pushed: every write below is conditional on it (or on
	// a fresh reload), so a mutation landing at any point during the sync is
	// never overwritten.
	snapshotRev := session.Revision
	payload := ports.RemotePayload{
		Items: append([]domain.SessionItem(nil), session.Items...),
		Name:  session.Name,
	}

	// Best-effort syncing marker; losing the race only skips the marker
	session.SyncState = domain.SyncStateSyncing
	if _, err := s.repo.SaveExpecting(ctx, *session, snapshotRev); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to mark session syncing: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var remote *ports.RemoteSession
	var callErr error
	if session.RemoteID == "" {
		remote, callErr = s.remote.Create(callCtx, payload)
	} else {
		remote, callErr = s.remote.Update(callCtx, session.RemoteID, payload)
	}

	if callErr != nil {
		return s.recordFailure(ctx, sessionID, snapshotRev, callErr)
	}

	// Reload-and-swap loop: apply the sync result to the freshest state and
	// only persist if nothing moved in between.
	for {
		current, err := s.repo.Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				logging.Logger.Debug("session deleted during sync", "session", sessionID)
				return nil
			}
			return err
		}

		current.RemoteID = remote.ID
		current.SyncedWithServer = true
		current.SyncError = ""

		if current.Revision != snapshotRev {
			// Mutated while the request was in flight; the push reflected the
			// snapshot, so the session stays dirty and eligible for re-sync.
			current.SyncState = domain.SyncStateDirty
			logging.Logger.Debug("session re-dirtied during sync", "session", sessionID)
		} else {
			current.Dirty = false
			current.SyncState = domain.SyncStateClean
			current.UpdatedAt = s.clock.Now()
			logging.Logger.Info("session synced",
				"session", sessionID,
				"remote_id", remote.ID,
				"expires_at", remote.ExpiresAt)
		}

		ok, err := s.repo.SaveExpecting(ctx, *current, current.Revision)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil
			}
			return fmt.Errorf("failed to persist synced session: %w", err)
		}
		if ok {
			return nil
		}
		// A write slipped in between the reload and the swap; go again
	}
}

// recordFailure transitions the session to SyncFailed, leaving it dirty.
// Validation rejections are additionally pinned on the session so the timer
// loop stops retrying them until the payload changes or a caller intervenes;
// a rejection of an already-superseded payload is not pinned, since the new
// payload has not been judged. Writes go through the same reload-and-swap as
// the success path so concurrent mutations survive.
func (s *SyncService) recordFailure(ctx context.Context, sessionID string, snapshotRev int64, callErr error) error {
	for {
		session, err := s.repo.Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				logging.Logger.Debug("session deleted during sync", "session", sessionID)
				return nil
			}
			return err
		}

		session.SyncState = domain.SyncStateSyncFailed

		switch {
		case errors.Is(callErr, domain.ErrSyncValidation):
			if session.Revision == snapshotRev {
				session.SyncError = callErr.Error()
			}
			logging.Logger.Error("remote rejected session payload",
				"session", sessionID,
				"error", callErr)
		case errors.Is(callErr, domain.ErrRemoteSessionNotFound):
			// The remote copy expired or vanished; drop the stale id so the
			// next attempt creates a fresh remote session.
			session.RemoteID = ""
			logging.Logger.Warn("remote session expired, will recreate",
				"session", sessionID)
		default:
			logging.Logger.Warn("session sync failed, will retry",
				"session", sessionID,
				"error", callErr)
		}

		ok, err := s.repo.SaveExpecting(ctx, *session, session.Revision)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil
			}
			return fmt.Errorf("failed to record sync failure: %w", err)
		}
		if ok {
			return callErr
		}
	}
}
