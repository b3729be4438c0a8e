package domain

import (
	"time"
)

// SyncState represents the reconciliation state of a session
type SyncState string

const (
	SyncStateClean      SyncState = "clean"
	SyncStateDirty      SyncState = "dirty"
	SyncStateSyncing    SyncState = "syncing"
	SyncStateSyncFailed SyncState = "sync_failed"
)

// ItemKey is the canonical identity of a session item. Serialized items are
// identified by (EquipmentID, SerialNumber); non-serialized items by
// (EquipmentID, "").
type ItemKey struct {
	EquipmentID  int64
	SerialNumber string
}

// SessionItem is one row of a scan session. A non-empty SerialNumber marks the
// item as serialized: it refers to a specific physical unit and its quantity is
// always exactly 1.
type SessionItem struct {
	Barcode      string
	CategoryID   *int64
	CategoryName string
	EquipmentID  int64
	Name         string
	Quantity     int
	SerialNumber string
}

// Key returns the canonical identity of the item
func (i SessionItem) Key() ItemKey {
	return ItemKey{EquipmentID: i.EquipmentID, SerialNumber: i.SerialNumber}
}

// Serialized reports whether the item refers to a specific physical unit
func (i SessionItem) Serialized() bool {
	return i.SerialNumber != ""
}

// Session is a client-held collection of scanned equipment items awaiting
// conversion into a project or disposal (domain entity).
//
// Dirty is true whenever local state has changes not yet confirmed by the
// remote store. RemoteID is set after the first successful sync or import; a
// session with RemoteID set represents a resource the remote store is
// authoritative for.
type Session struct {
	Dirty            bool
	ID               string
	Items            []SessionItem
	Name             string
	RemoteID         string
	Revision         int64
	SyncError        string
	SyncState        SyncState
	SyncedWithServer bool
	UpdatedAt        time.Time

	index map[ItemKey]int
}

// NewSession creates a locally-owned session: empty, dirty, never synced
func NewSession(id, name string, now time.Time) *Session {
	return &Session{
		Dirty:     true,
		ID:        id,
		Name:      name,
		Revision:  1,
		SyncState: SyncStateDirty,
		UpdatedAt: now,
	}
}

// ensureIndex builds the identity index lazily. Sessions loaded from storage
// arrive without one; all mutation paths keep it current afterwards.
func (s *Session) ensureIndex() {
	if s.index != nil {
		return
	}
	s.index = make(map[ItemKey]int, len(s.Items))
	for i, item := range s.Items {
		s.index[item.Key()] = i
	}
}

// FindItem returns the position of the item with the given identity
func (s *Session) FindItem(key ItemKey) (int, bool) {
	s.ensureIndex()
	i, ok := s.index[key]
	return i, ok
}

// Clone returns a deep copy safe for independent mutation
func (s *Session) Clone() *Session {
	c := *s
	c.Items = append([]SessionItem(nil), s.Items...)
	c.index = nil
	return &c
}

// Rename updates the session's user-assigned label
func (s *Session) Rename(name string, now time.Time) {
	s.Name = name
	s.touch(now)
}

// touch records a local mutation: bumps the revision and timestamp, marks the
// session dirty and clears any stale validation rejection since the payload
// has changed. Revision changes on every mutation even when timestamps
// collide, so concurrent-write detection never depends on clock resolution.
func (s *Session) touch(now time.Time) {
	s.Dirty = true
	s.Revision++
	s.SyncState = SyncStateDirty
	s.SyncError = ""
	s.UpdatedAt = now
}
