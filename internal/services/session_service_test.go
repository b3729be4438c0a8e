package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearscan/internal/domain"
)

var testTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newSessionService(repo *fakeRepo, lookup *fakeLookup) *SessionService {
	return NewSessionService(repo, lookup, func() time.Time { return testTime })
}

func TestCreateSession_PersistsAndActivates(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)

	session, err := service.CreateSession(context.Background(), "Tuesday shoot")
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	stored := repo.mustGet(session.ID)
	assert.Equal(t, "Tuesday shoot", stored.Name)
	assert.True(t, stored.Dirty, "new sessions start dirty")
	assert.Equal(t, domain.SyncStateDirty, stored.SyncState)
	assert.Empty(t, stored.Items)

	active, err := repo.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.ID, active)
}

func TestCreateSession_SaveFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = domain.ErrStorageWriteFailed
	service := newSessionService(repo, nil)

	_, err := service.CreateSession(context.Background(), "doomed")
	assert.ErrorIs(t, err, domain.ErrStorageWriteFailed)
}

func TestActiveSession_NoneSet(t *testing.T) {
	service := newSessionService(newFakeRepo(), nil)

	session, err := service.ActiveSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSetActiveSession_UnknownIDFails(t *testing.T) {
	service := newSessionService(newFakeRepo(), nil)

	err := service.SetActiveSession(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAddEquipment_PersistsMergedSession(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	rec := domain.EquipmentRecord{EquipmentID: 1, Barcode: "123", Name: "Camera"}
	outcome, _, err := service.AddEquipment(context.Background(), session.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeItemAdded, outcome)

	outcome, _, err = service.AddEquipment(context.Background(), session.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeQuantityIncremented, outcome)

	stored := repo.mustGet(session.ID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestAddEquipment_DuplicateSerialNotPersisted(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	rec := domain.EquipmentRecord{EquipmentID: 5, Name: "Lens", SerialNumber: "SN1"}
	_, _, err = service.AddEquipment(context.Background(), session.ID, rec)
	require.NoError(t, err)

	savesBefore := repo.saves
	outcome, returned, err := service.AddEquipment(context.Background(), session.ID, rec)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeDuplicateSerial, outcome)
	assert.Equal(t, savesBefore, repo.saves, "duplicate must not hit storage")
	require.Len(t, returned.Items, 1)
	assert.Equal(t, 1, returned.Items[0].Quantity)
}

func TestAddEquipment_UnknownSessionFails(t *testing.T) {
	service := newSessionService(newFakeRepo(), nil)

	_, _, err := service.AddEquipment(context.Background(), "ghost", domain.EquipmentRecord{EquipmentID: 1})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestScanBarcode_ResolvesThroughLookup(t *testing.T) {
	repo := newFakeRepo()
	lookup := &fakeLookup{records: map[string]domain.EquipmentRecord{
		"123": {EquipmentID: 1, Barcode: "123", Name: "Camera", CategoryName: "Cameras"},
	}}
	service := newSessionService(repo, lookup)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	outcome, returned, err := service.ScanBarcode(context.Background(), session.ID, "123")
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeItemAdded, outcome)
	require.Len(t, returned.Items, 1)
	assert.Equal(t, "Camera", returned.Items[0].Name)
	assert.Equal(t, "Cameras", returned.Items[0].CategoryName)
}

func TestScanBarcode_UnknownBarcode(t *testing.T) {
	repo := newFakeRepo()
	lookup := &fakeLookup{records: map[string]domain.EquipmentRecord{}}
	service := newSessionService(repo, lookup)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	_, _, err = service.ScanBarcode(context.Background(), session.ID, "999")
	assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)

	stored := repo.mustGet(session.ID)
	assert.Empty(t, stored.Items, "failed lookups leave the session alone")
}

func TestRemoveEquipment_NoopSkipsSave(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	savesBefore := repo.saves
	removed, err := service.RemoveEquipment(context.Background(), session.ID, 42, "")
	require.NoError(t, err)

	assert.False(t, removed)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestRemoveEquipment_Persists(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	_, _, err = service.AddEquipment(context.Background(), session.ID, domain.EquipmentRecord{EquipmentID: 1, Name: "Camera"})
	require.NoError(t, err)

	removed, err := service.RemoveEquipment(context.Background(), session.ID, 1, "")
	require.NoError(t, err)
	assert.True(t, removed)

	stored := repo.mustGet(session.ID)
	assert.Empty(t, stored.Items)
}

func TestAdjustQuantity_InvalidDeltaLeavesStorageUntouched(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	_, _, err = service.AddEquipment(context.Background(), session.ID, domain.EquipmentRecord{EquipmentID: 5, Name: "Lens", SerialNumber: "SN1"})
	require.NoError(t, err)

	_, err = service.AdjustQuantity(context.Background(), session.ID, 5, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantityAdjustment)

	stored := repo.mustGet(session.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestAdjustQuantity_RemovalPersisted(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	_, _, err = service.AddEquipment(context.Background(), session.ID, domain.EquipmentRecord{EquipmentID: 1, Name: "Camera"})
	require.NoError(t, err)

	returned, err := service.AdjustQuantity(context.Background(), session.ID, 1, -3)
	require.NoError(t, err)
	assert.Empty(t, returned.Items)

	stored := repo.mustGet(session.ID)
	assert.Empty(t, stored.Items)
}

func TestRenameSession_MarksDirty(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	// Simulate a completed sync first
	stored := repo.mustGet(session.ID)
	stored.Dirty = false
	stored.SyncState = domain.SyncStateClean
	repo.put(stored)

	renamed, err := service.RenameSession(context.Background(), session.ID, "Kit B")
	require.NoError(t, err)

	assert.Equal(t, "Kit B", renamed.Name)
	assert.True(t, renamed.Dirty)
	assert.Equal(t, domain.SyncStateDirty, repo.mustGet(session.ID).SyncState)
}

func TestDeleteSession_ClearsActivePointer(t *testing.T) {
	repo := newFakeRepo()
	service := newSessionService(repo, nil)
	session, err := service.CreateSession(context.Background(), "Kit")
	require.NoError(t, err)

	err = service.DeleteSession(context.Background(), session.ID)
	require.NoError(t, err)

	active, err := service.ActiveSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = service.GetSession(context.Background(), session.ID)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}
