package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestSession() *Session {
	return NewSession("sess-1", "Kit A", testTime)
}

func camera() EquipmentRecord {
	return EquipmentRecord{EquipmentID: 1, Barcode: "123", Name: "Camera"}
}

func serializedLens(serial string) EquipmentRecord {
	return EquipmentRecord{EquipmentID: 5, Barcode: "555", Name: "Lens 50mm", SerialNumber: serial}
}

func TestAddEquipment_RepeatedAddsIncrementQuantity(t *testing.T) {
	s := newTestSession()

	outcome := s.AddEquipment(camera(), testTime)
	assert.Equal(t, OutcomeItemAdded, outcome)

	outcome = s.AddEquipment(camera(), testTime.Add(time.Second))
	assert.Equal(t, OutcomeQuantityIncremented, outcome)

	require.Len(t, s.Items, 1)
	assert.Equal(t, int64(1), s.Items[0].EquipmentID)
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestAddEquipment_QuantityEqualsNumberOfAdditions(t *testing.T) {
	s := newTestSession()

	for i := 0; i < 7; i++ {
		s.AddEquipment(camera(), testTime)
	}

	require.Len(t, s.Items, 1)
	assert.Equal(t, 7, s.Items[0].Quantity)
}

func TestAddEquipment_DuplicateSerialLeavesSessionUnchanged(t *testing.T) {
	s := newTestSession()

	outcome := s.AddEquipment(serializedLens("SN1"), testTime)
	require.Equal(t, OutcomeItemAdded, outcome)

	// Synced in between so we can observe the dirty flag staying put
	s.Dirty = false
	s.SyncState = SyncStateClean
	before := s.UpdatedAt
	beforeRev := s.Revision

	outcome = s.AddEquipment(serializedLens("SN1"), testTime.Add(time.Minute))
	assert.Equal(t, OutcomeDuplicateSerial, outcome)
	assert.Len(t, s.Items, 1)
	assert.False(t, s.Dirty, "duplicate serial must not re-dirty the session")
	assert.Equal(t, before, s.UpdatedAt)
	assert.Equal(t, beforeRev, s.Revision)
}

func TestAddEquipment_DistinctSerialsAreSeparateItems(t *testing.T) {
	s := newTestSession()

	s.AddEquipment(serializedLens("SN1"), testTime)
	s.AddEquipment(serializedLens("SN2"), testTime)

	require.Len(t, s.Items, 2)
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, 1, s.Items[1].Quantity)
}

func TestAddEquipment_SerializedAndStackedDontMix(t *testing.T) {
	s := newTestSession()

	// Same equipment id, one with serial and one without
	s.AddEquipment(EquipmentRecord{EquipmentID: 9, Name: "Tripod"}, testTime)
	outcome := s.AddEquipment(EquipmentRecord{EquipmentID: 9, Name: "Tripod", SerialNumber: "T-1"}, testTime)

	assert.Equal(t, OutcomeItemAdded, outcome)
	require.Len(t, s.Items, 2)
}

func TestAddEquipment_MarksDirty(t *testing.T) {
	s := newTestSession()
	s.Dirty = false
	s.SyncState = SyncStateClean

	later := testTime.Add(time.Minute)
	before := s.Revision
	s.AddEquipment(camera(), later)

	assert.True(t, s.Dirty)
	assert.Equal(t, SyncStateDirty, s.SyncState)
	assert.Equal(t, later, s.UpdatedAt)
	assert.Equal(t, before+1, s.Revision, "every mutation bumps the revision")
}

func TestAddEquipment_ClearsStaleValidationError(t *testing.T) {
	s := newTestSession()
	s.SyncError = "name too long"
	s.SyncState = SyncStateSyncFailed

	s.AddEquipment(camera(), testTime)

	assert.Empty(t, s.SyncError, "a changed payload should be retryable again")
}

func TestRemoveEquipment_ExactIdentity(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(camera(), testTime)
	s.AddEquipment(serializedLens("SN1"), testTime)

	removed := s.RemoveEquipment(5, "SN1", testTime)
	assert.True(t, removed)
	require.Len(t, s.Items, 1)
	assert.Equal(t, int64(1), s.Items[0].EquipmentID)
}

func TestRemoveEquipment_AbsentIsNoop(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(camera(), testTime)
	s.Dirty = false

	removed := s.RemoveEquipment(42, "", testTime)
	assert.False(t, removed)
	assert.Len(t, s.Items, 1)
	assert.False(t, s.Dirty, "no-op removal must not dirty the session")
}

func TestRemoveEquipment_SerialMustMatch(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(serializedLens("SN1"), testTime)

	removed := s.RemoveEquipment(5, "SN2", testTime)
	assert.False(t, removed)
	assert.Len(t, s.Items, 1)
}

func TestAdjustQuantity_PositiveDeltaUpdatesInPlace(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(camera(), testTime)

	err := s.AdjustQuantity(1, 3, testTime)
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Quantity)
}

func TestAdjustQuantity_ZeroOrBelowRemovesItem(t *testing.T) {
	tests := []struct {
		name  string
		delta int
	}{
		{"exactly zero", -1},
		{"below zero", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.AddEquipment(camera(), testTime)

			err := s.AdjustQuantity(1, tt.delta, testTime)
			require.NoError(t, err)
			assert.Empty(t, s.Items)
		})
	}
}

func TestAdjustQuantity_SerializedItemFails(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(serializedLens("SN1"), testTime)

	err := s.AdjustQuantity(5, 1, testTime)
	assert.ErrorIs(t, err, ErrInvalidQuantityAdjustment)
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestAdjustQuantity_AbsentItemFails(t *testing.T) {
	s := newTestSession()

	err := s.AdjustQuantity(404, 1, testTime)
	assert.ErrorIs(t, err, ErrInvalidQuantityAdjustment)
}

func TestAdjustQuantity_ZeroDeltaIsNoop(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(camera(), testTime)
	s.Dirty = false

	err := s.AdjustQuantity(1, 0, testTime)
	require.NoError(t, err)
	assert.False(t, s.Dirty)
}

func TestAddEquipment_PreservesInsertionOrder(t *testing.T) {
	s := newTestSession()

	s.AddEquipment(EquipmentRecord{EquipmentID: 3, Name: "Cable"}, testTime)
	s.AddEquipment(EquipmentRecord{EquipmentID: 1, Name: "Camera"}, testTime)
	s.AddEquipment(EquipmentRecord{EquipmentID: 2, Name: "Boom"}, testTime)
	s.AddEquipment(EquipmentRecord{EquipmentID: 3, Name: "Cable"}, testTime)

	require.Len(t, s.Items, 3)
	assert.Equal(t, int64(3), s.Items[0].EquipmentID)
	assert.Equal(t, int64(1), s.Items[1].EquipmentID)
	assert.Equal(t, int64(2), s.Items[2].EquipmentID)
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestFindItem_AfterRemovalIndexStaysConsistent(t *testing.T) {
	s := newTestSession()
	s.AddEquipment(EquipmentRecord{EquipmentID: 1, Name: "Camera"}, testTime)
	s.AddEquipment(EquipmentRecord{EquipmentID: 2, Name: "Boom"}, testTime)
	s.AddEquipment(EquipmentRecord{EquipmentID: 3, Name: "Cable"}, testTime)

	s.RemoveEquipment(1, "", testTime)

	i, ok := s.FindItem(ItemKey{EquipmentID: 3})
	require.True(t, ok)
	assert.Equal(t, int64(3), s.Items[i].EquipmentID)
}
