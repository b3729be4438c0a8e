package domain

import (
	"fmt"
	"time"
)

// MergeOutcome is the result of adding equipment to a session. Merge decisions
// are expected branches of the business flow, not errors.
type MergeOutcome string

const (
	OutcomeDuplicateSerial     MergeOutcome = "duplicate_serial"
	OutcomeItemAdded           MergeOutcome = "item_added"
	OutcomeQuantityIncremented MergeOutcome = "quantity_incremented"
)

// AddEquipment merges a looked-up equipment record into the session.
//
// Serialized candidates (serial number present) are appended unless the exact
// (equipmentID, serialNumber) identity already exists, in which case the
// session is left untouched and OutcomeDuplicateSerial is returned.
// Non-serialized candidates stack: an existing row for the same equipmentID
// without a serial number gets its quantity incremented, otherwise a new row
// with quantity 1 is appended.
func (s *Session) AddEquipment(rec EquipmentRecord, now time.Time) MergeOutcome {
	item := NormalizeEquipment(rec)
	s.ensureIndex()

	if i, ok := s.index[item.Key()]; ok {
		if item.Serialized() {
			return OutcomeDuplicateSerial
		}
		s.Items[i].Quantity++
		s.touch(now)
		return OutcomeQuantityIncremented
	}

	s.Items = append(s.Items, item)
	s.index[item.Key()] = len(s.Items) - 1
	s.touch(now)
	return OutcomeItemAdded
}

// RemoveEquipment removes the item matching the exact identity. Removing an
// absent item is a no-op, not an error; the session is only marked dirty when
// something actually changed. Returns whether an item was removed.
func (s *Session) RemoveEquipment(equipmentID int64, serialNumber string, now time.Time) bool {
	s.ensureIndex()
	key := ItemKey{EquipmentID: equipmentID, SerialNumber: serialNumber}
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.removeAt(i)
	s.touch(now)
	return true
}

// AdjustQuantity applies a delta to the non-serialized item for equipmentID.
// A resulting quantity of zero or below removes the item. Adjusting a
// serialized or absent item fails with ErrInvalidQuantityAdjustment.
func (s *Session) AdjustQuantity(equipmentID int64, delta int, now time.Time) error {
	s.ensureIndex()
	key := ItemKey{EquipmentID: equipmentID}
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("equipment %d: %w", equipmentID, ErrInvalidQuantityAdjustment)
	}
	if delta == 0 {
		return nil
	}

	quantity := s.Items[i].Quantity + delta
	if quantity <= 0 {
		s.removeAt(i)
	} else {
		s.Items[i].Quantity = quantity
	}
	s.touch(now)
	return nil
}

// removeAt drops the item at position i preserving insertion order
func (s *Session) removeAt(i int) {
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	// Positions after i shifted, rebuild the index
	s.index = nil
	s.ensureIndex()
}
