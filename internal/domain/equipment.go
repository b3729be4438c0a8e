package domain

import "strings"

// EquipmentRecord is the canonical output of the equipment lookup collaborator
// for a scanned barcode or identifier.
type EquipmentRecord struct {
	Barcode      string
	CategoryID   *int64
	CategoryName string
	EquipmentID  int64
	Name         string
	SerialNumber string
}

// NormalizeEquipment turns a raw looked-up equipment record into the canonical
// session item shape with a starting quantity of 1.
func NormalizeEquipment(rec EquipmentRecord) SessionItem {
	return SessionItem{
		Barcode:      strings.TrimSpace(rec.Barcode),
		CategoryID:   rec.CategoryID,
		CategoryName: strings.TrimSpace(rec.CategoryName),
		EquipmentID:  rec.EquipmentID,
		Name:         strings.TrimSpace(rec.Name),
		Quantity:     1,
		SerialNumber: strings.TrimSpace(rec.SerialNumber),
	}
}
