package ports

import (
	"context"

	"gearscan/internal/domain"
)

// EquipmentLookup resolves a scanned barcode to a canonical equipment record.
// A missing match is domain.ErrEquipmentNotFound; the scan engine never
// handles it beyond passing it to the caller.
type EquipmentLookup interface {
	LookupBarcode(ctx context.Context, barcode string) (*domain.EquipmentRecord, error)
}
