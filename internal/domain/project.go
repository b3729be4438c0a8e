package domain

import (
	"fmt"
	"time"
)

// BookingStub is one line of a project draft. Start and end dates are filled
// in by the downstream project-creation flow, never here.
type BookingStub struct {
	Barcode      string     `json:"barcode,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	EndDate      *time.Time `json:"endDate"`
	EquipmentID  int64      `json:"equipmentId"`
	Quantity     int        `json:"quantity"`
	SerialNumber string     `json:"serialNumber,omitempty"`
	StartDate    *time.Time `json:"startDate"`
}

// ProjectDraft is the payload handed to the project-creation collaborator
type ProjectDraft struct {
	Bookings    []BookingStub `json:"bookings"`
	SessionID   string        `json:"sessionId"`
	SessionName string        `json:"sessionName"`
}

// ToProjectDraft converts a session's items into a draft bookable-project
// payload. Non-destructive: the source session is not altered or deleted.
// Exporting a session with no items fails with ErrEmptySessionExport.
func ToProjectDraft(s *Session) (*ProjectDraft, error) {
	if len(s.Items) == 0 {
		return nil, fmt.Errorf("session %s: %w", s.ID, ErrEmptySessionExport)
	}

	bookings := make([]BookingStub, len(s.Items))
	for i, item := range s.Items {
		bookings[i] = BookingStub{
			Barcode:      item.Barcode,
			CategoryName: item.CategoryName,
			EquipmentID:  item.EquipmentID,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
		}
	}

	return &ProjectDraft{
		Bookings:    bookings,
		SessionID:   s.ID,
		SessionName: s.Name,
	}, nil
}
