package cmd

import (
	"context"
	"fmt"

	"gearscan/internal/domain"
)

// SessionsAddCmd adds an equipment record to a session without a lookup,
// useful when the catalog service is unreachable
type SessionsAddCmd struct {
	Barcode      string `help:"Equipment barcode" default:""`
	CategoryID   int64  `help:"Category id (0 = none)" default:"0"`
	CategoryName string `help:"Category display name" default:""`
	EquipmentID  int64  `arg:"" help:"Equipment id"`
	Name         string `help:"Equipment display name" default:""`
	SerialNumber string `help:"Serial number for a specific physical unit" default:""`
	Session      string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the add command
func (s *SessionsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	rec := domain.EquipmentRecord{
		Barcode:      s.Barcode,
		CategoryName: s.CategoryName,
		EquipmentID:  s.EquipmentID,
		Name:         s.Name,
		SerialNumber: s.SerialNumber,
	}
	if s.CategoryID != 0 {
		rec.CategoryID = &s.CategoryID
	}

	outcome, session, err := cli.Container.SessionService.AddEquipment(ctx, sessionID, rec)
	if err != nil {
		return fmt.Errorf("failed to add equipment: %w", err)
	}

	printOutcome(outcome, session)
	return nil
}
