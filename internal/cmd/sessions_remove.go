package cmd

import (
	"context"
	"fmt"
)

// SessionsRemoveCmd removes one item from a session by exact identity
type SessionsRemoveCmd struct {
	EquipmentID  int64  `arg:"" help:"Equipment id of the item to remove"`
	SerialNumber string `help:"Serial number, for serialized items" default:""`
	Session      string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the remove command
func (s *SessionsRemoveCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	removed, err := cli.Container.SessionService.RemoveEquipment(ctx, sessionID, s.EquipmentID, s.SerialNumber)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if removed {
		fmt.Println("Item removed")
	} else {
		fmt.Println("No matching item in session")
	}
	return nil
}
