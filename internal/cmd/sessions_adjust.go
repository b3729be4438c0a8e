package cmd

import (
	"context"
	"fmt"

	"gearscan/internal/domain"
)

// SessionsAdjustCmd adjusts the quantity of a non-serialized item
type SessionsAdjustCmd struct {
	EquipmentID int64  `arg:"" help:"Equipment id of the item to adjust"`
	Delta       int    `arg:"" help:"Quantity change, e.g. 2 or -1"`
	Session     string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the adjust command
func (s *SessionsAdjustCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	session, err := cli.Container.SessionService.AdjustQuantity(ctx, sessionID, s.EquipmentID, s.Delta)
	if err != nil {
		return err
	}

	if _, ok := session.FindItem(domain.ItemKey{EquipmentID: s.EquipmentID}); ok {
		fmt.Println("Quantity updated")
	} else {
		fmt.Println("Quantity reached zero, item removed")
	}
	return nil
}
