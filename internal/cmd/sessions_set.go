package cmd

import (
	"context"
	"fmt"
)

// SessionsSetCmd sets the active session
type SessionsSetCmd struct {
	ID string `arg:"" help:"Id of the session to make active"`
}

// Run executes the set command
func (s *SessionsSetCmd) Run(cli *CLI) error {
	if err := cli.Container.SessionService.SetActiveSession(context.Background(), s.ID); err != nil {
		return fmt.Errorf("failed to set active session: %w", err)
	}

	fmt.Printf("Session '%s' is now active\n", s.ID)
	return nil
}
