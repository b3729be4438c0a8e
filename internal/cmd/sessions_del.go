package cmd

import (
	"context"
	"fmt"
)

// SessionsDelCmd deletes a session locally. The remote copy, if any, is not
// deleted; it expires on its own.
type SessionsDelCmd struct {
	ID string `arg:"" help:"Id of the session to delete"`
}

// Run executes the del command
func (s *SessionsDelCmd) Run(cli *CLI) error {
	if err := cli.Container.SessionService.DeleteSession(context.Background(), s.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Session '%s' deleted\n", s.ID)
	return nil
}
