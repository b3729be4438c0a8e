package cmd

import (
	"context"
	"fmt"
)

// SessionsNewCmd creates a new scan session
type SessionsNewCmd struct {
	Name string `arg:"" help:"Name of the session to create"`
}

// Run executes the new command
func (s *SessionsNewCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.CreateSession(context.Background(), s.Name)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	fmt.Printf("Session '%s' created and active (%s)\n", session.Name, session.ID)
	return nil
}
