package cmd

import (
	"context"
	"fmt"
)

// SessionsRenameCmd renames a session
type SessionsRenameCmd struct {
	ID   string `arg:"" help:"Id of the session to rename"`
	Name string `arg:"" help:"New session name"`
}

// Run executes the rename command
func (s *SessionsRenameCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.RenameSession(context.Background(), s.ID, s.Name)
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}

	fmt.Printf("Session renamed to '%s'\n", session.Name)
	return nil
}
