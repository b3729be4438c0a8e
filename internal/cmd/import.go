package cmd

import (
	"context"
	"fmt"
)

// ImportCmd imports a server-owned session as a fresh local copy
type ImportCmd struct {
	RemoteID string `arg:"" help:"Remote session id to import"`
}

// Run executes the import command
func (s *ImportCmd) Run(cli *CLI) error {
	session, err := cli.Container.ImportService.ImportFromServer(context.Background(), s.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	fmt.Printf("Imported '%s' as session %s (%d items), now active\n",
		session.Name, session.ID, len(session.Items))
	return nil
}
