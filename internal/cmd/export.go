package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// ExportCmd converts a session into a draft project payload printed as JSON
// for the downstream project-creation flow
type ExportCmd struct {
	Session string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the export command
func (s *ExportCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	draft, err := cli.Container.ExportService.ToProjectDraft(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(draft)
}
