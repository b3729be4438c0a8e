package cmd

import (
	"context"
	"fmt"

	"gearscan/internal/domain"
)

// SessionsScanCmd looks up a barcode and merges it into a session
type SessionsScanCmd struct {
	Barcode string `arg:"" help:"Barcode to look up"`
	Session string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the scan command
func (s *SessionsScanCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	outcome, session, err := cli.Container.SessionService.ScanBarcode(ctx, sessionID, s.Barcode)
	if err != nil {
		return err
	}

	printOutcome(outcome, session)
	return nil
}

// resolveSessionID falls back to the active session when no id was given
func resolveSessionID(ctx context.Context, cli *CLI, sessionID string) (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}

	active, err := cli.Container.SessionService.ActiveSession(ctx)
	if err != nil {
		return "", err
	}
	if active == nil {
		return "", fmt.Errorf("no active session; create one with 'gearscan sessions new'")
	}
	return active.ID, nil
}

// printOutcome reports a merge result to the operator
func printOutcome(outcome domain.MergeOutcome, session *domain.Session) {
	switch outcome {
	case domain.OutcomeItemAdded:
		fmt.Printf("Added (session '%s' now has %d items)\n", session.Name, len(session.Items))
	case domain.OutcomeQuantityIncremented:
		fmt.Printf("Quantity incremented (session '%s')\n", session.Name)
	case domain.OutcomeDuplicateSerial:
		fmt.Println("Already scanned: this serial number is in the session")
	}
}
