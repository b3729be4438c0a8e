package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// SessionsListCmd lists all local sessions
type SessionsListCmd struct{}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessions, err := cli.Container.SessionService.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	activeID := ""
	if active, err := cli.Container.SessionService.ActiveSession(ctx); err == nil && active != nil {
		activeID = active.ID
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tITEMS\tSTATE\tREMOTE\tUPDATED")
	for _, sess := range sessions {
		marker := ""
		if sess.ID == activeID {
			marker = " *"
		}
		remote := sess.RemoteID
		if remote == "" {
			remote = "-"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%d\t%s\t%s\t%s\n",
			sess.ID, marker, sess.Name, len(sess.Items), sess.SyncState, remote,
			sess.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
