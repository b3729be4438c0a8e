package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gearscan/internal/domain"
)

// SessionsViewCmd shows a session's items, optionally filtered by a query
type SessionsViewCmd struct {
	Query   string `help:"Filter items by name, category, serial number or barcode" short:"q" default:""`
	Session string `help:"Session id (defaults to the active session)" default:""`
}

// Run executes the view command
func (s *SessionsViewCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := resolveSessionID(ctx, cli, s.Session)
	if err != nil {
		return err
	}

	session, err := cli.Container.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Session '%s' (%s)\n", session.Name, session.ID)
	fmt.Printf("State: %s, dirty: %t, synced: %t\n", session.SyncState, session.Dirty, session.SyncedWithServer)
	if session.SyncError != "" {
		fmt.Printf("Needs attention: %s\n", session.SyncError)
	}

	items := domain.FilterItems(session.Items, s.Query)
	if len(items) == 0 {
		fmt.Println("No items")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EQUIPMENT\tNAME\tCATEGORY\tSERIAL\tBARCODE\tQTY")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			item.EquipmentID,
			highlightText(item.Name, s.Query),
			highlightText(item.CategoryName, s.Query),
			highlightText(item.SerialNumber, s.Query),
			highlightText(item.Barcode, s.Query),
			item.Quantity)
	}
	return w.Flush()
}

// highlightText renders match spans with bracket markers for plain terminals
func highlightText(text, query string) string {
	spans := domain.Highlight(text, query)
	var b strings.Builder
	for _, span := range spans {
		if span.Match {
			b.WriteString("[")
			b.WriteString(span.Text)
			b.WriteString("]")
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
