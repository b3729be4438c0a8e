package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// SyncCmd reconciles local sessions with the remote store
type SyncCmd struct {
	Now SyncNowCmd `cmd:"now" help:"Push one session (or all dirty sessions) immediately" default:"1"`
	Run SyncRunCmd `cmd:"run" help:"Run the background sync loop until interrupted"`
}

// SyncNowCmd triggers an on-demand sync pass
type SyncNowCmd struct {
	Session string `help:"Session id to sync (defaults to all dirty sessions)" default:""`
}

// Run executes the sync-now command
func (s *SyncNowCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if s.Session != "" {
		if err := cli.Container.SyncService.SyncNow(ctx, s.Session); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Printf("Session '%s' synced\n", s.Session)
		return nil
	}

	if err := cli.Container.SyncService.SyncDirty(ctx); err != nil {
		return fmt.Errorf("sync pass finished with failures: %w", err)
	}
	fmt.Println("All dirty sessions synced")
	return nil
}

// SyncRunCmd runs the timer-driven sync loop in the foreground
type SyncRunCmd struct{}

// Run executes the sync loop
func (s *SyncRunCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Sync loop running, press Ctrl+C to stop")
	if err := cli.Container.SyncService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
