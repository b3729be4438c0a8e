package cmd

import (
	"context"
	"fmt"

	"gearscan/internal/domain"
)

// StatusCmd displays per-state session counts for scripting and status bars
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	sessions, err := cli.Container.SessionService.ListSessions(context.Background())
	if err != nil {
		fmt.Println("clean:? dirty:? syncing:? failed:?")
		return nil
	}

	var clean, dirty, syncing, failed int
	for _, sess := range sessions {
		switch sess.SyncState {
		case domain.SyncStateClean:
			clean++
		case domain.SyncStateDirty:
			dirty++
		case domain.SyncStateSyncing:
			syncing++
		case domain.SyncStateSyncFailed:
			failed++
		}
	}

	fmt.Printf("clean:%d dirty:%d syncing:%d failed:%d\n", clean, dirty, syncing, failed)
	return nil
}
