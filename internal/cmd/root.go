package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gearscan/internal/config"
	"gearscan/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Sessions SessionsCmd `cmd:"sessions" help:"Manage scan sessions (new, scan, list, view, del)"`
	Sync     SyncCmd     `cmd:"sync" help:"Reconcile dirty sessions with the remote store"`
	Import   ImportCmd   `cmd:"import" help:"Import a remote session as a fresh local copy"`
	Export   ExportCmd   `cmd:"export" help:"Export a session to a bookable project draft"`
	Status   StatusCmd   `cmd:"status" help:"Show per-state session counts"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Only apply a setting if the flag is at its default and no env var is set.
	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("GEARSCAN_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("GEARSCAN_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	// Initialize logging first; the GORM logger depends on it
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Let subprocesses inherit debug settings and append to the same file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("GEARSCAN_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("GEARSCAN_DEBUG_FILE", logFilePath)
		}
	}

	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
