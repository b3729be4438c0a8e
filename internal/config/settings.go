package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Settings represents the structure of ~/.gearscan/settings.json. Environment
// variables override file values; CLI flags override both.
type Settings struct {
	DBPath              string `json:"db_path,omitempty" env:"GEARSCAN_DB_PATH"`
	Debug               *bool  `json:"debug,omitempty" env:"GEARSCAN_DEBUG_ENABLED"`
	EquipmentServiceURL string `json:"equipment_service_url,omitempty" env:"GEARSCAN_EQUIPMENT_URL"`
	MaxLogFiles         *int   `json:"max_log_files,omitempty" env:"GEARSCAN_MAX_LOG_FILES"`
	ServerURL           string `json:"server_url,omitempty" env:"GEARSCAN_SERVER_URL"`
	SyncIntervalSeconds *int   `json:"sync_interval_seconds,omitempty" env:"GEARSCAN_SYNC_INTERVAL_SECONDS"`
	SyncTimeoutSeconds  *int   `json:"sync_timeout_seconds,omitempty" env:"GEARSCAN_SYNC_TIMEOUT_SECONDS"`
}

// LoadSettings loads settings from $GEARSCAN_HOME/settings.json (or
// ~/.gearscan/settings.json if not set) and overlays environment variables.
// A missing file is not an error; defaults apply.
func LoadSettings() (*Settings, error) {
	var settings Settings

	data, err := os.ReadFile(GetSettingsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	} else if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}

	return &settings, nil
}

// SaveSettings saves settings to $GEARSCAN_HOME/settings.json
func SaveSettings(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(GetHomePath(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(GetSettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
