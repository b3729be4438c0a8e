package cmd

import (
	"time"

	adapterclock "gearscan/internal/adapters/clock"
	adapterremote "gearscan/internal/adapters/remote"
	adapterstorage "gearscan/internal/adapters/storage"
	"gearscan/internal/config"
	"gearscan/internal/ports"
	"gearscan/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	ExportService  *services.ExportService
	ImportService  *services.ImportService
	SessionService *services.SessionService
	SyncService    *services.SyncService

	// Internal - for cleanup only
	sessionRepo ports.SessionRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	dbPath := settings.DBPath
	if dbPath == "" {
		dbPath = config.GetDBPath()
	}

	sessionRepo, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	timeout := services.DefaultSyncTimeout
	if settings.SyncTimeoutSeconds != nil {
		timeout = time.Duration(*settings.SyncTimeoutSeconds) * time.Second
	}
	interval := services.DefaultSyncInterval
	if settings.SyncIntervalSeconds != nil {
		interval = time.Duration(*settings.SyncIntervalSeconds) * time.Second
	}

	remoteClient := adapterremote.NewClient(settings.ServerURL, timeout)

	lookupURL := settings.EquipmentServiceURL
	if lookupURL == "" {
		lookupURL = settings.ServerURL
	}
	lookupClient := adapterremote.NewLookupClient(lookupURL, timeout)

	systemClock := adapterclock.System{}

	sessionService := services.NewSessionService(sessionRepo, lookupClient, systemClock.Now)
	syncService := services.NewSyncService(sessionRepo, remoteClient, systemClock, interval, timeout)
	importService := services.NewImportService(sessionRepo, remoteClient, systemClock.Now)
	exportService := services.NewExportService(sessionRepo)

	return &Container{
		ExportService:  exportService,
		ImportService:  importService,
		SessionService: sessionService,
		SyncService:    syncService,
		sessionRepo:    sessionRepo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.sessionRepo != nil {
		return c.sessionRepo.Close()
	}
	return nil
}
