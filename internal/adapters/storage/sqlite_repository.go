package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gearscan/internal/domain"
	"gearscan/internal/logging"
	"gearscan/internal/ports"
)

// Retention window for capacity pruning: clean sessions untouched for this
// long may be dropped to free space for new writes.
const pruneRetention = 30 * 24 * time.Hour

// activeSlot is the fixed primary key of the single active_session row
const activeSlot = 1

// SQLiteRepository implements ports.SessionRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the gearscan logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("GEARSCAN_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&SessionModel{}, &SessionItemModel{}, &ActiveSessionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForPath creates a new SQLiteRepository for a specific
// gearscan home path
func NewSQLiteRepositoryForPath(homePath string) (*SQLiteRepository, error) {
	return NewSQLiteRepository(filepath.Join(homePath, "state.db"))
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements SessionReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session SessionModel
	var items []SessionItemModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&session).Error; err != nil {
				return err
			}
			return tx.Where("session_id = ?", id).Order("position ASC").Find(&items).Error
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
		}
		return nil, err
	}

	result := sessionModelToDomain(session, items)
	return &result, nil
}

// List implements SessionReader.List. Sessions are returned most recently
// updated first.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Session, error) {
	var sessions []SessionModel
	var items []SessionItemModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("last_updated DESC, id ASC").Find(&sessions).Error; err != nil {
				return err
			}
			return tx.Order("position ASC").Find(&items).Error
		})
	}, 3)

	if err != nil {
		return nil, err
	}

	itemsBySession := make(map[string][]SessionItemModel)
	for _, item := range items {
		itemsBySession[item.SessionID] = append(itemsBySession[item.SessionID], item)
	}

	result := make([]domain.Session, len(sessions))
	for i, sess := range sessions {
		result[i] = sessionModelToDomain(sess, itemsBySession[sess.ID])
	}

	return result, nil
}

// errRevisionConflict signals a guarded save that lost the race
var errRevisionConflict = errors.New("session revision conflict")

// Save implements SessionWriter.Save. Item rows are replaced wholesale within
// the transaction so stored positions always mirror the in-memory order.
//
// When the write fails for capacity reasons the repository prunes sessions
// that are both clean and older than the retention window, then retries the
// write once. A write that still fails surfaces domain.ErrStorageWriteFailed.
func (r *SQLiteRepository) Save(ctx context.Context, session domain.Session) error {
	if err := r.saveReclaiming(ctx, session, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWriteFailed, err)
	}
	return nil
}

// SaveExpecting implements SessionWriter.SaveExpecting: the write only goes
// through when the stored revision still equals expected, checked inside the
// same transaction that replaces the rows.
func (r *SQLiteRepository) SaveExpecting(ctx context.Context, session domain.Session, expected int64) (bool, error) {
	err := r.saveReclaiming(ctx, session, &expected)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errRevisionConflict):
		return false, nil
	case errors.Is(err, domain.ErrSessionNotFound):
		return false, err
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrStorageWriteFailed, err)
	}
}

// saveReclaiming runs save and, on a capacity failure, prunes stale sessions
// and retries the write once
func (r *SQLiteRepository) saveReclaiming(ctx context.Context, session domain.Session, expected *int64) error {
	err := r.save(ctx, session, expected)
	if err == nil || !isCapacityErr(err) {
		return err
	}

	logging.Logger.Warn("storage write hit capacity, pruning stale sessions",
		"session", session.ID,
		"error", err)
	if pruneErr := r.pruneStale(ctx, time.Now().UTC().Add(-pruneRetention)); pruneErr != nil {
		logging.Logger.Error("pruning stale sessions failed", "error", pruneErr)
	}
	return r.save(ctx, session, expected)
}

func (r *SQLiteRepository) save(ctx context.Context, session domain.Session, expected *int64) error {
	model, items := domainToSessionModel(session)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if expected != nil {
				var stored SessionModel
				if err := tx.Where("id = ?", session.ID).First(&stored).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("session %s: %w", session.ID, domain.ErrSessionNotFound)
					}
					return err
				}
				if stored.Revision != *expected {
					return errRevisionConflict
				}
			}

			if err := tx.Save(&model).Error; err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			if err := tx.Where("session_id = ?", session.ID).Delete(&SessionItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear session items: %w", err)
			}

			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return fmt.Errorf("failed to save session items: %w", err)
				}
			}

			return nil
		})
	}, 3)
}

// pruneStale removes clean sessions last updated before cutoff, freeing
// capacity for new writes. Dirty sessions are never pruned.
func (r *SQLiteRepository) pruneStale(ctx context.Context, cutoff time.Time) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var stale []SessionModel
			if err := tx.Where("dirty = ? AND last_updated < ?", false, cutoff).Find(&stale).Error; err != nil {
				return err
			}
			if len(stale) == 0 {
				return nil
			}

			ids := make([]string, len(stale))
			for i, sess := range stale {
				ids[i] = sess.ID
			}

			if err := tx.Where("session_id IN ?", ids).Delete(&SessionItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&SessionModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("slot = ? AND session_id IN ?", activeSlot, ids).Delete(&ActiveSessionModel{}).Error; err != nil {
				return err
			}

			logging.Logger.Info("pruned stale sessions", "count", len(ids))
			return nil
		})
	}, 3)
}

// Delete implements SessionWriter.Delete. Deleting the active session clears
// the active pointer. Deleting locally never touches the remote copy.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("id = ?", id).Delete(&SessionModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
			}

			if err := tx.Where("session_id = ?", id).Delete(&SessionItemModel{}).Error; err != nil {
				return err
			}

			return tx.Where("slot = ? AND session_id = ?", activeSlot, id).Delete(&ActiveSessionModel{}).Error
		})
	}, 3)
}

// GetActive implements ActiveSessionTracker.GetActive. Returns an empty id
// when no session is active.
func (r *SQLiteRepository) GetActive(ctx context.Context) (string, error) {
	var active ActiveSessionModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("slot = ?", activeSlot).First(&active).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return active.SessionID, nil
}

// SetActive implements ActiveSessionTracker.SetActive
func (r *SQLiteRepository) SetActive(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var session SessionModel
			if err := tx.Where("id = ?", id).First(&session).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
				}
				return err
			}

			return tx.Save(&ActiveSessionModel{Slot: activeSlot, SessionID: id}).Error
		})
	}, 3)
}

// ClearActive implements ActiveSessionTracker.ClearActive
func (r *SQLiteRepository) ClearActive(ctx context.Context) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Where("slot = ?", activeSlot).Delete(&ActiveSessionModel{}).Error
	}, 3)
}

// isCapacityErr reports whether err is a capacity-class SQLite failure
func isCapacityErr(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrFull
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
