package storage

import "time"

// SessionModel is the GORM model for the sessions table
type SessionModel struct {
	CreatedAt        time.Time
	Dirty            bool      `gorm:"not null;default:true"`
	ID               string    `gorm:"primaryKey"`
	LastUpdated      time.Time `gorm:"not null;index:idx_last_updated"`
	Name             string    `gorm:"not null;default:''"`
	RemoteID         string    `gorm:"not null;default:'';index:idx_remote_id"`
	Revision         int64     `gorm:"not null;default:0"`
	SyncError        string    `gorm:"not null;default:''"`
	SyncState        string    `gorm:"not null;default:'dirty';check:sync_state IN ('clean','dirty','syncing','sync_failed')"`
	SyncedWithServer bool      `gorm:"not null;default:false"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// SessionItemModel is the GORM model for session items. Position preserves
// insertion order for display; identity is (session, equipment, serial).
type SessionItemModel struct {
	Barcode      string `gorm:"not null;default:''"`
	CategoryID   *int64 `gorm:"default:null"`
	CategoryName string `gorm:"not null;default:''"`
	CreatedAt    time.Time
	EquipmentID  int64  `gorm:"primaryKey;autoIncrement:false"`
	Position     int    `gorm:"not null;default:0;index:idx_item_position"`
	Quantity     int    `gorm:"not null;default:1"`
	SerialNumber string `gorm:"primaryKey;not null;default:''"`
	SessionID    string `gorm:"primaryKey;index:idx_item_session"`
	Name         string `gorm:"not null;default:''"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SessionItemModel) TableName() string { return "session_items" }

// ActiveSessionModel is a single-row table holding the active session pointer
type ActiveSessionModel struct {
	CreatedAt time.Time
	SessionID string `gorm:"not null;default:''"`
	Slot      int    `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ActiveSessionModel) TableName() string { return "active_session" }
