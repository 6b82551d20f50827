package model

import "time"

// SessionStatus is the lifecycle state of a backup run.
// InProgress is the only initial state; the other three are terminal.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionFailed     SessionStatus = "failed"
	SessionCancelled  SessionStatus = "cancelled"
)

// BackupSessionInfo is the device snapshot reported when a run starts.
type BackupSessionInfo struct {
	DeviceName     string            `json:"device_name,omitempty"`
	DeviceModel    string            `json:"device_model,omitempty"`
	NetworkType    string            `json:"network_type,omitempty"`
	IsCharging     bool              `json:"is_charging"`
	BatteryLevel   int               `json:"battery_level"`
	AppVersion     string            `json:"app_version,omitempty"`
	OsVersion      string            `json:"os_version,omitempty"`
	AdditionalInfo map[string]string `json:"additional_info,omitempty"`
}

type BackupSession struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	StartTime time.Time  `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`

	Status SessionStatus `gorm:"column:status;size:20;not null;default:in_progress" json:"status"`

	// Running counters. ProcessedItems should equal SuccessfulBackups +
	// FailedBackups + SkippedItems after each update; caller deltas are
	// trusted, not rechecked.
	TotalItems        int   `gorm:"column:total_items;not null;default:0" json:"total_items"`
	ProcessedItems    int   `gorm:"column:processed_items;not null;default:0" json:"processed_items"`
	SuccessfulBackups int   `gorm:"column:successful_backups;not null;default:0" json:"successful_backups"`
	FailedBackups     int   `gorm:"column:failed_backups;not null;default:0" json:"failed_backups"`
	SkippedItems      int   `gorm:"column:skipped_items;not null;default:0" json:"skipped_items"`
	TotalSize         int64 `gorm:"column:total_size;not null;default:0" json:"total_size"`

	ErrorMessage string   `gorm:"column:error_message;type:varchar(1024);not null;default:''" json:"error_message,omitempty"`
	Errors       []string `gorm:"column:errors;serializer:json" json:"errors,omitempty"`

	SessionInfo BackupSessionInfo `gorm:"column:session_info;serializer:json" json:"session_info"`

	Items []MediaItem `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (BackupSession) TableName() string {
	return "backup_session"
}

// Terminal reports whether the session can no longer accept uploads.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionFailed || s == SessionCancelled
}
