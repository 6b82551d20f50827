package model

import (
	"time"

	"gorm.io/gorm"
)

// UserSettings controls the client-side backup policy for one user.
// Persisted as a JSON document on the user row.
type UserSettings struct {
	AutoBackupEnabled      bool     `json:"auto_backup_enabled"`
	BackupStartTime        string   `json:"backup_start_time"`
	BackupEndTime          string   `json:"backup_end_time"`
	BackupOnlyOnWifi       bool     `json:"backup_only_on_wifi"`
	BackupOnlyWhenCharging bool     `json:"backup_only_when_charging"`
	AllowedExtensions      []string `json:"allowed_extensions"`
	MaxFileSize            int64    `json:"max_file_size"`
	CompressImages         bool     `json:"compress_images"`
	ImageQuality           int      `json:"image_quality"`
}

// DefaultUserSettings returns the settings assigned at registration.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		AutoBackupEnabled: true,
		BackupStartTime:   "22:00",
		BackupEndTime:     "06:00",
		BackupOnlyOnWifi:  true,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".heic", ".mp4", ".mov"},
		MaxFileSize:       100 * 1024 * 1024,
		ImageQuality:      85,
	}
}

// BackupStats holds the cumulative backup counters for one user.
type BackupStats struct {
	TotalPhotos       int       `json:"total_photos"`
	TotalVideos       int       `json:"total_videos"`
	TotalSize         int64     `json:"total_size"`
	LastBackupDate    time.Time `json:"last_backup_date"`
	FailedBackups     int       `json:"failed_backups"`
	SuccessfulBackups int       `json:"successful_backups"`
}

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserName string `gorm:"column:user_name;type:varchar(50);not null;unique" json:"username"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	IsActive bool `gorm:"column:is_active;not null;default:true" json:"is_active"`

	LastLoginAt time.Time `gorm:"column:last_login_at" json:"last_login_at"`
	LastSeen    time.Time `gorm:"column:last_seen" json:"last_seen"`

	Settings UserSettings `gorm:"column:settings;serializer:json" json:"settings"`
	Stats    BackupStats  `gorm:"column:stats;serializer:json" json:"stats"`

	Sessions []BackupSession `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}
