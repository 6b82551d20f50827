package model

import "time"

// MediaType classifies an uploaded file.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// BackupStatus is the lifecycle state of one media item.
type BackupStatus string

const (
	BackupPending    BackupStatus = "pending"
	BackupInProgress BackupStatus = "in_progress"
	BackupCompleted  BackupStatus = "completed"
	BackupFailed     BackupStatus = "failed"
	BackupSkipped    BackupStatus = "skipped"
)

// MediaMetadata is the client-reported metadata block for one item.
// The content hash is filled in server-side during ingestion.
type MediaMetadata struct {
	Width           *int              `json:"width,omitempty"`
	Height          *int              `json:"height,omitempty"`
	CameraMake      string            `json:"camera_make,omitempty"`
	CameraModel     string            `json:"camera_model,omitempty"`
	Latitude        *float64          `json:"latitude,omitempty"`
	Longitude       *float64          `json:"longitude,omitempty"`
	Location        string            `json:"location,omitempty"`
	DurationSeconds *float64          `json:"duration_seconds,omitempty"`
	FileHash        string            `json:"file_hash,omitempty"`
	AdditionalData  map[string]string `json:"additional_data,omitempty"`
}

type MediaItem struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// A media item cannot exist outside a session; user membership is
	// inferred through the owning session.
	SessionID string        `gorm:"column:session_id;size:36;not null;index" json:"session_id"`
	Session   BackupSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FileName      string `gorm:"column:file_name;size:255;not null" json:"file_name"`
	FileExtension string `gorm:"column:file_extension;size:16;not null" json:"file_extension"`
	FileSize      int64  `gorm:"column:file_size;not null" json:"file_size"`

	// ServerPath is the object name inside the content store, derived
	// server-side and never client-supplied.
	ServerPath    string `gorm:"column:server_path;size:512;not null" json:"-"`
	ThumbnailPath string `gorm:"column:thumbnail_path;size:512;not null;default:''" json:"-"`

	Type MediaType `gorm:"column:type;size:10;not null" json:"type"`

	Description string `gorm:"column:description;type:varchar(1024);not null;default:''" json:"description,omitempty"`

	Metadata MediaMetadata `gorm:"column:metadata;serializer:json" json:"metadata"`

	Status       BackupStatus `gorm:"column:status;size:20;not null;default:pending" json:"status"`
	ErrorMessage string       `gorm:"column:error_message;type:varchar(1024);not null;default:''" json:"error_message,omitempty"`

	IsFavorite bool     `gorm:"column:is_favorite;not null;default:false" json:"is_favorite"`
	Tags       []string `gorm:"column:tags;serializer:json" json:"tags,omitempty"`

	OriginalDate     *time.Time `gorm:"column:original_date" json:"original_date,omitempty"`
	LastModifiedDate *time.Time `gorm:"column:last_modified_date" json:"last_modified_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (MediaItem) TableName() string {
	return "media_item"
}
