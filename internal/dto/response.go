package dto

import (
	"MediaVault/model"
	"time"
)

type AuthResponse struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SystemStats summarizes the whole deployment.
type SystemStats struct {
	TotalUsers         int64     `json:"total_users"`
	ActiveUsers        int64     `json:"active_users"`
	TotalMediaItems    int64     `json:"total_media_items"`
	TotalPhotos        int64     `json:"total_photos"`
	TotalVideos        int64     `json:"total_videos"`
	TotalStorageUsed   int64     `json:"total_storage_used"`
	AvailableStorage   int64     `json:"available_storage"`
	LastBackupActivity time.Time `json:"last_backup_activity"`
}

type MediaListResponse struct {
	Items []model.MediaItem `json:"items"`
	Total int64             `json:"total"`
}
