package dto

import (
	"MediaVault/model"
	"time"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type StartSessionRequest struct {
	SessionInfo model.BackupSessionInfo `json:"session_info"`
}

// SessionUpdateRequest is a sparse patch; nil fields leave the session
// untouched.
type SessionUpdateRequest struct {
	ProcessedItems    *int    `json:"processed_items"`
	SuccessfulBackups *int    `json:"successful_backups"`
	FailedBackups     *int    `json:"failed_backups"`
	SkippedItems      *int    `json:"skipped_items"`
	TotalSize         *int64  `json:"total_size"`
	Status            *string `json:"status"`
	ErrorMessage      string  `json:"error_message"`
}

type MediaListRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type MediaSearchRequest struct {
	Query    string     `form:"query"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02T15:04:05Z07:00"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}
