package service

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/repo"
	"MediaVault/model"
	"MediaVault/utils"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StartSession opens a backup run for a user.
func StartSession(userId string, info model.BackupSessionInfo) (*model.BackupSession, error) {
	user, err := GetUserById(userId)
	if err != nil {
		return nil, err
	}

	session := &model.BackupSession{
		ID:          utils.GetToken(),
		UserID:      user.ID,
		StartTime:   time.Now().UTC(),
		Status:      model.SessionInProgress,
		SessionInfo: info,
	}
	if err := repo.Db.Create(session).Error; err != nil {
		return nil, err
	}

	repo.Db.Model(&model.User{}).
		Where("id = ?", user.ID).
		UpdateColumn("last_seen", time.Now().UTC())

	return session, nil
}

// GetSession loads a session, optionally with its items.
func GetSession(sessionId string, withItems bool) (*model.BackupSession, error) {
	query := repo.Db
	if withItems {
		query = query.Preload("Items")
	}
	var session model.BackupSession
	if err := query.Where("id = ?", sessionId).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionId)
		}
		return nil, err
	}
	return &session, nil
}

// UpdateSessionProgress applies a sparse progress patch. Unset fields
// are left untouched; moving into Completed or Failed stamps the end
// time.
func UpdateSessionProgress(sessionId string, req *dto.SessionUpdateRequest) (*model.BackupSession, error) {
	session, err := GetSession(sessionId, false)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ProcessedItems != nil {
		updates["processed_items"] = *req.ProcessedItems
	}
	if req.SuccessfulBackups != nil {
		updates["successful_backups"] = *req.SuccessfulBackups
	}
	if req.FailedBackups != nil {
		updates["failed_backups"] = *req.FailedBackups
	}
	if req.SkippedItems != nil {
		updates["skipped_items"] = *req.SkippedItems
	}
	if req.TotalSize != nil {
		updates["total_size"] = *req.TotalSize
	}
	if req.ErrorMessage != "" {
		updates["error_message"] = req.ErrorMessage
	}
	if req.Status != nil {
		status := model.SessionStatus(*req.Status)
		switch status {
		case model.SessionInProgress, model.SessionCompleted, model.SessionFailed, model.SessionCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown session status %q", ErrInvalidRequest, *req.Status)
		}
		// A finished run stays finished; late counter flushes are fine,
		// status transitions out of a terminal state are not.
		if session.Status.Terminal() && status != session.Status {
			return nil, fmt.Errorf("%w: session already %s", ErrInvalidRequest, session.Status)
		}
		updates["status"] = status
		if status == model.SessionCompleted || status == model.SessionFailed {
			updates["end_time"] = time.Now().UTC()
		}
	}

	if len(updates) > 0 {
		if err := repo.Db.Model(&model.BackupSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return GetSession(sessionId, false)
}

// ListUserSessions returns a user's sessions, newest first.
func ListUserSessions(userId string) ([]model.BackupSession, error) {
	var sessions []model.BackupSession
	err := repo.Db.
		Where("user_id = ?", userId).
		Order("start_time desc").
		Find(&sessions).Error
	return sessions, err
}
