package service

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/repo"
	"MediaVault/model"
	"fmt"
)

// SearchMedia searches a user's media by name or description, with an
// optional creation-date window.
func SearchMedia(userId string, req *dto.MediaSearchRequest) ([]model.MediaItem, int64, error) {
	if req == nil {
		req = &dto.MediaSearchRequest{}
	}
	var items []model.MediaItem
	var total int64

	query := repo.Db.Model(&model.MediaItem{}).
		Joins("JOIN backup_session ON backup_session.id = media_item.session_id").
		Where("backup_session.user_id = ?", userId)

	if req.Query != "" {
		like := fmt.Sprintf("%%%s%%", req.Query)
		query = query.Where("media_item.file_name LIKE ? OR media_item.description LIKE ?", like, like)
	}
	if req.FromDate != nil {
		query = query.Where("media_item.created_at >= ?", *req.FromDate)
	}
	if req.ToDate != nil {
		query = query.Where("media_item.created_at <= ?", *req.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := pageWindow(req.Page, req.PageSize)
	if err := query.
		Order("media_item.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
