package service

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/repo"
	"MediaVault/internal/storage"
	"MediaVault/model"
	"MediaVault/utils"
	"time"

	"golang.org/x/net/context"
)

const systemStatsCacheTTL = 30 * time.Second

// GetUserStats returns a user's cumulative backup counters.
func GetUserStats(userId string) (*model.BackupStats, error) {
	user, err := GetUserById(userId)
	if err != nil {
		return nil, err
	}
	return &user.Stats, nil
}

// GetSystemStats derives system-wide totals by scanning the ledger and
// media records. The free-space probe is best effort and reports -1
// when it fails; it never fails the whole call.
func GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var cached dto.SystemStats
	if utils.GetSystemStatsFromCache(ctx, &cached) {
		return &cached, nil
	}

	var stats dto.SystemStats
	if err := repo.Db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := repo.Db.Model(&model.User{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := repo.Db.Model(&model.MediaItem{}).Count(&stats.TotalMediaItems).Error; err != nil {
		return nil, err
	}
	if err := repo.Db.Model(&model.MediaItem{}).
		Where("type = ?", model.MediaPhoto).
		Count(&stats.TotalPhotos).Error; err != nil {
		return nil, err
	}
	if err := repo.Db.Model(&model.MediaItem{}).
		Where("type = ?", model.MediaVideo).
		Count(&stats.TotalVideos).Error; err != nil {
		return nil, err
	}
	if err := repo.Db.Model(&model.MediaItem{}).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&stats.TotalStorageUsed).Error; err != nil {
		return nil, err
	}

	var lastSeen *time.Time
	if err := repo.Db.Model(&model.User{}).
		Select("MAX(last_seen)").
		Scan(&lastSeen).Error; err == nil && lastSeen != nil {
		stats.LastBackupActivity = *lastSeen
	}

	stats.AvailableStorage = -1
	if storage.Default != nil {
		stats.AvailableStorage = storage.Default.FreeSpace()
	}

	_ = utils.SetSystemStatsToCache(ctx, &stats, systemStatsCacheTTL)
	return &stats, nil
}
