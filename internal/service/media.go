package service

import (
	"MediaVault/config"
	"MediaVault/internal/dto"
	"MediaVault/internal/mq"
	"MediaVault/internal/repo"
	"MediaVault/internal/storage"
	"MediaVault/model"
	"MediaVault/utils"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const mediaItemCacheTTL = 5 * time.Minute

// BuildObjectName builds the content-store path for a user's upload.
func BuildObjectName(userId, storedName string) string {
	return fmt.Sprintf("%s/%s", userId, storedName)
}

func cacheMediaItem(ctx context.Context, item *model.MediaItem) {
	if item == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_ = utils.SetMediaItemToCache(ctx, item.ID, item, mediaItemCacheTTL)
}

// UploadMedia ingests one file into a backup session: validates it,
// stores it, hashes the stored bytes, records it, and bumps the session
// and user aggregates in one transaction.
func UploadMedia(
	ctx context.Context,
	sessionId string,
	reader io.Reader,
	fileName string,
	size int64,
	metadata *model.MediaMetadata,
) (*model.MediaItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(fileName) == "" || size <= 0 {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidRequest)
	}
	if size > config.AppConfig.MaxUploadSize {
		return nil, ErrPayloadTooLarge
	}

	// Validation happens before any write; a missing session leaves no
	// observable side effect.
	session, err := GetSession(sessionId, false)
	if err != nil {
		return nil, err
	}
	user, err := GetUserById(session.UserID)
	if err != nil {
		return nil, err
	}

	extension := strings.ToLower(path.Ext(fileName))
	mediaType := MediaTypeForExtension(extension)

	storedName := utils.GetToken() + extension
	objectName := BuildObjectName(user.ID, storedName)

	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	if err := storage.Default.PutObject(ctx, objectName, reader, size, storage.PutOptions{
		ContentType: GetContentType(fileName),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	// Verify the blob really landed; a zero-length or short result is
	// fatal and must not proceed to record creation.
	stat, err := storage.Default.StatObject(ctx, objectName)
	if err != nil || stat.Size == 0 || stat.Size != size {
		_ = storage.Default.RemoveObject(ctx, objectName)
		return nil, fmt.Errorf("%w: %s", ErrStorageWriteFailed, objectName)
	}

	// Hash the stored bytes, not the in-flight stream, so the recorded
	// hash reflects exactly what was persisted.
	hash, err := hashStoredObject(ctx, objectName)
	if err != nil {
		_ = storage.Default.RemoveObject(ctx, objectName)
		return nil, fmt.Errorf("%w: hash read-back: %v", ErrStorageWriteFailed, err)
	}

	meta := model.MediaMetadata{}
	if metadata != nil {
		meta = *metadata
	}
	meta.FileHash = hash
	if mediaType == model.MediaPhoto && (meta.Width == nil || meta.Height == nil) {
		probePhotoDimensions(ctx, objectName, &meta)
	}

	item := &model.MediaItem{
		ID:            utils.GetToken(),
		SessionID:     session.ID,
		FileName:      fileName,
		FileExtension: extension,
		FileSize:      size,
		ServerPath:    objectName,
		Type:          mediaType,
		Metadata:      meta,
		Status:        model.BackupCompleted,
	}

	now := time.Now().UTC()
	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.BackupSession{}).
			Where("id = ?", session.ID).
			UpdateColumns(map[string]interface{}{
				"total_items":        gorm.Expr("total_items + ?", 1),
				"successful_backups": gorm.Expr("successful_backups + ?", 1),
				"total_size":         gorm.Expr("total_size + ?", size),
			}).Error; err != nil {
			return err
		}

		// User stats live in a JSON document, so the increment is done
		// under a row lock inside this transaction.
		var owner model.User
		if err := repo.LockForUpdate(tx).
			Where("id = ?", user.ID).
			First(&owner).Error; err != nil {
			return err
		}
		owner.Stats.TotalSize += size
		owner.Stats.LastBackupDate = now
		owner.Stats.SuccessfulBackups++
		if mediaType == model.MediaPhoto {
			owner.Stats.TotalPhotos++
		} else {
			owner.Stats.TotalVideos++
		}
		owner.LastSeen = now
		return tx.Model(&owner).
			Select("stats", "last_seen").
			Updates(&owner).Error
	})
	if err != nil {
		// The blob is already on disk; a failed record write leaves it
		// orphaned until a cleanup sweep.
		return nil, err
	}

	cacheMediaItem(ctx, item)
	_ = utils.InvalidateSystemStatsCache(ctx)
	publishMediaUploaded(ctx, item, user.ID)

	log.Printf("media uploaded: %s (%d bytes) session=%s", fileName, size, session.ID)
	return item, nil
}

// hashStoredObject reads an object back from the content store and
// digests it.
func hashStoredObject(ctx context.Context, objectName string) (string, error) {
	obj, _, err := storage.Default.GetObject(ctx, objectName)
	if err != nil {
		return "", err
	}
	defer obj.Close()
	return utils.HashReader(obj)
}

// probePhotoDimensions fills pixel dimensions from the stored bytes,
// best effort.
func probePhotoDimensions(ctx context.Context, objectName string, meta *model.MediaMetadata) {
	obj, _, err := storage.Default.GetObject(ctx, objectName)
	if err != nil {
		return
	}
	defer obj.Close()
	cfg, _, err := image.DecodeConfig(obj)
	if err != nil {
		return
	}
	width, height := cfg.Width, cfg.Height
	meta.Width = &width
	meta.Height = &height
}

func publishMediaUploaded(ctx context.Context, item *model.MediaItem, userId string) {
	if !config.AppConfig.MQEnabled {
		return
	}
	client, err := mq.GetPublisher()
	if err != nil {
		log.Printf("mq publisher unavailable: %v", err)
		return
	}
	msg := mq.MediaUploadedMessage{
		MediaID:   item.ID,
		SessionID: item.SessionID,
		UserID:    userId,
		Type:      string(item.Type),
	}
	if err := mq.PublishMediaUploaded(ctx, client, msg); err != nil {
		log.Printf("publish media.uploaded failed: %v", err)
	}
}

// GetMediaItem loads a media item, cache first.
func GetMediaItem(mediaId string) (*model.MediaItem, error) {
	ctx := context.Background()
	if cached, ok := utils.GetMediaItemFromCache(ctx, mediaId); ok && cached != nil {
		return cached, nil
	}

	var item model.MediaItem
	if err := repo.Db.Where("id = ?", mediaId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: media item %s", ErrNotFound, mediaId)
		}
		return nil, err
	}
	cacheMediaItem(ctx, &item)
	return &item, nil
}

const defaultPageSize = 50

// pageWindow clamps client paging to sane values.
func pageWindow(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return (page - 1) * pageSize, pageSize
}

// ListUserMedia returns a user's media, newest first. Membership is
// inferred through the owning session.
func ListUserMedia(userId string, req *dto.MediaListRequest) ([]model.MediaItem, int64, error) {
	if req == nil {
		req = &dto.MediaListRequest{}
	}
	var items []model.MediaItem
	var total int64

	query := repo.Db.Model(&model.MediaItem{}).
		Joins("JOIN backup_session ON backup_session.id = media_item.session_id").
		Where("backup_session.user_id = ?", userId)

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

// ListSessionMedia returns the items of one session in upload order.
func ListSessionMedia(sessionId string) ([]model.MediaItem, error) {
	if _, err := GetSession(sessionId, false); err != nil {
		return nil, err
	}
	var items []model.MediaItem
	err := repo.Db.
		Where("session_id = ?", sessionId).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

// DeleteMediaItem removes the record together with its backing blob and
// thumbnail blob if present.
func DeleteMediaItem(ctx context.Context, mediaId string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var item model.MediaItem
	if err := repo.Db.Where("id = ?", mediaId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: media item %s", ErrNotFound, mediaId)
		}
		return err
	}

	if err := repo.Db.Delete(&model.MediaItem{}, "id = ?", item.ID).Error; err != nil {
		return err
	}

	if storage.Default != nil {
		if err := storage.Default.RemoveObject(ctx, item.ServerPath); err != nil {
			log.Printf("remove blob %s failed: %v", item.ServerPath, err)
		}
		if item.ThumbnailPath != "" {
			if err := storage.Default.RemoveObject(ctx, item.ThumbnailPath); err != nil {
				log.Printf("remove thumbnail %s failed: %v", item.ThumbnailPath, err)
			}
		}
	}

	_ = utils.InvalidateMediaItemCache(ctx, item.ID)
	_ = utils.InvalidateSystemStatsCache(ctx)
	log.Printf("media item deleted: %s", item.FileName)
	return nil
}
