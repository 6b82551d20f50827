package service

import (
	"MediaVault/config"
	"MediaVault/internal/repo"
	"MediaVault/internal/storage"
	"MediaVault/model"
	"MediaVault/utils"
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
	"log"

	"github.com/disintegration/imaging"
	"golang.org/x/net/context"
)

const (
	// Longest edge of a rendered thumbnail, in pixels.
	thumbnailMaxSize = 300
	// JPEG quality of rendered thumbnails.
	thumbnailQuality = 85

	signatureLength = 12
)

// ThumbnailObjectName returns the deterministic derived path for a
// media item's preview.
func ThumbnailObjectName(mediaId string) string {
	return fmt.Sprintf("%s/%s_thumb.jpg", config.StorageConfigInstance.ThumbnailDir, mediaId)
}

// GenerateThumbnail renders a bounded preview for a media item and
// records the derived path. Already-rendered thumbnails short-circuit.
func GenerateThumbnail(ctx context.Context, mediaId string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	item, err := GetMediaItem(mediaId)
	if err != nil {
		return "", err
	}
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized")
	}

	thumbName := ThumbnailObjectName(item.ID)
	if _, err := storage.Default.StatObject(ctx, thumbName); err == nil {
		if item.ThumbnailPath != thumbName {
			if err := recordThumbnailPath(ctx, item, thumbName); err != nil {
				return "", err
			}
		}
		return thumbName, nil
	}

	srcStat, err := storage.Default.StatObject(ctx, item.ServerPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, item.ServerPath)
	}
	if srcStat.Size == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptySource, item.ServerPath)
	}

	switch item.Type {
	case model.MediaPhoto:
		if err := renderPhotoThumbnail(ctx, item, thumbName); err != nil {
			return "", err
		}
	case model.MediaVideo:
		// First-frame extraction would need a video decoder; clients
		// treat this as "no preview available".
		return "", fmt.Errorf("%w: video thumbnail generation", ErrNotImplemented)
	default:
		return "", fmt.Errorf("%w: media type %q", ErrInvalidRequest, item.Type)
	}

	if err := recordThumbnailPath(ctx, item, thumbName); err != nil {
		return "", err
	}
	return thumbName, nil
}

// renderPhotoThumbnail decodes the stored original, scales it so the
// longer edge equals thumbnailMaxSize, and writes the JPEG result.
func renderPhotoThumbnail(ctx context.Context, item *model.MediaItem, thumbName string) error {
	obj, _, err := storage.Default.GetObject(ctx, item.ServerPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSourceMissing, item.ServerPath)
	}
	data, err := io.ReadAll(obj)
	_ = obj.Close()
	if err != nil {
		return err
	}

	header := data
	if len(header) > signatureLength {
		header = header[:signatureLength]
	}
	isJpeg := len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF
	isPng := len(header) >= 4 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47
	if !isJpeg && !isPng {
		log.Printf("thumbnail source %s not JPEG or PNG, magic bytes: % X", item.ServerPath, header)
		return fmt.Errorf("%w: expected JPEG or PNG, got magic bytes % X", ErrUnsupportedFormat, header)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("decode failed for %s (%s, %d bytes): %v", item.ServerPath, item.FileExtension, len(data), err)
		return fmt.Errorf("%w: %s", ErrCorruptImage, item.ServerPath)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := width
	if height > longest {
		longest = height
	}
	ratio := float64(thumbnailMaxSize) / float64(longest)
	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)

	thumb := imaging.Resize(img, newWidth, newHeight, imaging.Linear)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return err
	}
	if err := storage.Default.PutObject(ctx, thumbName, &buf, int64(buf.Len()), storage.PutOptions{
		ContentType: "image/jpeg",
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	log.Printf("generated thumbnail for %s: %dx%d from %dx%d", item.ID, newWidth, newHeight, width, height)
	return nil
}

func recordThumbnailPath(ctx context.Context, item *model.MediaItem, thumbName string) error {
	if err := repo.Db.Model(&model.MediaItem{}).
		Where("id = ?", item.ID).
		UpdateColumn("thumbnail_path", thumbName).Error; err != nil {
		return err
	}
	item.ThumbnailPath = thumbName
	_ = utils.InvalidateMediaItemCache(ctx, item.ID)
	return nil
}

// GetThumbnail returns thumbnail bytes for a media item, rendering on
// first read. Retrieval is self-healing: a recorded path whose blob has
// gone missing triggers a re-render.
func GetThumbnail(ctx context.Context, mediaId string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	item, err := GetMediaItem(mediaId)
	if err != nil {
		return nil, err
	}
	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	needsRender := item.ThumbnailPath == ""
	if !needsRender {
		if _, err := storage.Default.StatObject(ctx, item.ThumbnailPath); err != nil {
			needsRender = true
		}
	}
	if needsRender {
		if _, err := GenerateThumbnail(ctx, mediaId); err != nil {
			return nil, err
		}
		item, err = GetMediaItem(mediaId)
		if err != nil {
			return nil, err
		}
	}
	if item.ThumbnailPath == "" {
		return nil, fmt.Errorf("%w: no thumbnail for media %s", ErrNotFound, mediaId)
	}

	obj, _, err := storage.Default.GetObject(ctx, item.ThumbnailPath)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail blob %s", ErrNotFound, item.ThumbnailPath)
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
