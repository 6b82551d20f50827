package handler

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/service"
	"MediaVault/internal/storage"
	"MediaVault/model"
	"MediaVault/utils"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadMedia accepts one multipart file for a session. An optional
// "metadata" form field carries client-side capture metadata as JSON.
func UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required: " + err.Error()})
		return
	}

	var metadata *model.MediaMetadata
	if raw := c.PostForm("metadata"); raw != "" {
		metadata = &model.MediaMetadata{}
		if err := json.Unmarshal([]byte(raw), metadata); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid metadata: " + err.Error()})
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload: " + err.Error()})
		return
	}
	defer src.Close()

	item, err := service.UploadMedia(
		c.Request.Context(),
		c.Param("sessionId"),
		src,
		fileHeader.Filename,
		fileHeader.Size,
		metadata,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, item)
}

// GetMediaItem returns one media record.
func GetMediaItem(c *gin.Context) {
	item, err := service.GetMediaItem(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, item)
}

// DownloadMediaFile streams the original stored bytes.
func DownloadMediaFile(c *gin.Context) {
	item, err := service.GetMediaItem(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	reader, info, err := storage.Default.GetObject(c.Request.Context(), item.ServerPath)
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	defer reader.Close()

	contentType := service.GetContentType(item.FileName)
	disposition := fmt.Sprintf("inline; filename=%q", utils.SanitizeHeaderFilename(item.FileName))
	c.DataFromReader(http.StatusOK, info.Size, contentType, reader, map[string]string{
		"Content-Disposition": disposition,
	})
}

// GetMediaThumbnail returns the media's JPEG preview, rendering it on
// first access.
func GetMediaThumbnail(c *gin.Context) {
	data, err := service.GetThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

// DeleteMediaItem removes the record, the stored blob, and any
// thumbnail.
func DeleteMediaItem(c *gin.Context) {
	if err := service.DeleteMediaItem(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, gin.H{"msg": "deleted"})
}

// ListMedia pages through the authenticated user's media library.
func ListMedia(c *gin.Context) {
	var req dto.MediaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(string)
	items, total, err := service.ListUserMedia(userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, dto.MediaListResponse{Items: items, Total: total})
}

// ListSessionMedia returns every media item ingested by one session.
func ListSessionMedia(c *gin.Context) {
	items, err := service.ListSessionMedia(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, items)
}

// SearchMedia filters the user's media by text and date window.
func SearchMedia(c *gin.Context) {
	var req dto.MediaSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(string)
	items, total, err := service.SearchMedia(userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, dto.MediaListResponse{Items: items, Total: total})
}
