package service

import (
	"MediaVault/model"
	"path"
	"strings"
)

// Extension allow-lists used for classification. An extension on neither
// list falls through to the video branch; arbitrary extensions are never
// rejected at this stage.
var photoExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {},
	".tiff": {}, ".webp": {}, ".heic": {}, ".heif": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {},
	".webm": {}, ".mkv": {}, ".m4v": {}, ".3gp": {}, ".mpg": {}, ".mpeg": {},
}

// MediaTypeForExtension classifies a file extension.
func MediaTypeForExtension(ext string) model.MediaType {
	ext = strings.ToLower(ext)
	if _, ok := photoExtensions[ext]; ok {
		return model.MediaPhoto
	}
	if _, ok := videoExtensions[ext]; ok {
		return model.MediaVideo
	}
	// Unknown extensions default to video, matching the historical
	// upload behavior clients depend on.
	return model.MediaVideo
}

// GetContentType maps a file name or extension to a MIME type for serving.
func GetContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		ext = strings.ToLower(name)
	}
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	case ".heic", ".heif":
		return "image/heic"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}
