package test

import (
	"MediaVault/internal/service"
	"MediaVault/model"
	"testing"
)

func TestMediaTypeForExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want model.MediaType
	}{
		{".jpg", model.MediaPhoto},
		{".JPEG", model.MediaPhoto},
		{".png", model.MediaPhoto},
		{".heic", model.MediaPhoto},
		{".webp", model.MediaPhoto},
		{".mp4", model.MediaVideo},
		{".MOV", model.MediaVideo},
		{".mkv", model.MediaVideo},
		// Unknown extensions fall through to video.
		{".xyz", model.MediaVideo},
		{"", model.MediaVideo},
	}
	for _, tc := range cases {
		if got := service.MediaTypeForExtension(tc.ext); got != tc.want {
			t.Errorf("MediaTypeForExtension(%q) = %s, want %s", tc.ext, got, tc.want)
		}
	}
}

func TestGetContentType(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"holiday.jpg", "image/jpeg"},
		{"holiday.JPEG", "image/jpeg"},
		{"screen.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"clip.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"unknown.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := service.GetContentType(tc.name); got != tc.want {
			t.Errorf("GetContentType(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}
