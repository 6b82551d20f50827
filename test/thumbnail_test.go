package test

import (
	"MediaVault/internal/service"
	"MediaVault/internal/storage"
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/context"
)

func readThumb(t *testing.T, path string) []byte {
	t.Helper()
	reader, _, err := storage.Default.GetObject(context.Background(), path)
	if err != nil {
		t.Fatalf("read thumbnail: %v", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read thumbnail bytes: %v", err)
	}
	return data
}

func thumbDimensions(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("thumbnail format = %s, want jpeg", format)
	}
	return cfg.Width, cfg.Height
}

func TestThumbnailResizesLongestEdge(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "wide.jpg", makeJPEG(t, 600, 300))
	path, err := service.GenerateThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasSuffix(path, item.ID+"_thumb.jpg") {
		t.Fatalf("thumbnail path = %q", path)
	}

	w, h := thumbDimensions(t, readThumb(t, path))
	if w != 300 || h != 150 {
		t.Fatalf("thumbnail = %dx%d, want 300x150", w, h)
	}
}

func TestThumbnailUpscalesSmallPhoto(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "tiny.png", makePNG(t, 100, 50))
	path, err := service.GenerateThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Scaling always normalizes the longest edge, enlarging included.
	w, h := thumbDimensions(t, readThumb(t, path))
	if w != 300 || h != 150 {
		t.Fatalf("thumbnail = %dx%d, want 300x150", w, h)
	}
}

func TestThumbnailIdempotent(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "again.jpg", makeJPEG(t, 400, 400))
	path1, err := service.GenerateThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	first := readThumb(t, path1)

	path2, err := service.GenerateThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if path2 != path1 {
		t.Fatalf("paths differ: %q vs %q", path1, path2)
	}
	if !bytes.Equal(first, readThumb(t, path2)) {
		t.Fatal("thumbnail re-rendered on second call")
	}
}

func TestVideoThumbnailNotImplemented(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "clip.mp4", []byte("fake video payload"))
	_, err := service.GenerateThumbnail(context.Background(), item.ID)
	if !errors.Is(err, service.ErrNotImplemented) {
		t.Fatalf("err = %v, want not implemented", err)
	}

	reloaded, err := service.GetMediaItem(item.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ThumbnailPath != "" {
		t.Fatalf("thumbnail path = %q, want empty", reloaded.ThumbnailPath)
	}
}

func TestThumbnailRejectsUnknownSignature(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	// Claims to be a JPEG but opens with zero bytes; the magic-number
	// sniff rejects it before any decode.
	data := make([]byte, 32)
	item := uploadBytes(t, session.ID, "fake.jpg", data)
	_, err := service.GenerateThumbnail(context.Background(), item.ID)
	if !errors.Is(err, service.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want unsupported format", err)
	}
}

func TestThumbnailRejectsTruncatedJpeg(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	// Valid magic prefix but undecodable body.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	item := uploadBytes(t, session.ID, "broken.jpg", data)
	_, err := service.GenerateThumbnail(context.Background(), item.ID)
	if !errors.Is(err, service.ErrCorruptImage) {
		t.Fatalf("err = %v, want corrupt image", err)
	}
}

func TestThumbnailSourceMissing(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "vanished.jpg", makeJPEG(t, 64, 64))
	if err := storage.Default.RemoveObject(context.Background(), item.ServerPath); err != nil {
		t.Fatalf("remove original blob: %v", err)
	}

	_, err := service.GenerateThumbnail(context.Background(), item.ID)
	if !errors.Is(err, service.ErrSourceMissing) {
		t.Fatalf("err = %v, want source missing", err)
	}
}

func TestThumbnailEmptySource(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "hollow.jpg", makeJPEG(t, 64, 64))
	// Truncate the stored original to zero bytes.
	err := storage.Default.PutObject(context.Background(), item.ServerPath, bytes.NewReader(nil), 0, storage.PutOptions{})
	if err != nil {
		t.Fatalf("truncate original blob: %v", err)
	}

	_, err = service.GenerateThumbnail(context.Background(), item.ID)
	if !errors.Is(err, service.ErrEmptySource) {
		t.Fatalf("err = %v, want empty source", err)
	}
}

func TestGetThumbnailRendersLazily(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "lazy.jpg", makeJPEG(t, 320, 240))
	data, err := service.GetThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get thumbnail: %v", err)
	}
	if len(data) < 3 || data[0] != 0xFF || data[1] != 0xD8 || data[2] != 0xFF {
		t.Fatal("thumbnail is not a JPEG")
	}

	reloaded, err := service.GetMediaItem(item.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ThumbnailPath == "" {
		t.Fatal("thumbnail path not recorded")
	}
}

func TestGetThumbnailHealsMissingBlob(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	item := uploadBytes(t, session.ID, "heal.jpg", makeJPEG(t, 320, 240))
	path, err := service.GenerateThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := storage.Default.RemoveObject(context.Background(), path); err != nil {
		t.Fatalf("remove thumbnail blob: %v", err)
	}

	data, err := service.GetThumbnail(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get after removal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("re-rendered thumbnail is empty")
	}
}
