package test

import (
	"MediaVault/config"
	"MediaVault/internal/repo"
	"MediaVault/internal/service"
	"MediaVault/internal/storage"
	"MediaVault/model"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"sync/atomic"
	"testing"

	"golang.org/x/net/context"
)

var userSeq uint64

// TestMain sets up the test environment: SQLite in place of MySQL,
// a throwaway directory as the content store, and no message queue.
func TestMain(m *testing.M) {
	base, err := os.MkdirTemp("", "mediavault-test-*")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("STORAGE_BACKEND", "local")
	_ = os.Setenv("STORAGE_BASE_PATH", base)
	_ = os.Setenv("MQ_ENABLED", "false")

	config.InitConfig()
	repo.InitSqliteTest()
	storage.InitStorage()

	cleanupAllTables()

	code := m.Run()
	_ = os.RemoveAll(base)
	os.Exit(code)
}

// cleanupAllTables clears table data without dropping the schema.
func cleanupAllTables() {
	tables := []string{
		"media_item",
		"backup_session",
		"user_db",
	}
	for _, table := range tables {
		repo.Db.Exec("DELETE FROM " + table)
	}
	log.Println("[testmain] all tables cleaned")
}

// createTestUser registers a fresh user with a unique name.
func createTestUser(t *testing.T) *model.User {
	t.Helper()
	n := atomic.AddUint64(&userSeq, 1)
	user, _, _, err := service.RegisterUser(
		fmt.Sprintf("tester%d", n),
		fmt.Sprintf("tester%d@example.com", n),
		"password123",
	)
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return user
}

// createTestSession opens a backup session for the given user.
func createTestSession(t *testing.T, userID string) *model.BackupSession {
	t.Helper()
	session, err := service.StartSession(userID, model.BackupSessionInfo{
		DeviceName:  "test-device",
		DeviceModel: "pixel-9",
		AppVersion:  "1.0.0",
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return session
}

// uploadBytes pushes raw bytes through the full ingestion pipeline.
func uploadBytes(t *testing.T, sessionID, name string, data []byte) *model.MediaItem {
	t.Helper()
	item, err := service.UploadMedia(
		context.Background(),
		sessionID,
		bytes.NewReader(data),
		name,
		int64(len(data)),
		nil,
	)
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return item
}

// makeJPEG encodes a solid-color JPEG of the given dimensions.
func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// makePNG encodes a solid-color PNG of the given dimensions.
func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
