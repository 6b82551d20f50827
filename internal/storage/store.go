package storage

import (
	"MediaVault/config"
	"context"
	"io"
	"log"
)

// PutOptions describes upload options for the content store.
type PutOptions struct {
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	ObjectName string
	Size       int64
}

// Store abstracts the content store holding original and derived blobs.
// Object names are slash-separated paths relative to the store root, e.g.
// "<userID>/<uuid>.jpg" or "Thumbnails/<mediaID>_thumb.jpg".
type Store interface {
	PutObject(ctx context.Context, object string, reader io.Reader, size int64, opts PutOptions) error
	GetObject(ctx context.Context, object string) (io.ReadCloser, ObjectInfo, error)
	StatObject(ctx context.Context, object string) (ObjectInfo, error)
	RemoveObject(ctx context.Context, object string) error
	// FreeSpace reports remaining bytes on the backing volume, or -1
	// when the probe is not supported or fails.
	FreeSpace() int64
}

// Default is the main content store instance.
var Default Store

// InitStorage selects and initializes the configured backend.
func InitStorage() {
	cfg := config.StorageConfigInstance
	switch cfg.Backend {
	case "minio":
		InitMinio()
	default:
		store, err := NewLocalStore(cfg.BasePath)
		if err != nil {
			log.Fatal("init local storage fail", err)
		}
		log.Println("init local storage success:", cfg.BasePath)
		Default = store
	}
}
