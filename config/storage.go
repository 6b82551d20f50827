package config

import (
	"os"
	"path/filepath"
	"sync"
)

// StorageConfig holds content-store settings.
type StorageConfig struct {
	Backend      string      `json:"backend"` // local, minio
	BasePath     string      `json:"base_path"`
	ThumbnailDir string      `json:"thumbnail_dir"` // relative to BasePath
	Minio        MinioConfig `json:"minio"`
}

// MinioConfig describes the optional MinIO backend.
type MinioConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Bucket   string `json:"bucket"`
	UseSSL   bool   `json:"use_ssl"`
}

var StorageConfigInstance *StorageConfig
var storageConfigOnce sync.Once

// InitStorageConfig initializes storage config.
func InitStorageConfig() {
	storageConfigOnce.Do(func() {
		base := getEnv("STORAGE_BASE_PATH", "")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = os.TempDir()
			}
			base = filepath.Join(home, "MediaBackup")
		}
		StorageConfigInstance = &StorageConfig{
			Backend:      getEnv("STORAGE_BACKEND", "local"),
			BasePath:     base,
			ThumbnailDir: getEnv("STORAGE_THUMBNAIL_DIR", "Thumbnails"),
			Minio: MinioConfig{
				Host:     getEnv("MINIO_HOST", "localhost"),
				Port:     getEnv("MINIO_PORT", "9000"),
				Username: getEnv("MINIO_USERNAME", "minioadmin"),
				Password: getEnv("MINIO_PASSWORD", "minioadmin"),
				Bucket:   getEnv("BUCKET_NAME", "mediavault"),
				UseSSL:   false,
			},
		}
	})
}
