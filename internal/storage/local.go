package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements Store on a plain filesystem tree.
type LocalStore struct {
	base string
}

// NewLocalStore creates the base directory and returns the store.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{base: base}, nil
}

// resolve maps an object name onto the base directory, rejecting names
// that would escape it.
func (s *LocalStore) resolve(object string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(object))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object name: %q", object)
	}
	return filepath.Join(s.base, clean), nil
}

// PutObject writes the full stream to disk. The destination handle is
// closed on every exit path before returning.
func (s *LocalStore) PutObject(ctx context.Context, object string, reader io.Reader, size int64, opts PutOptions) error {
	path, err := s.resolve(object)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	written, copyErr := io.Copy(dst, reader)
	closeErr := dst.Close()
	if copyErr != nil {
		_ = os.Remove(path)
		return copyErr
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return closeErr
	}
	if size >= 0 && written != size {
		_ = os.Remove(path)
		return fmt.Errorf("short write: wrote %d of %d bytes", written, size)
	}
	return nil
}

// GetObject opens a stored object for reading.
func (s *LocalStore) GetObject(ctx context.Context, object string) (io.ReadCloser, ObjectInfo, error) {
	path, err := s.resolve(object)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{ObjectName: object, Size: stat.Size()}, nil
}

// StatObject reports the size of a stored object.
func (s *LocalStore) StatObject(ctx context.Context, object string) (ObjectInfo, error) {
	path, err := s.resolve(object)
	if err != nil {
		return ObjectInfo{}, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{ObjectName: object, Size: stat.Size()}, nil
}

// RemoveObject deletes a stored object. Removing a missing object is
// not an error.
func (s *LocalStore) RemoveObject(ctx context.Context, object string) error {
	path, err := s.resolve(object)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FreeSpace reports the remaining bytes on the backing volume.
func (s *LocalStore) FreeSpace() int64 {
	return freeSpace(s.base)
}
