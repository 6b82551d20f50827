//go:build !linux && !darwin

package storage

// freeSpace is not supported on this platform.
func freeSpace(path string) int64 {
	return -1
}
