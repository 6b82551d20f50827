//go:build linux || darwin

package storage

import "syscall"

// freeSpace probes the filesystem holding path, best effort.
func freeSpace(path string) int64 {
	var fs syscall.Statfs_t
	if err := syscall.Statfs(path, &fs); err != nil {
		return -1
	}
	return int64(fs.Bavail) * int64(fs.Bsize)
}
