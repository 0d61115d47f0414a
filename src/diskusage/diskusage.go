//go:build !windows

package diskusage

import (
	"golang.org/x/sys/unix"
)

// DiskUsage contains usage data and provides user-friendly access methods
type DiskUsage struct {
	free      uint64
	available uint64
	size      uint64
}

// NewDiskUsage returns an object holding the disk usage of volumePath
// or nil in case of error (invalid path, etc)
func NewDiskUsage(volumePath string) *DiskUsage {
	stat := unix.Statfs_t{}
	if err := unix.Statfs(volumePath, &stat); err != nil {
		return nil
	}
	bsize := uint64(stat.Bsize)
	return &DiskUsage{
		free:      uint64(stat.Bfree) * bsize,
		available: uint64(stat.Bavail) * bsize,
		size:      uint64(stat.Blocks) * bsize,
	}
}
