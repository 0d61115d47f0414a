package diskusage

import (
	"golang.org/x/sys/windows"
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
	p, err := windows.UTF16PtrFromString(volumePath)
	if err != nil {
		return nil
	}
	du := new(DiskUsage)
	if err = windows.GetDiskFreeSpaceEx(p, &du.available, &du.size, &du.free); err != nil {
		return nil
	}
	return du
}
