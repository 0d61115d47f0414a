package diskusage

// Free returns total free bytes on file system
func (du *DiskUsage) Free() uint64 {
	return du.free
}

// Available return total available bytes on file system to an unprivileged user
func (du *DiskUsage) Available() uint64 {
	return du.available
}

// Size returns total size of the file system
func (du *DiskUsage) Size() uint64 {
	return du.size
}

// Used returns total bytes used in file system
func (du *DiskUsage) Used() uint64 {
	return du.size - du.free
}

// Usage returns percentage of use on the file system
func (du *DiskUsage) Usage() float32 {
	if du.size == 0 {
		return 0
	}
	return float32(du.Used()) / float32(du.size)
}

// HasRoom reports whether need more bytes fit on the volume holding
// volumePath. It answers true when the usage cannot be determined.
func HasRoom(volumePath string, need int64) bool {
	du := NewDiskUsage(volumePath)
	if du == nil || need <= 0 {
		return true
	}
	return du.Available() >= uint64(need)
}
