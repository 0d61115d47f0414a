package models

import "time"

// FileStats describes one input file found while walking a directory
type FileStats struct {
	Name    string // path relative to the walked directory, slash separated
	Path    string
	Output  string
	Size    int64
	ModTime time.Time
}
