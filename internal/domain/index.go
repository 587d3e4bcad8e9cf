package domain

import "time"

// IndexNode is a directory recorded by the directory index
type IndexNode struct {
	Path      string // logical path, e.g. Assets/Game/Art
	Depth     int    // segments below the root
	HasMarker bool
	Mtime     int64 // Unix timestamp
}

// SyncStats holds statistics from an index refresh
type SyncStats struct {
	NodesAdded   int
	NodesUpdated int
	NodesDeleted int
	DirsScanned  int
	Duration     time.Duration
}
