package model

import "time"

// Snapshot is the cached copy of one user's portfolio. A snapshot is only
// valid when SchemaVersion matches the version the reader expects.
type Snapshot struct {
	Profile       Profile           `json:"profile"`
	Repos         []RepositoryEntry `json:"repos"`
	Timestamp     int64             `json:"timestamp"` // Unix epoch milliseconds.
	SchemaVersion string            `json:"schemaVersion"`
}

// Age returns how long ago the snapshot was taken relative to now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.Timestamp))
}
