package models

import "time"

// Sync attempt classification used in the sync_logs audit trail.
const (
	SyncTypeBackup  = "backup"
	SyncTypeRestore = "restore"

	SyncLogSuccess = "success"
	SyncLogFailed  = "failed"
)

// SyncLog is one append-only audit row of a sync attempt. Rows are written
// once and never updated or deleted.
type SyncLog struct {
	ID           int64     `json:"id"`
	SyncType     string    `json:"syncType"`
	SyncStatus   string    `json:"syncStatus"`
	SyncTime     time.Time `json:"syncTime"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	ItemsSynced  int       `json:"itemsSynced"`
}

// TaskStats holds the fresh aggregate counts reported by the store. Counts
// exclude soft-deleted rows.
type TaskStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	ArchivedTasks  int `json:"archivedTasks"`
	Habits         int `json:"habits"`
	Categories     int `json:"categories"`
}
