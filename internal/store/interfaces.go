package store

import (
	"context"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TaskRepository is the low-level task table repository. All read methods
// exclude soft-deleted rows; every mutating method bumps updated_at and
// version and resets sync_status to pending.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) error
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
	ArchiveTask(ctx context.Context, id string) error
	UnarchiveTask(ctx context.Context, id string) error
	BatchUpdateTasks(ctx context.Context, ids []string, update models.TaskUpdate) error

	// PurgeAllTasks hard-deletes every row in the task table, including
	// soft-deleted ones. Irreversible; used only for destructive resets
	// such as a full snapshot import.
	PurgeAllTasks(ctx context.Context) error
}

// CategoryRepository stores the named task groupings with the same
// soft-delete visibility rule as tasks.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) error
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CheckinRepository stores dated habit-day outcomes. Duplicate rows for the
// same (taskId, day) are allowed at this layer.
type CheckinRepository interface {
	CreateHabitCheckin(ctx context.Context, checkin models.HabitCheckin) error
	GetHabitCheckins(ctx context.Context, taskID string, start, end time.Time) ([]models.HabitCheckin, error)
}

// SyncLogRepository appends to the write-once sync audit trail.
type SyncLogRepository interface {
	LogSync(ctx context.Context, syncType, status string, itemsSynced int, errorMessage string) error
	GetRecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLog, error)
}

// StatsRepository computes fresh aggregate counts per call.
type StatsRepository interface {
	GetStats(ctx context.Context) (models.TaskStats, error)
}
