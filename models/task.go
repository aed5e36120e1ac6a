package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskType discriminates one-shot tasks from recurring habits.
type TaskType string

const (
	TypeTask  TaskType = "task"
	TypeHabit TaskType = "habit"
)

// Valid reports whether the value is one of the known task types.
func (t TaskType) Valid() bool {
	return t == TypeTask || t == TypeHabit
}

// Priority is the user-facing urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the value is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// SyncStatus marks whether the last local mutation of a row has been
// reflected in a remote backup.
type SyncStatus string

const (
	SyncPending  SyncStatus = "pending"
	SyncSynced   SyncStatus = "synced"
	SyncConflict SyncStatus = "conflict"
)

// Task is the external representation of one unit of work or a recurring
// habit, as consumed by the presentation layer and the backup document.
// Rows are soft-deleted: IsDeleted marks a row invisible to normal queries
// without physically removing it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        TaskType   `json:"type"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Tags        []string   `json:"tags"`

	// Habit-only fields; zero for plain tasks.
	Progress int `json:"progress,omitempty"`
	Streak   int `json:"streak,omitempty"`

	IsStarred  bool `json:"isStarred"`
	IsArchived bool `json:"isArchived"`
	IsDeleted  bool `json:"isDeleted"`

	// Version strictly increases by 1 on every mutating update.
	Version    int64      `json:"version"`
	SyncStatus SyncStatus `json:"syncStatus"`
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`
}

// TaskUpdate is a typed partial update for a task. Only the fields of this
// struct may be changed through the normal update path; a nil field leaves
// the column untouched. Replaces the string-keyed allow list of earlier
// versions so that an unknown key is a compile error instead of a silent
// no-op.
type TaskUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Type        *TaskType   `json:"type,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Completed   *bool       `json:"completed,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	Progress    *int        `json:"progress,omitempty"`
	Streak      *int        `json:"streak,omitempty"`
	IsStarred   *bool       `json:"isStarred,omitempty"`
	IsArchived  *bool       `json:"isArchived,omitempty"`
}

// IsEmpty reports whether the update carries no field at all. An empty
// update is a no-op: the row keeps its version, updatedAt and syncStatus.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Type == nil &&
		u.Priority == nil &&
		u.Category == nil &&
		u.Deadline == nil &&
		u.Completed == nil &&
		u.Tags == nil &&
		u.Progress == nil &&
		u.Streak == nil &&
		u.IsStarred == nil &&
		u.IsArchived == nil
}

// NewID generates a unique row id. Time-ordered v7 when available so that
// freshly created rows cluster in the primary key index.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
