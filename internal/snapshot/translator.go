// Package snapshot translates between the local task schema and the legacy
// mobile snapshot document. The mapping is lossy in both directions: the
// snapshot schema has no priority, tags or category, and the local schema
// has no calendar event. Malformed fields degrade to safe defaults; a
// translation never fails because of one bad row.
package snapshot

import (
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/models"
)

const (
	// deviceID identifies this client in the per-export version stamps.
	deviceID = "deadliner-desktop"

	// habitTotalTarget is the fixed habit_total_count the mobile client
	// expects on habit rows.
	habitTotalTarget = 21

	fallbackTitle = "Untitled Task"
)

// TasksFromSnapshot maps every usable snapshot item to a local task. Items
// flagged deleted and items without a doc are skipped. Every task is filed
// under defaultCategory; the caller is responsible for making that category
// exist.
func TasksFromSnapshot(snap models.Snapshot, defaultCategory string, now time.Time) []models.Task {
	tasks := make([]models.Task, 0, len(snap.Items))

	for _, item := range snap.Items {
		if item.Deleted != 0 || item.Doc == nil {
			continue
		}
		tasks = append(tasks, taskFromDoc(item, defaultCategory, now))
	}

	return tasks
}

func taskFromDoc(item models.SnapshotItem, defaultCategory string, now time.Time) models.Task {
	doc := item.Doc

	id := doc.ID
	if id == "" {
		id = item.UID
	}
	if id == "" {
		id = models.NewID()
	}

	title := doc.Name
	if title == "" {
		title = fallbackTitle
	}

	taskType := models.TypeTask
	if doc.Type == string(models.TypeHabit) {
		taskType = models.TypeHabit
	}

	task := models.Task{
		ID:          id,
		Title:       title,
		Description: doc.Note,
		Type:        taskType,
		// The snapshot schema has no priority concept.
		Priority:   models.PriorityMedium,
		Category:   defaultCategory,
		Completed:  doc.IsCompleted == 1,
		CreatedAt:  instantOr(doc.StartTime, now),
		UpdatedAt:  instantOr(doc.Timestamp, now),
		Tags:       []string{},
		IsStarred:  doc.IsStared == 1,
		IsArchived: doc.IsArchived == 1,
	}

	if doc.EndTime > 0 {
		deadline := time.UnixMilli(doc.EndTime)
		task.Deadline = &deadline
	}

	if taskType == models.TypeHabit {
		task.Streak = max(doc.HabitCount, 0)
		task.Progress = habitProgress(doc.HabitCount, doc.HabitTotalCount)
	}

	return task
}

// SnapshotFromTasks maps every task into one snapshot item with a synthetic
// per-export version stamp. Callers pass only non-deleted tasks.
func SnapshotFromTasks(tasks []models.Task, now time.Time) models.Snapshot {
	stamp := models.SnapshotStamp{TS: now.UnixMilli(), Dev: deviceID}

	items := make([]models.SnapshotItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, models.SnapshotItem{
			UID:     task.ID,
			Ver:     models.SnapshotStamp{TS: now.UnixMilli(), Ctr: 0, Dev: deviceID},
			Deleted: 0,
			Doc:     docFromTask(task),
		})
	}

	return models.Snapshot{
		Version: stamp,
		Items:   items,
	}
}

func docFromTask(task models.Task) *models.SnapshotDoc {
	doc := &models.SnapshotDoc{
		ID:          task.ID,
		Name:        task.Title,
		Note:        task.Description,
		Type:        string(task.Type),
		IsCompleted: intFlag(task.Completed),
		IsArchived:  intFlag(task.IsArchived),
		IsStared:    intFlag(task.IsStarred),
		StartTime:   task.CreatedAt.UnixMilli(),
		Timestamp:   task.UpdatedAt.UnixMilli(),
	}

	if task.Deadline != nil {
		doc.EndTime = task.Deadline.UnixMilli()
	}
	if task.Completed {
		doc.CompleteTime = task.UpdatedAt.UnixMilli()
	}
	if task.Type == models.TypeHabit {
		doc.HabitCount = max(task.Streak, 0)
		doc.HabitTotalCount = habitTotalTarget
	}

	return doc
}

func habitProgress(count, total int) int {
	if total <= 0 || count <= 0 {
		return 0
	}
	progress := count * 100 / total
	if progress > 100 {
		return 100
	}
	return progress
}

func instantOr(ms int64, fallback time.Time) time.Time {
	if ms > 0 {
		return time.UnixMilli(ms)
	}
	return fallback
}

func intFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
