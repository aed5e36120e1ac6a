package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	l := logger.NewLogger("test")
	db, err := NewConnectSQLite(context.Background(), ":memory:", l)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newTestTaskRepo(t *testing.T) (TaskRepository, *DB) {
	t.Helper()
	db := newTestDB(t)
	return NewTaskRepository(db, db.logger), db
}

func makeTask(id string) models.Task {
	return models.Task{
		ID:       id,
		Title:    "write report",
		Type:     models.TypeTask,
		Priority: models.PriorityMedium,
		Category: "work",
		Tags:     []string{"office"},
	}
}

func mustCreateTask(t *testing.T, repo TaskRepository, task models.Task) {
	t.Helper()
	if err := repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("failed to create task %s: %v", task.ID, err)
	}
}

func mustGetTask(t *testing.T, repo TaskRepository, id string) models.Task {
	t.Helper()
	task, err := repo.GetTaskByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get task %s: %v", id, err)
	}
	if task == nil {
		t.Fatalf("task %s not found", id)
	}
	return *task
}

func TestCreateTask_RoundTrip(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	deadline := time.Now().Add(48 * time.Hour).Truncate(time.Millisecond)
	task := makeTask("t-1")
	task.Description = "quarterly numbers"
	task.Deadline = &deadline
	task.Tags = []string{"office", "finance"}
	task.IsStarred = true

	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mustGetTask(t, repo, "t-1")

	if got.Title != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, got.Title)
	}
	if got.Description != task.Description {
		t.Errorf("expected description %q, got %q", task.Description, got.Description)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, got.Deadline)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "office" || got.Tags[1] != "finance" {
		t.Errorf("unexpected tags: %v", got.Tags)
	}
	if !got.IsStarred {
		t.Error("expected starred task")
	}
	if got.Version != 1 {
		t.Errorf("expected version 1 on a fresh task, got %d", got.Version)
	}
	if got.SyncStatus != models.SyncPending {
		t.Errorf("expected pending sync status, got %q", got.SyncStatus)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be filled in")
	}
}

func TestCreateTask_DuplicateID(t *testing.T) {
	repo, _ := newTestTaskRepo(t)

	mustCreateTask(t, repo, makeTask("t-dup"))

	err := repo.CreateTask(context.Background(), makeTask("t-dup"))
	if !errors.Is(err, ErrTaskAlreadyExists) {
		t.Fatalf("expected ErrTaskAlreadyExists, got %v", err)
	}
}

func TestCreateTask_InvalidInput(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Task)
	}{
		{"missing id", func(task *models.Task) { task.ID = "" }},
		{"missing title", func(task *models.Task) { task.Title = "" }},
		{"missing category", func(task *models.Task) { task.Category = "" }},
		{"unknown type", func(task *models.Task) { task.Type = "reminder" }},
		{"unknown priority", func(task *models.Task) { task.Priority = "urgent" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := makeTask("t-bad")
			tc.mutate(&task)

			if err := repo.CreateTask(ctx, task); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGetAllTasks_ExcludesDeleted(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	older := makeTask("t-old")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := makeTask("t-new")
	newer.CreatedAt = time.Now()
	gone := makeTask("t-gone")

	mustCreateTask(t, repo, older)
	mustCreateTask(t, repo, newer)
	mustCreateTask(t, repo, gone)

	if err := repo.DeleteTask(ctx, "t-gone"); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	tasks, err := repo.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "t-new" || tasks[1].ID != "t-old" {
		t.Errorf("expected newest-first ordering, got %s, %s", tasks[0].ID, tasks[1].ID)
	}
}

func TestGetTaskByID_NotFound(t *testing.T) {
	repo, _ := newTestTaskRepo(t)

	task, err := repo.GetTaskByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != nil {
		t.Fatalf("expected nil for a missing task, got %+v", task)
	}
}

func TestUpdateTask_BumpsVersionAndResetsSyncStatus(t *testing.T) {
	repo, db := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))

	// Simulate a completed sync so the reset is observable.
	_, err := db.ExecContext(ctx, `UPDATE tasks SET sync_status = 'synced' WHERE id = 't-1';`)
	if err != nil {
		t.Fatalf("failed to mark task synced: %v", err)
	}

	title := "write final report"
	completed := true
	if err := repo.UpdateTask(ctx, "t-1", models.TaskUpdate{Title: &title, Completed: &completed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mustGetTask(t, repo, "t-1")
	if got.Title != title {
		t.Errorf("expected title %q, got %q", title, got.Title)
	}
	if !got.Completed {
		t.Error("expected completed task")
	}
	if got.Version != 2 {
		t.Errorf("expected version 2 after one update, got %d", got.Version)
	}
	if got.SyncStatus != models.SyncPending {
		t.Errorf("expected sync status reset to pending, got %q", got.SyncStatus)
	}
}

func TestUpdateTask_EmptyUpdateIsNoop(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))

	if err := repo.UpdateTask(ctx, "t-1", models.TaskUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mustGetTask(t, repo, "t-1")
	if got.Version != 1 {
		t.Errorf("expected version untouched by empty update, got %d", got.Version)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	repo, _ := newTestTaskRepo(t)

	title := "ghost"
	err := repo.UpdateTask(context.Background(), "missing", models.TaskUpdate{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateTask_InvalidEnum(t *testing.T) {
	repo, _ := newTestTaskRepo(t)

	mustCreateTask(t, repo, makeTask("t-1"))

	badPriority := models.Priority("urgent")
	err := repo.UpdateTask(context.Background(), "t-1", models.TaskUpdate{Priority: &badPriority})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteTask_SoftDelete(t *testing.T) {
	repo, db := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))

	if err := repo.DeleteTask(ctx, "t-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task, err := repo.GetTaskByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != nil {
		t.Fatal("expected deleted task to be invisible")
	}

	// The row itself survives with the bookkeeping applied.
	var version int64
	var syncStatus string
	row := db.QueryRowContext(ctx, `SELECT version, sync_status FROM tasks WHERE id = 't-1';`)
	if err := row.Scan(&version, &syncStatus); err != nil {
		t.Fatalf("expected row to survive soft delete: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2 after delete, got %d", version)
	}
	if syncStatus != "pending" {
		t.Errorf("expected pending sync status after delete, got %q", syncStatus)
	}

	if err := repo.DeleteTask(ctx, "t-1"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on double delete, got %v", err)
	}
}

func TestArchiveUnarchiveTask(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))

	if err := repo.ArchiveTask(ctx, "t-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustGetTask(t, repo, "t-1"); !got.IsArchived {
		t.Error("expected archived task")
	}

	if err := repo.UnarchiveTask(ctx, "t-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustGetTask(t, repo, "t-1")
	if got.IsArchived {
		t.Error("expected task no longer archived")
	}
	if got.Version != 3 {
		t.Errorf("expected version 3 after two toggles, got %d", got.Version)
	}

	if err := repo.ArchiveTask(ctx, "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestBatchUpdateTasks_Atomic(t *testing.T) {
	repo, _ := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))
	mustCreateTask(t, repo, makeTask("t-2"))

	archived := true
	err := repo.BatchUpdateTasks(ctx, []string{"t-1", "missing", "t-2"}, models.TaskUpdate{IsArchived: &archived})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	// The failed batch must leave both rows untouched.
	for _, id := range []string{"t-1", "t-2"} {
		got := mustGetTask(t, repo, id)
		if got.IsArchived {
			t.Errorf("expected %s unarchived after rollback", id)
		}
		if got.Version != 1 {
			t.Errorf("expected %s at version 1 after rollback, got %d", id, got.Version)
		}
	}

	if err := repo.BatchUpdateTasks(ctx, []string{"t-1", "t-2"}, models.TaskUpdate{IsArchived: &archived}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"t-1", "t-2"} {
		if got := mustGetTask(t, repo, id); !got.IsArchived {
			t.Errorf("expected %s archived", id)
		}
	}
}

func TestPurgeAllTasks(t *testing.T) {
	repo, db := newTestTaskRepo(t)
	ctx := context.Background()

	mustCreateTask(t, repo, makeTask("t-1"))
	mustCreateTask(t, repo, makeTask("t-2"))
	if err := repo.DeleteTask(ctx, "t-2"); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	if err := repo.PurgeAllTasks(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks;`).Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected purge to remove soft-deleted rows too, got %d rows", count)
	}

	// The same id is creatable again after a purge.
	mustCreateTask(t, repo, makeTask("t-1"))
}

func TestCreateTask_UnexpectedDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	l := logger.NewLogger("test")
	repo := NewTaskRepository(&DB{DB: db, logger: l}, l)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnError(errors.New("disk I/O error"))

	if err := repo.CreateTask(context.Background(), makeTask("t-1")); err == nil {
		t.Fatal("expected error from failing insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestGetAllTasks_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	l := logger.NewLogger("test")
	repo := NewTaskRepository(&DB{DB: db, logger: l}, l)

	mock.ExpectQuery("SELECT").
		WillReturnError(sql.ErrConnDone)

	if _, err := repo.GetAllTasks(context.Background()); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected wrapped sql.ErrConnDone, got %v", err)
	}
}
