package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

type taskRepository struct {
	*DB
	logger *logger.Logger
}

func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

// taskRow mirrors the tasks table: 0/1 flags, epoch-millisecond instants
// and tags serialized as a JSON array.
type taskRow struct {
	id          string
	title       string
	description sql.NullString
	taskType    string
	priority    string
	category    string
	deadline    sql.NullInt64
	completed   int
	createdAt   int64
	updatedAt   int64
	tags        sql.NullString
	progress    sql.NullInt64
	streak      sql.NullInt64
	isStarred   int
	isArchived  int
	isDeleted   int
	version     int64
	syncStatus  string
	lastSyncAt  sql.NullInt64
}

func (t *taskRepository) CreateTask(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	if err := validateNewTask(task); err != nil {
		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Str("id", task.ID).
			Msg("rejected invalid task input")
		return err
	}

	now := time.Now()
	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := task.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	tags, err := marshalTags(task.Tags)
	if err != nil {
		return fmt.Errorf("failed to serialize tags (id=%s): %w", task.ID, err)
	}

	_, err = t.DB.ExecContext(ctx, insertTask,
		task.ID,
		task.Title,
		nullableString(task.Description),
		string(task.Type),
		string(task.Priority),
		task.Category,
		nullableInstant(task.Deadline),
		boolToInt(task.Completed),
		createdAt.UnixMilli(),
		updatedAt.UnixMilli(),
		tags,
		nullableCount(task.Progress),
		nullableCount(task.Streak),
		boolToInt(task.IsStarred),
		boolToInt(task.IsArchived),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w (id=%s)", ErrTaskAlreadyExists, task.ID)
		}
		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Str("id", task.ID).
			Msg("failed to execute insert for task")
		return fmt.Errorf("failed to create task (id=%s): %w", task.ID, err)
	}

	return nil
}

func (t *taskRepository) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	rows, err := t.DB.QueryContext(ctx, getAllTasks)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.GetAllTasks").
			Msg("failed to execute query for getting all tasks")
		return nil, fmt.Errorf("failed to query all tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task

	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "taskRepository.GetAllTasks").
				Msg("failed to scan task row")
			return nil, fmt.Errorf("failed to scan task row: %w", scanErr)
		}
		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "taskRepository.GetAllTasks").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating task rows: %w", rowsErr)
	}

	return tasks, nil
}

func (t *taskRepository) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	log := logger.FromContext(ctx)

	row := t.DB.QueryRowContext(ctx, getTaskByID, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "taskRepository.GetTaskByID").
			Str("id", id).
			Msg("failed to scan task row")
		return nil, fmt.Errorf("failed to scan task row (id=%s): %w", id, err)
	}

	return &task, nil
}

func (t *taskRepository) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	if update.IsEmpty() {
		// Nothing to change: the row keeps its version and syncStatus.
		return nil
	}

	return t.updateTaskExec(ctx, t.DB.DB, id, update)
}

func (t *taskRepository) DeleteTask(ctx context.Context, id string) error {
	return t.bookkeepingUpdate(ctx, "taskRepository.DeleteTask", softDeleteTask, time.Now().UnixMilli(), id)
}

func (t *taskRepository) ArchiveTask(ctx context.Context, id string) error {
	return t.bookkeepingUpdate(ctx, "taskRepository.ArchiveTask", setTaskArchived, 1, time.Now().UnixMilli(), id)
}

func (t *taskRepository) UnarchiveTask(ctx context.Context, id string) error {
	return t.bookkeepingUpdate(ctx, "taskRepository.UnarchiveTask", setTaskArchived, 0, time.Now().UnixMilli(), id)
}

// BatchUpdateTasks applies the same update to every id inside one
// transaction: either every row's version bump lands or none does.
func (t *taskRepository) BatchUpdateTasks(ctx context.Context, ids []string, update models.TaskUpdate) error {
	log := logger.FromContext(ctx)

	if update.IsEmpty() || len(ids) == 0 {
		return nil
	}

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.BatchUpdateTasks").
			Msg("failed to begin batch transaction")
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if err = t.updateTaskExec(ctx, tx, id, update); err != nil {
			log.Err(err).
				Str("func", "taskRepository.BatchUpdateTasks").
				Str("id", id).
				Msg("batch update failed, rolling back")
			return fmt.Errorf("batch update failed (id=%s): %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "taskRepository.BatchUpdateTasks").
			Msg("failed to commit batch transaction")
		return fmt.Errorf("failed to commit batch transaction: %w", err)
	}

	return nil
}

func (t *taskRepository) PurgeAllTasks(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := t.DB.ExecContext(ctx, purgeAllTasks); err != nil {
		log.Err(err).
			Str("func", "taskRepository.PurgeAllTasks").
			Msg("failed to purge task table")
		return fmt.Errorf("failed to purge task table: %w", err)
	}

	log.Warn().Str("func", "taskRepository.PurgeAllTasks").Msg("task table purged")
	return nil
}

// execer lets the same UPDATE run against the shared handle or inside a
// batch transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (t *taskRepository) updateTaskExec(ctx context.Context, db execer, id string, update models.TaskUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildTaskUpdate(id, update)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.updateTaskExec").
			Str("id", id).
			Msg("failed to build update query")
		return err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.updateTaskExec").
			Str("id", id).
			Msg("failed to execute update for task")
		return fmt.Errorf("failed to update task (id=%s): %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrTaskNotFound, id)
	}

	return nil
}

// buildTaskUpdate turns the typed partial update into one UPDATE statement.
// The bookkeeping side effects are unconditional: updated_at moves to now,
// version increments by exactly 1 and sync_status drops back to pending no
// matter which field changed.
func buildTaskUpdate(id string, update models.TaskUpdate) (string, []any, error) {
	b := sq.Update("tasks")

	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.Description != nil {
		b = b.Set("description", nullableString(*update.Description))
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return "", nil, fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, *update.Type)
		}
		b = b.Set("type", string(*update.Type))
	}
	if update.Priority != nil {
		if !update.Priority.Valid() {
			return "", nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *update.Priority)
		}
		b = b.Set("priority", string(*update.Priority))
	}
	if update.Category != nil {
		b = b.Set("category", *update.Category)
	}
	if update.Deadline != nil {
		b = b.Set("deadline", update.Deadline.UnixMilli())
	}
	if update.Completed != nil {
		b = b.Set("completed", boolToInt(*update.Completed))
	}
	if update.Tags != nil {
		tags, err := marshalTags(*update.Tags)
		if err != nil {
			return "", nil, fmt.Errorf("failed to serialize tags: %w", err)
		}
		b = b.Set("tags", tags)
	}
	if update.Progress != nil {
		b = b.Set("progress", *update.Progress)
	}
	if update.Streak != nil {
		b = b.Set("streak", *update.Streak)
	}
	if update.IsStarred != nil {
		b = b.Set("is_starred", boolToInt(*update.IsStarred))
	}
	if update.IsArchived != nil {
		b = b.Set("is_archived", boolToInt(*update.IsArchived))
	}

	query, args, err := b.
		Set("updated_at", time.Now().UnixMilli()).
		Set("version", sq.Expr("version + 1")).
		Set("sync_status", string(models.SyncPending)).
		Where(sq.Eq{"id": id, "is_deleted": 0}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return query, args, nil
}

// bookkeepingUpdate runs one of the fixed flag-toggle statements and maps
// "no rows" to ErrTaskNotFound.
func (t *taskRepository) bookkeepingUpdate(ctx context.Context, fn, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := t.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Msg("failed to execute task update")
		return fmt.Errorf("failed to execute task update: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func validateNewTask(task models.Task) error {
	switch {
	case task.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidInput)
	case task.Title == "":
		return fmt.Errorf("%w: missing title", ErrInvalidInput)
	case task.Category == "":
		return fmt.Errorf("%w: missing category", ErrInvalidInput)
	case !task.Type.Valid():
		return fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, task.Type)
	case !task.Priority.Valid():
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, task.Priority)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one tasks row and maps it to the external representation:
// real booleans, deserialized tags and time.Time instants.
func scanTask(row rowScanner) (models.Task, error) {
	var r taskRow

	err := row.Scan(
		&r.id,
		&r.title,
		&r.description,
		&r.taskType,
		&r.priority,
		&r.category,
		&r.deadline,
		&r.completed,
		&r.createdAt,
		&r.updatedAt,
		&r.tags,
		&r.progress,
		&r.streak,
		&r.isStarred,
		&r.isArchived,
		&r.isDeleted,
		&r.version,
		&r.syncStatus,
		&r.lastSyncAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          r.id,
		Title:       r.title,
		Description: r.description.String,
		Type:        models.TaskType(r.taskType),
		Priority:    models.Priority(r.priority),
		Category:    r.category,
		Completed:   r.completed == 1,
		CreatedAt:   time.UnixMilli(r.createdAt),
		UpdatedAt:   time.UnixMilli(r.updatedAt),
		Tags:        unmarshalTags(r.tags),
		Progress:    int(r.progress.Int64),
		Streak:      int(r.streak.Int64),
		IsStarred:   r.isStarred == 1,
		IsArchived:  r.isArchived == 1,
		IsDeleted:   r.isDeleted == 1,
		Version:     r.version,
		SyncStatus:  models.SyncStatus(r.syncStatus),
	}

	if r.deadline.Valid {
		deadline := time.UnixMilli(r.deadline.Int64)
		task.Deadline = &deadline
	}
	if r.lastSyncAt.Valid {
		lastSync := time.UnixMilli(r.lastSyncAt.Int64)
		task.LastSyncAt = &lastSync
	}

	return task, nil
}

func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalTags(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		// Malformed tag payloads degrade to an empty list instead of
		// failing the whole query.
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInstant(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func nullableCount(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
