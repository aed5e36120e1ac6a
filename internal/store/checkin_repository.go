package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

type checkinRepository struct {
	*DB
	logger *logger.Logger
}

func NewCheckinRepository(db *DB, logger *logger.Logger) CheckinRepository {
	return &checkinRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *checkinRepository) CreateHabitCheckin(ctx context.Context, checkin models.HabitCheckin) error {
	log := logger.FromContext(ctx)

	if checkin.ID == "" || checkin.TaskID == "" {
		return fmt.Errorf("%w: checkin requires id and taskId", ErrInvalidInput)
	}
	if checkin.CheckinDate.IsZero() {
		return fmt.Errorf("%w: checkin requires a date", ErrInvalidInput)
	}

	createdAt := checkin.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := c.DB.ExecContext(ctx, insertCheckin,
		checkin.ID,
		checkin.TaskID,
		checkin.CheckinDate.UnixMilli(),
		boolToInt(checkin.Completed),
		nullableString(checkin.Notes),
		createdAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w (id=%s)", ErrCheckinAlreadyExists, checkin.ID)
		}
		log.Err(err).
			Str("func", "checkinRepository.CreateHabitCheckin").
			Str("id", checkin.ID).
			Str("taskId", checkin.TaskID).
			Msg("failed to execute insert for habit checkin")
		return fmt.Errorf("failed to create habit checkin (id=%s): %w", checkin.ID, err)
	}

	return nil
}

// GetHabitCheckins returns the check-ins for one habit whose date falls
// inside [start, end], newest first. An unknown taskID yields an empty
// result, not an error.
func (c *checkinRepository) GetHabitCheckins(ctx context.Context, taskID string, start, end time.Time) ([]models.HabitCheckin, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, getCheckinsInRange, taskID, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		log.Err(err).
			Str("func", "checkinRepository.GetHabitCheckins").
			Str("taskId", taskID).
			Msg("failed to execute query for habit checkins")
		return nil, fmt.Errorf("failed to query habit checkins (taskId=%s): %w", taskID, err)
	}
	defer rows.Close()

	var checkins []models.HabitCheckin

	for rows.Next() {
		var (
			checkin     models.HabitCheckin
			checkinDate int64
			completed   int
			notes       sql.NullString
			createdAt   int64
		)
		if scanErr := rows.Scan(&checkin.ID, &checkin.TaskID, &checkinDate, &completed, &notes, &createdAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "checkinRepository.GetHabitCheckins").
				Msg("failed to scan habit checkin row")
			return nil, fmt.Errorf("failed to scan habit checkin row: %w", scanErr)
		}
		checkin.CheckinDate = time.UnixMilli(checkinDate)
		checkin.Completed = completed == 1
		checkin.Notes = notes.String
		checkin.CreatedAt = time.UnixMilli(createdAt)
		checkins = append(checkins, checkin)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating habit checkin rows: %w", rowsErr)
	}

	return checkins, nil
}
