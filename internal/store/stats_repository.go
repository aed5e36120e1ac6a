package store

import (
	"context"
	"fmt"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

type statsRepository struct {
	*DB
	logger *logger.Logger
}

func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	return &statsRepository{
		DB:     db,
		logger: logger,
	}
}

// GetStats issues the five aggregate counts on every call. Nothing is
// cached or maintained incrementally.
func (s *statsRepository) GetStats(ctx context.Context) (models.TaskStats, error) {
	log := logger.FromContext(ctx)

	var stats models.TaskStats

	counts := []struct {
		query string
		dest  *int
	}{
		{countTotalTasks, &stats.TotalTasks},
		{countCompletedTasks, &stats.CompletedTasks},
		{countArchivedTasks, &stats.ArchivedTasks},
		{countHabits, &stats.Habits},
		{countCategories, &stats.Categories},
	}

	for _, c := range counts {
		if err := s.DB.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			log.Err(err).
				Str("func", "statsRepository.GetStats").
				Msg("failed to execute aggregate count")
			return models.TaskStats{}, fmt.Errorf("failed to execute aggregate count: %w", err)
		}
	}

	return stats, nil
}
