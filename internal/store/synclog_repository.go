package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

type syncLogRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncLogRepository(db *DB, logger *logger.Logger) SyncLogRepository {
	return &syncLogRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncLogRepository) LogSync(ctx context.Context, syncType, status string, itemsSynced int, errorMessage string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, insertSyncLog,
		syncType,
		status,
		time.Now().UnixMilli(),
		nullableString(errorMessage),
		itemsSynced,
	)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.LogSync").
			Str("syncType", syncType).
			Msg("failed to append sync log entry")
		return fmt.Errorf("failed to append sync log entry: %w", err)
	}

	return nil
}

func (s *syncLogRepository) GetRecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLog, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.DB.QueryContext(ctx, getRecentSyncLogs, limit)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.GetRecentSyncLogs").
			Msg("failed to execute query for recent sync logs")
		return nil, fmt.Errorf("failed to query recent sync logs: %w", err)
	}
	defer rows.Close()

	var logs []models.SyncLog

	for rows.Next() {
		var (
			entry        models.SyncLog
			syncTime     int64
			errorMessage sql.NullString
		)
		if scanErr := rows.Scan(&entry.ID, &entry.SyncType, &entry.SyncStatus, &syncTime, &errorMessage, &entry.ItemsSynced); scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncLogRepository.GetRecentSyncLogs").
				Msg("failed to scan sync log row")
			return nil, fmt.Errorf("failed to scan sync log row: %w", scanErr)
		}
		entry.SyncTime = time.UnixMilli(syncTime)
		entry.ErrorMessage = errorMessage.String
		logs = append(logs, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating sync log rows: %w", rowsErr)
	}

	return logs, nil
}
