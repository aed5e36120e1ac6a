package store

import (
	"context"
	"fmt"

	"github.com/XiaoChennnng/Deadliner-Client/internal/config"
	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
)

// Storages groups the relational repositories into a single value that can
// be passed around the service layer. All repositories share one sqlite
// connection.
type Storages struct {
	// Tasks is the sqlite-backed task repository.
	Tasks TaskRepository

	// Categories is the sqlite-backed category repository.
	Categories CategoryRepository

	// Checkins is the sqlite-backed habit check-in repository.
	Checkins CheckinRepository

	// SyncLogs holds the append-only sync audit trail.
	SyncLogs SyncLogRepository

	// Stats computes fresh aggregate counts on demand.
	Stats StatsRepository

	db *DB
}

// NewStorages initialises the relational storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in
//     cfg.Storage.DSN, creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value with every repository wired
//     to the shared connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Tasks:      NewTaskRepository(db, logger),
		Categories: NewCategoryRepository(db, logger),
		Checkins:   NewCheckinRepository(db, logger),
		SyncLogs:   NewSyncLogRepository(db, logger),
		Stats:      NewStatsRepository(db, logger),
		db:         db,
	}, nil
}

// Close releases the shared sqlite connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
