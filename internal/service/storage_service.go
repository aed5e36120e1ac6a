package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/internal/settings"
	"github.com/XiaoChennnng/Deadliner-Client/internal/snapshot"
	"github.com/XiaoChennnng/Deadliner-Client/internal/store"
	"github.com/XiaoChennnng/Deadliner-Client/internal/webdav"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

const fallbackCategory = "personal"

// ImportReport counts what a full-dataset import actually inserted.
// Individual id collisions are skipped, not fatal; partial import is the
// accepted contract.
type ImportReport struct {
	TasksImported      int `json:"tasksImported"`
	TasksSkipped       int `json:"tasksSkipped"`
	CategoriesImported int `json:"categoriesImported"`
	CategoriesSkipped  int `json:"categoriesSkipped"`
}

// BackupReport describes one completed remote backup.
type BackupReport struct {
	Success      bool   `json:"success"`
	RemotePath   string `json:"remotePath,omitempty"`
	SnapshotPath string `json:"snapshotPath,omitempty"`
	ItemsSynced  int    `json:"itemsSynced"`
}

// RestoreReport names which remote document a restore was served from.
type RestoreReport struct {
	Source string       `json:"source"`
	Import ImportReport `json:"import"`
}

// StorageInfo is the debug view of where everything lives plus fresh
// counts.
type StorageInfo struct {
	Stats         models.TaskStats    `json:"stats"`
	DatabasePath  string              `json:"databasePath"`
	SettingsPaths settings.StorePaths `json:"settingsPaths"`
}

// StorageService is the single entry point consumed by the presentation
// layer. It composes the relational store and the settings manager, owns
// export/import/sync orchestration and the debounced auto-backup, and adds
// no other business rules. Every method logs failures with context and
// rethrows; nothing is swallowed.
type StorageService struct {
	storages  *store.Storages
	settings  *settings.Manager
	newRemote RemoteFactory
	backup    *AutoBackupJob

	dbPath string
	logger *logger.Logger
}

// NewStorageService wires the facade together, bumps the app launch
// counter once and arms the auto-backup job.
func NewStorageService(storages *store.Storages, settingsMgr *settings.Manager, newRemote RemoteFactory, debounce time.Duration, dbPath string, log *logger.Logger) *StorageService {
	s := &StorageService{
		storages:  storages,
		settings:  settingsMgr,
		newRemote: newRemote,
		dbPath:    dbPath,
		logger:    log,
	}
	s.backup = NewAutoBackupJob(debounce, s.runAutoBackup)

	if err := settingsMgr.UpdateAppLaunch(); err != nil {
		log.Err(err).Str("func", "NewStorageService").Msg("failed to record app launch")
	}

	return s
}

// Settings exposes the settings manager. The manager is owned by the
// facade; no second handle to the underlying files may be opened.
func (s *StorageService) Settings() *settings.Manager { return s.settings }

// Close stops the auto-backup job and releases the database handle.
func (s *StorageService) Close() error {
	s.backup.Stop()
	return s.storages.Close()
}

// CreateTask stores a new task, generating an id when the caller supplied
// none, and returns the stored value.
func (s *StorageService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = models.NewID()
	}
	if err := s.storages.Tasks.CreateTask(ctx, task); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.CreateTask").Str("id", task.ID).Msg("create task failed")
		return models.Task{}, err
	}
	s.scheduleAutoBackup()
	return task, nil
}

func (s *StorageService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.storages.Tasks.GetAllTasks(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetAllTasks").Msg("list tasks failed")
		return nil, err
	}
	return tasks, nil
}

func (s *StorageService) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.storages.Tasks.GetTaskByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetTaskByID").Str("id", id).Msg("get task failed")
		return nil, err
	}
	return task, nil
}

func (s *StorageService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	if err := s.storages.Tasks.UpdateTask(ctx, id, update); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.UpdateTask").Str("id", id).Msg("update task failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) DeleteTask(ctx context.Context, id string) error {
	if err := s.storages.Tasks.DeleteTask(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.DeleteTask").Str("id", id).Msg("delete task failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) ArchiveTask(ctx context.Context, id string) error {
	if err := s.storages.Tasks.ArchiveTask(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.ArchiveTask").Str("id", id).Msg("archive task failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) UnarchiveTask(ctx context.Context, id string) error {
	if err := s.storages.Tasks.UnarchiveTask(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.UnarchiveTask").Str("id", id).Msg("unarchive task failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) BatchUpdateTasks(ctx context.Context, ids []string, update models.TaskUpdate) error {
	if err := s.storages.Tasks.BatchUpdateTasks(ctx, ids, update); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.BatchUpdateTasks").Int("count", len(ids)).Msg("batch update failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

// PurgeAllTasks irreversibly hard-deletes the whole task table.
func (s *StorageService) PurgeAllTasks(ctx context.Context) error {
	if err := s.storages.Tasks.PurgeAllTasks(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.PurgeAllTasks").Msg("purge failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.ID == "" {
		category.ID = models.NewID()
	}
	if err := s.storages.Categories.CreateCategory(ctx, category); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.CreateCategory").Str("id", category.ID).Msg("create category failed")
		return models.Category{}, err
	}
	s.scheduleAutoBackup()
	return category, nil
}

func (s *StorageService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.storages.Categories.GetAllCategories(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetAllCategories").Msg("list categories failed")
		return nil, err
	}
	return categories, nil
}

func (s *StorageService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.storages.Categories.DeleteCategory(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.DeleteCategory").Str("id", id).Msg("delete category failed")
		return err
	}
	s.scheduleAutoBackup()
	return nil
}

func (s *StorageService) CreateHabitCheckin(ctx context.Context, checkin models.HabitCheckin) (models.HabitCheckin, error) {
	if checkin.ID == "" {
		checkin.ID = models.NewID()
	}
	if err := s.storages.Checkins.CreateHabitCheckin(ctx, checkin); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.CreateHabitCheckin").Str("id", checkin.ID).Msg("create checkin failed")
		return models.HabitCheckin{}, err
	}
	s.scheduleAutoBackup()
	return checkin, nil
}

func (s *StorageService) GetHabitCheckins(ctx context.Context, taskID string, start, end time.Time) ([]models.HabitCheckin, error) {
	checkins, err := s.storages.Checkins.GetHabitCheckins(ctx, taskID, start, end)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetHabitCheckins").Str("taskId", taskID).Msg("list checkins failed")
		return nil, err
	}
	return checkins, nil
}

func (s *StorageService) GetStats(ctx context.Context) (models.TaskStats, error) {
	stats, err := s.storages.Stats.GetStats(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetStats").Msg("stats failed")
		return models.TaskStats{}, err
	}
	return stats, nil
}

func (s *StorageService) GetRecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLog, error) {
	logs, err := s.storages.SyncLogs.GetRecentSyncLogs(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.GetRecentSyncLogs").Msg("list sync logs failed")
		return nil, err
	}
	return logs, nil
}

// ExportData assembles the full backup document: all visible tasks and
// categories plus the plaintext settings export. Secrets never appear.
func (s *StorageService) ExportData(ctx context.Context) (models.Backup, error) {
	tasks, err := s.GetAllTasks(ctx)
	if err != nil {
		return models.Backup{}, err
	}
	categories, err := s.GetAllCategories(ctx)
	if err != nil {
		return models.Backup{}, err
	}

	return models.Backup{
		Tasks:      tasks,
		Categories: categories,
		Settings:   s.settings.ExportSettings(),
		ExportedAt: time.Now().UnixMilli(),
		Version:    models.BackupVersion,
	}, nil
}

// ImportData restores a full backup document. Settings come first, then
// the task table is purged and categories and tasks are re-created one by
// one, skipping and logging id collisions instead of failing the whole
// import. Settings and task-table changes are not atomic with each other.
func (s *StorageService) ImportData(ctx context.Context, backup models.Backup) (ImportReport, error) {
	log := logger.FromContext(ctx)

	if backup.Settings != nil {
		if err := s.settings.ImportSettings(backup.Settings); err != nil {
			log.Err(err).Str("func", "StorageService.ImportData").Msg("settings import failed")
			return ImportReport{}, err
		}
	}

	if err := s.storages.Tasks.PurgeAllTasks(ctx); err != nil {
		log.Err(err).Str("func", "StorageService.ImportData").Msg("pre-import purge failed")
		return ImportReport{}, err
	}

	var report ImportReport

	for _, category := range backup.Categories {
		if err := s.storages.Categories.CreateCategory(ctx, category); err != nil {
			log.Warn().Err(err).
				Str("func", "StorageService.ImportData").
				Str("id", category.ID).
				Msg("skipping category")
			report.CategoriesSkipped++
			continue
		}
		report.CategoriesImported++
	}

	for _, task := range backup.Tasks {
		if err := s.storages.Tasks.CreateTask(ctx, task); err != nil {
			log.Warn().Err(err).
				Str("func", "StorageService.ImportData").
				Str("id", task.ID).
				Msg("skipping task")
			report.TasksSkipped++
			continue
		}
		report.TasksImported++
	}

	s.scheduleAutoBackup()

	return report, nil
}

// TestWebDAV probes the configured endpoint with the stored credentials.
func (s *StorageService) TestWebDAV(ctx context.Context) webdav.TestResult {
	remote, err := s.remote()
	if err != nil {
		return webdav.TestResult{Success: false, Error: err.Error()}
	}
	return remote.TestConnection(ctx)
}

// BackupNow uploads both remote documents: the native backup and the
// mobile-compatible snapshot. The attempt is recorded in the sync log
// either way.
func (s *StorageService) BackupNow(ctx context.Context) (BackupReport, error) {
	log := logger.FromContext(ctx)

	export, err := s.ExportData(ctx)
	if err != nil {
		return BackupReport{}, s.failSync(ctx, models.SyncTypeBackup, err)
	}

	remote, err := s.remote()
	if err != nil {
		return BackupReport{}, s.failSync(ctx, models.SyncTypeBackup, err)
	}

	items := len(export.Tasks) + len(export.Categories)

	backupResult, err := remote.UploadBackup(ctx, export)
	if err != nil {
		return BackupReport{}, s.failSync(ctx, models.SyncTypeBackup, err)
	}

	snapshotResult, err := remote.UploadSnapshot(ctx, snapshot.SnapshotFromTasks(export.Tasks, time.Now()))
	if err != nil {
		return BackupReport{}, s.failSync(ctx, models.SyncTypeBackup, err)
	}

	if logErr := s.storages.SyncLogs.LogSync(ctx, models.SyncTypeBackup, models.SyncLogSuccess, items, ""); logErr != nil {
		log.Err(logErr).Str("func", "StorageService.BackupNow").Msg("failed to record sync log")
	}
	if setErr := s.settings.Set("sync.lastSyncTime", time.Now().UnixMilli()); setErr != nil {
		log.Err(setErr).Str("func", "StorageService.BackupNow").Msg("failed to record last sync time")
	}

	return BackupReport{
		Success:      true,
		RemotePath:   backupResult.RemotePath,
		SnapshotPath: snapshotResult.RemotePath,
		ItemsSynced:  items,
	}, nil
}

// RestoreFromRemote pulls the newest remote dataset: backup.json first,
// falling back to the mobile snapshot when the native document is
// unavailable. If both downloads fail, one combined error is returned; a
// silent no-op is never acceptable here.
func (s *StorageService) RestoreFromRemote(ctx context.Context) (RestoreReport, error) {
	log := logger.FromContext(ctx)

	remote, err := s.remote()
	if err != nil {
		return RestoreReport{}, s.failSync(ctx, models.SyncTypeRestore, err)
	}

	backup, backupErr := remote.DownloadBackup(ctx)
	if backupErr == nil {
		report, err := s.ImportData(ctx, *backup)
		if err != nil {
			return RestoreReport{}, s.failSync(ctx, models.SyncTypeRestore, err)
		}
		s.logRestoreSuccess(ctx, report.TasksImported+report.CategoriesImported)
		return RestoreReport{Source: "backup.json", Import: report}, nil
	}

	log.Warn().Err(backupErr).
		Str("func", "StorageService.RestoreFromRemote").
		Msg("backup.json unavailable, trying mobile snapshot")

	snap, snapErr := remote.DownloadSnapshot(ctx)
	if snapErr != nil {
		combined := fmt.Errorf("restore failed: backup.json: %w; snapshot-v1.json: %w", backupErr, snapErr)
		return RestoreReport{}, s.failSync(ctx, models.SyncTypeRestore, combined)
	}

	report, err := s.importSnapshot(ctx, *snap)
	if err != nil {
		return RestoreReport{}, s.failSync(ctx, models.SyncTypeRestore, err)
	}

	s.logRestoreSuccess(ctx, report.TasksImported)
	return RestoreReport{Source: "snapshot-v1.json", Import: report}, nil
}

// importSnapshot translates and inserts a mobile snapshot: ensure the
// default category exists, wipe the task table, then insert each mapped
// task tolerantly.
func (s *StorageService) importSnapshot(ctx context.Context, snap models.Snapshot) (ImportReport, error) {
	log := logger.FromContext(ctx)

	category, _ := s.settings.Get("preferences.defaultCategory", fallbackCategory).(string)
	if category == "" {
		category = fallbackCategory
	}

	err := s.storages.Categories.CreateCategory(ctx, models.Category{ID: category, Name: category})
	if err != nil && !errors.Is(err, store.ErrCategoryAlreadyExists) {
		return ImportReport{}, err
	}

	if err := s.storages.Tasks.PurgeAllTasks(ctx); err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	for _, task := range snapshot.TasksFromSnapshot(snap, category, time.Now()) {
		if err := s.storages.Tasks.CreateTask(ctx, task); err != nil {
			log.Warn().Err(err).
				Str("func", "StorageService.importSnapshot").
				Str("id", task.ID).
				Msg("skipping snapshot item")
			report.TasksSkipped++
			continue
		}
		report.TasksImported++
	}

	s.scheduleAutoBackup()

	return report, nil
}

// StorageInfo reports fresh stats and the on-disk locations of every store.
func (s *StorageService) StorageInfo(ctx context.Context) (StorageInfo, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return StorageInfo{}, err
	}
	return StorageInfo{
		Stats:         stats,
		DatabasePath:  s.dbPath,
		SettingsPaths: s.settings.StorePaths(),
	}, nil
}

func (s *StorageService) remote() (Remote, error) {
	sync := s.settings.GetSyncSettings()

	cfg := webdav.Config{}
	if dav, ok := sync["webdav"].(map[string]any); ok {
		cfg.URL, _ = dav["url"].(string)
		cfg.Username, _ = dav["username"].(string)
		cfg.Password, _ = dav["password"].(string)
	}

	return s.newRemote(cfg)
}

// scheduleAutoBackup arms the debounce timer after a successful write when
// auto sync is switched on.
func (s *StorageService) scheduleAutoBackup() {
	enabled, _ := s.settings.Get("sync.enabled", false).(bool)
	autoSync, _ := s.settings.Get("sync.autoSync", false).(bool)
	provider, _ := s.settings.Get("sync.provider", "").(string)

	if enabled && autoSync && provider == "webdav" {
		s.backup.Trigger()
	}
}

func (s *StorageService) runAutoBackup() {
	ctx := s.logger.WithContext(context.Background())
	if _, err := s.BackupNow(ctx); err != nil {
		s.logger.Err(err).Str("func", "StorageService.runAutoBackup").Msg("auto backup failed")
	}
}

func (s *StorageService) failSync(ctx context.Context, syncType string, err error) error {
	logger.FromContext(ctx).Err(err).
		Str("func", "StorageService.failSync").
		Str("syncType", syncType).
		Msg("sync attempt failed")

	if logErr := s.storages.SyncLogs.LogSync(ctx, syncType, models.SyncLogFailed, 0, err.Error()); logErr != nil {
		logger.FromContext(ctx).Err(logErr).Str("func", "StorageService.failSync").Msg("failed to record sync log")
	}

	return err
}

func (s *StorageService) logRestoreSuccess(ctx context.Context, items int) {
	if err := s.storages.SyncLogs.LogSync(ctx, models.SyncTypeRestore, models.SyncLogSuccess, items, ""); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "StorageService.logRestoreSuccess").Msg("failed to record sync log")
	}
}
