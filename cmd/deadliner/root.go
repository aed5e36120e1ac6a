package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/XiaoChennnng/Deadliner-Client/internal/config"
	"github.com/XiaoChennnng/Deadliner-Client/internal/crypto"
	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/internal/service"
	"github.com/XiaoChennnng/Deadliner-Client/internal/settings"
	"github.com/XiaoChennnng/Deadliner-Client/internal/store"
	"github.com/XiaoChennnng/Deadliner-Client/internal/webdav"
)

var rootCmd = &cobra.Command{
	Use:          "deadliner",
	Short:        "Local-first task and habit storage with WebDAV backup",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		exportCmd,
		importCmd,
		syncCmd,
		statsCmd,
		purgeCmd,
	)
}

// app bundles the composition root shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	service *service.StorageService
}

func newApp() (*app, error) {
	// Missing .env is fine, the config falls back to defaults.
	_ = godotenv.Load()

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.App.DataDir, 0o700); err != nil {
		return nil, err
	}

	log := logger.NewFileLogger("deadliner", cfg.LogDir())

	storages, err := store.NewStorages(config.Storage{DSN: cfg.DatabasePath()}, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating storages")
		return nil, err
	}

	keychain := crypto.NewKeyChain(filepath.Join(cfg.App.DataDir, "keystore.json"))
	settingsMgr, err := settings.NewManager(cfg.App.DataDir, keychain, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating settings manager")
		return nil, err
	}

	remoteFactory := func(cfg webdav.Config) (service.Remote, error) {
		return webdav.New(cfg, log)
	}

	svc := service.NewStorageService(storages, settingsMgr, remoteFactory, cfg.Backup.Debounce, cfg.DatabasePath(), log)

	return &app{
		cfg:     cfg,
		logger:  log,
		service: svc,
	}, nil
}

func (a *app) close() {
	if err := a.service.Close(); err != nil {
		a.logger.Error().Err(err).Msg("error closing storage service")
	}
}
