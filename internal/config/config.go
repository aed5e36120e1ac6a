// Package config assembles the Deadliner client configuration by merging
// environment variables on top of compiled defaults. The merged result is
// validated before the composition root is allowed to use it.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration container for the Deadliner client.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// App holds application-level settings such as the data directory and
	// the reported application version.
	App App `envPrefix:"DEADLINER_"`

	// Storage holds configuration for the local persistence backends: the
	// relational database and the settings store files.
	Storage Storage `envPrefix:"DEADLINER_STORAGE_"`

	// HTTP holds the listen settings for the local facade API.
	HTTP HTTP `envPrefix:"DEADLINER_HTTP_"`

	// Backup holds the auto-backup trigger settings.
	Backup Backup `envPrefix:"DEADLINER_BACKUP_"`
}

// App holds application-level configuration values.
type App struct {
	// DataDir is the directory holding the database file, the settings
	// store files and the log directory.
	// Env: DEADLINER_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// Version is the semantic version string of the running application.
	// Env: DEADLINER_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DSN is the SQLite connection string for the relational store. When
	// empty it defaults to <DataDir>/deadliner.db.
	// Env: DEADLINER_STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// HTTP holds network settings for the local facade API.
type HTTP struct {
	// Address is the TCP address the local API listens on. The facade is a
	// single-user surface; the default binds to the loopback interface.
	// Env: DEADLINER_HTTP_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: DEADLINER_HTTP_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Backup holds auto-backup trigger settings.
type Backup struct {
	// Debounce is the quiet period after a write-classified storage
	// operation before an automatic backup upload fires. Writes arriving
	// inside the window cancel and reschedule the pending upload.
	// Env: DEADLINER_BACKUP_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`
}

// defaults returns the compiled default configuration. Env values are merged
// on top of it by the builder.
func defaults() *Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".deadliner")
	}

	return &Config{
		App: App{
			DataDir: dataDir,
			Version: "0.1.0",
		},
		HTTP: HTTP{
			Address:        "127.0.0.1:38945",
			RequestTimeout: 30 * time.Second,
		},
		Backup: Backup{
			Debounce: 3 * time.Second,
		},
	}
}

// DatabasePath resolves the SQLite file path: the explicit DSN when set,
// otherwise deadliner.db inside the data directory.
func (cfg *Config) DatabasePath() string {
	if cfg.Storage.DSN != "" {
		return cfg.Storage.DSN
	}
	return filepath.Join(cfg.App.DataDir, "deadliner.db")
}

// LogDir returns the directory for rotating log files.
func (cfg *Config) LogDir() string {
	return filepath.Join(cfg.App.DataDir, "logs")
}
