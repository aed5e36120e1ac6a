package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"DEADLINER_DATA_DIR": "/var/deadliner",
		"DEADLINER_VERSION":  "9.9.9",

		"DEADLINER_STORAGE_DATABASE_URI": "/var/deadliner/tasks.db",

		"DEADLINER_HTTP_ADDRESS":         "127.0.0.1:9999",
		"DEADLINER_HTTP_REQUEST_TIMEOUT": "10s",

		"DEADLINER_BACKUP_DEBOUNCE": "5s",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &Config{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/var/deadliner", cfg.App.DataDir)
	assert.Equal(t, "9.9.9", cfg.App.Version)
	assert.Equal(t, "/var/deadliner/tasks.db", cfg.Storage.DSN)
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTP.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Backup.Debounce)
}

func TestGetConfig_DefaultsApplied(t *testing.T) {
	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.App.DataDir)
	assert.Equal(t, "127.0.0.1:38945", cfg.HTTP.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Backup.Debounce)
}

func TestGetConfig_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("DEADLINER_HTTP_ADDRESS", "127.0.0.1:40000")
	t.Setenv("DEADLINER_BACKUP_DEBOUNCE", "1s")

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:40000", cfg.HTTP.Address)
	assert.Equal(t, time.Second, cfg.Backup.Debounce)
}

func TestValidate_MissingDataDir(t *testing.T) {
	cfg := defaults()
	cfg.App.DataDir = ""

	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestValidate_MissingHTTPAddress(t *testing.T) {
	cfg := defaults()
	cfg.HTTP.Address = ""

	assert.ErrorIs(t, cfg.validate(), ErrInvalidHTTPConfigs)
}

func TestValidate_ZeroDebounce(t *testing.T) {
	cfg := defaults()
	cfg.Backup.Debounce = 0

	assert.ErrorIs(t, cfg.validate(), ErrInvalidBackupConfigs)
}

func TestDatabasePath(t *testing.T) {
	cfg := defaults()
	cfg.App.DataDir = "/data"
	cfg.Storage.DSN = ""

	assert.Equal(t, "/data/deadliner.db", cfg.DatabasePath())

	cfg.Storage.DSN = "/elsewhere/tasks.db"
	assert.Equal(t, "/elsewhere/tasks.db", cfg.DatabasePath())
}
