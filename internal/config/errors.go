package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an empty data directory).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidHTTPConfigs indicates invalid local API settings
	// (for example, missing listen address or zero request timeout).
	ErrInvalidHTTPConfigs = errors.New("invalid http configuration")
	// ErrInvalidBackupConfigs indicates invalid auto-backup settings
	// (for example, a non-positive debounce window).
	ErrInvalidBackupConfigs = errors.New("invalid backup configuration")
)
