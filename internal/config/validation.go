package config

// validate checks that the final merged [Config] satisfies all application
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if cfg.App.DataDir == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.HTTP.Address == "" || cfg.HTTP.RequestTimeout <= 0 {
		return ErrInvalidHTTPConfigs
	}

	if cfg.Backup.Debounce <= 0 {
		return ErrInvalidBackupConfigs
	}

	return nil
}
