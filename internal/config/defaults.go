package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"

	DefaultBackend      = BackendSQLite
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultHost         = "localhost"
	DefaultPort         = 8095
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
)

// DefaultStoragePath is ~/.foreman/foreman.db, or a relative path when the
// home directory cannot be determined.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".foreman", "foreman.db")
	}
	return filepath.Join(home, ".foreman", "foreman.db")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    DefaultBackend,
			Path:       DefaultStoragePath(),
			SyncWrites: true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Engine: EngineConfig{
			FlagCascadeConflicts: true,
		},
	}
}
