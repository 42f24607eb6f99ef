// Package config loads foreman settings from a YAML file, FOREMAN_* environment
// variables and built-in defaults, in that order of precedence (env wins).
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	// Backend is "sqlite" or "badger".
	Backend string `mapstructure:"backend"`

	// Path is the SQLite file or the Badger directory.
	Path string `mapstructure:"path"`

	// SyncWrites fsyncs every Badger commit. SQLite always syncs.
	SyncWrites bool `mapstructure:"sync_writes"`
}

type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// ServerConfig holds settings for `foreman serve`.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type EngineConfig struct {
	// FlagCascadeConflicts reports, without rejecting, double-bookings that a
	// cascade introduces.
	FlagCascadeConflicts bool `mapstructure:"flag_cascade_conflicts"`
}
