package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

func Validate(cfg *Config) error {
	var errs ValidationErrors

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendBadger:
	default:
		errs = append(errs, ValidationError{"storage.backend", fmt.Sprintf("must be %q or %q, got %q", BackendSQLite, BackendBadger, cfg.Storage.Backend)})
	}
	if cfg.Storage.Path == "" {
		errs = append(errs, ValidationError{"storage.path", "is required"})
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil || cfg.Logging.Level == "" {
		errs = append(errs, ValidationError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	if cfg.Logging.Format != "console" && cfg.Logging.Format != "json" {
		errs = append(errs, ValidationError{"logging.format", `must be "console" or "json"`})
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, ValidationError{"server.port", "must be between 1 and 65535"})
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 {
		errs = append(errs, ValidationError{"server", "timeouts must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
