package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/foreman/internal/config"
	"github.com/alexanderramin/foreman/internal/metrics"
	"github.com/alexanderramin/foreman/internal/repository"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// MetaSource reports bookkeeping about the persisted collection.
type MetaSource interface {
	Meta(ctx context.Context) (repository.CollectionMeta, error)
}

// App holds everything CLI commands need. It is filled in by Bootstrap once
// configuration has been loaded.
type App struct {
	Schedules service.ScheduleService
	Meta      MetaSource
	Metrics   *metrics.Metrics
	Config    *config.Config
	Logger    zerolog.Logger

	// IsInteractive reports whether stdin is a terminal; nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Bootstrap builds the App for a loaded configuration. The returned cleanup
// releases storage and runs after the command finishes.
type Bootstrap func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, func() error, error)

// NewRootCmd creates the top-level "foreman" command. Configuration is read
// and the App wired before any subcommand runs.
func NewRootCmd(boot Bootstrap) *cobra.Command {
	var (
		cfgFile string
		verbose bool
		cleanup func() error
	)
	app := &App{}

	root := &cobra.Command{
		Use:           "foreman",
		Short:         "Work schedule dependency and conflict engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{ConfigFile: cfgFile})
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = zerolog.LevelDebugValue
			}
			logger := NewLogger(cfg.Logging, cmd.ErrOrStderr())

			built, done, err := boot(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			*app = *built
			if app.Config == nil {
				app.Config = cfg
			}
			cleanup = done
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup == nil {
				return nil
			}
			return cleanup()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./foreman.yaml, ~/.config/foreman, /etc/foreman)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newScheduleCmd(app),
		newConflictsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newStatusCmd(app),
		newServeCmd(app),
	)

	return root
}

// NewLogger builds the process logger. Console output is colored only on a
// terminal.
func NewLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
