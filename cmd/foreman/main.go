package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/foreman/internal/cli"
	"github.com/alexanderramin/foreman/internal/config"
	"github.com/alexanderramin/foreman/internal/db"
	"github.com/alexanderramin/foreman/internal/metrics"
	"github.com/alexanderramin/foreman/internal/repository"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cli.NewRootCmd(bootstrap)
	return rootCmd.Execute()
}

// bootstrap opens the configured backend and wires the engine.
func bootstrap(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*cli.App, func() error, error) {
	kv, err := openKVStore(cfg.Storage, logger)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewKVScheduleRepo(kv)
	store := service.NewScheduleStore(repo)
	if err := store.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("loading schedules from %s: %w", cfg.Storage.Path, err)
	}
	logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("path", cfg.Storage.Path).
		Int("schedules", store.Len()).
		Msg("store loaded")

	m := metrics.New()
	svc := service.NewScheduleService(store,
		service.Options{FlagCascadeConflicts: cfg.Engine.FlagCascadeConflicts},
		service.NewLogUseCaseObserver(logger.With().Str("component", "service").Logger()),
		m,
	)

	app := &cli.App{
		Schedules: svc,
		Meta:      repo,
		Metrics:   m,
		Config:    cfg,
		Logger:    logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	return app, kv.Close, nil
}

func openKVStore(cfg config.StorageConfig, logger zerolog.Logger) (repository.KVStore, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		bdb, err := db.OpenBadger(db.BadgerConfig{
			Path:       cfg.Path,
			SyncWrites: cfg.SyncWrites,
			Logger:     &logger,
		})
		if err != nil {
			return nil, err
		}
		return repository.NewBadgerKV(bdb), nil
	default:
		database, err := db.OpenDB(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteKV(database), nil
	}
}
