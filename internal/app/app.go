// Package app initializes and runs the main application.
// It configures logging, storage, the auth/todo/theme services, and the
// interactive command loop, and handles shutdown.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/patric-chuzhbe/localtodo/internal/auth"
	"github.com/patric-chuzhbe/localtodo/internal/cli"
	"github.com/patric-chuzhbe/localtodo/internal/config"
	"github.com/patric-chuzhbe/localtodo/internal/db/jsondb"
	"github.com/patric-chuzhbe/localtodo/internal/db/memorystorage"
	"github.com/patric-chuzhbe/localtodo/internal/db/postgresdb"
	"github.com/patric-chuzhbe/localtodo/internal/db/storage"
	"github.com/patric-chuzhbe/localtodo/internal/directory"
	"github.com/patric-chuzhbe/localtodo/internal/logger"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/session"
	"github.com/patric-chuzhbe/localtodo/internal/theme"
)

// App encapsulates the configuration, storage backend, and services
// needed to run the todo application.
type App struct {
	cfg *config.Config
	db  storage.KeyValueStore
	cli *cli.CLI
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - selecting and setting up storage
// - wiring the directory, session, auth, todo, and theme services
// - setting up the command loop
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	accounts := directory.New(app.db)
	currentSession := session.New(app.db)

	authService, err := auth.New(accounts, currentSession)
	if err != nil {
		return nil, err
	}

	app.cli, err = cli.New(
		authService,
		accounts,
		currentSession,
		theme.New(app.db),
	)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run executes the command loop until exit or an interrupt signal,
// then flushes the store.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Debugln("storage ready", "type", a.cfg.StorageType())

	if err := a.cli.Run(ctx); err != nil {
		return fmt.Errorf("command loop error: %w", err)
	}

	logger.Log.Infoln("Saving database and exiting...")

	return a.db.Close()
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getStorageByType(cfg *config.Config) (storage.KeyValueStore, error) {
	switch cfg.StorageType() {
	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			cfg.MigrationsDir,
		)

	case models.StorageTypeFile:
		return jsondb.New(cfg.DBFileName)
	}

	return memorystorage.New()
}
