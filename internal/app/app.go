// Package app assembles the journal from configuration.
package app

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/fxrates"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/store"
)

// App bundles the long-lived dependencies of a process.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Journal *journal.Service
}

// New loads configuration from configPath and connects every component.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, err
	}
	log.Info("Configuration loaded")

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Database connection successful and schema migrated.", zap.String("driver", cfg.Database.Driver))

	// a nil interface, not a nil *Client, when lookups are off
	var rates fxrates.Provider
	if cfg.FXRates.Enabled {
		rates = fxrates.NewClient(&cfg.FXRates, log)
		log.Info("Conversion rate lookup enabled", zap.String("base_url", cfg.FXRates.BaseURL))
	}

	return &App{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Journal: journal.NewService(store.New(db), rates, cfg.Journal, log),
	}, nil
}

// Close releases the database connection and flushes the logger.
func (a *App) Close() error {
	defer a.Logger.Sync()
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
