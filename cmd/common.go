package cmd

import (
	"context"
	"fmt"

	"storage-bridge/core/config"
	"storage-bridge/core/database"
	"storage-bridge/core/logger"
	"storage-bridge/feature/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// offline holds what one-shot commands need: configuration, a logger and the inventory.
type offline struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *inventory.Store
}

// openOffline loads configuration, connects to the database and migrates the inventory tables.
func openOffline(ctx context.Context) (*offline, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := inventory.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	return &offline{cfg: cfg, logger: l, db: db, store: store}, nil
}

func (o *offline) Close() {
	_ = o.logger.Sync()
	if sqlDB, err := o.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
