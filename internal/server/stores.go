package server

import (
	"context"
	"fmt"

	"codama/internal/config"
	"codama/internal/database"
	"codama/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Stores are the database handles shared by the API server and the CLI.
type Stores struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
}

// OpenStores makes sure the database exists, connects to it and applies
// the migrations.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*Stores, error) {
	if err := database.EnsureDatabaseExists(ctx, cfg.Database, log); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	pool, err := database.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	db, err := database.OpenGorm(cfg.Database)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{Pool: pool, Gorm: db}, nil
}

func (s *Stores) Close() {
	if sqlDB, err := s.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Pool.Close()
}
