package postgres

import (
	"fmt"
	"time"

	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewClient opens a PostgreSQL connection pool from the configured DSN
func NewClient(cfg *config.Configuration, logger *logger.Logger) (*sqlx.DB, error) {
	dsn := cfg.Postgres.GetDSN()

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	maxOpen := cfg.Postgres.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 10
	}
	maxIdle := cfg.Postgres.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Hour)

	logger.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)

	return db, nil
}
