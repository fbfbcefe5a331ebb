package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool using the DATABASE_URL environment variable
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// EnsureSchema creates the tables the repositories expect. Safe to call on
// every startup.
func EnsureSchema(ctx context.Context) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id TEXT PRIMARY KEY,
			year TEXT NOT NULL,
			run_json JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_runs_year ON analysis_runs (year, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS statement_cache (
			corp_code TEXT NOT NULL,
			year TEXT NOT NULL,
			report_code TEXT NOT NULL,
			rows_json JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (corp_code, year, report_code)
		)`,
		`CREATE TABLE IF NOT EXISTS news_items (
			url TEXT PRIMARY KEY,
			item_json JSONB NOT NULL,
			collected_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
