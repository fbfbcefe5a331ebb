package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"peer_analysis/pkg/models"
)

// RunRecord is one completed analysis run: the merged table plus everything
// derived from it.
type RunRecord struct {
	ID               string                  `json:"id"`
	Year             string                  `json:"year"`
	Merged           *models.MergedStatement `json:"merged"`
	Report           string                  `json:"report"`
	FinancialInsight string                  `json:"financial_insight,omitempty"`
	NewsInsight      string                  `json:"news_insight,omitempty"`
	Sources          []models.SourceInfo     `json:"sources,omitempty"`
	News             []models.NewsItem       `json:"news,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

// RunsRepo persists analysis runs.
type RunsRepo struct{}

func NewRunsRepo() *RunsRepo {
	return &RunsRepo{}
}

// Save stores a run, assigning an ID and timestamp when missing.
func (r *RunsRepo) Save(ctx context.Context, record *RunRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (id, year, run_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			year = EXCLUDED.year,
			run_json = EXCLUDED.run_json,
			created_at = EXCLUDED.created_at;
	`
	if _, err := pool.Exec(ctx, query, record.ID, record.Year, jsonData, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadLatest retrieves the most recent run for a business year.
func (r *RunsRepo) LoadLatest(ctx context.Context, year string) (*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_json FROM analysis_runs WHERE year = $1 ORDER BY created_at DESC LIMIT 1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, year).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for year %s", year)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var record RunRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &record, nil
}

// List returns run IDs and timestamps for a year, newest first.
func (r *RunsRepo) List(ctx context.Context, year string, limit int) ([]RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT run_json FROM analysis_runs WHERE year = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := pool.Query(ctx, query, year, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var record RunRecord
		if err := json.Unmarshal(jsonData, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
