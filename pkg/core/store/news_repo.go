package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"peer_analysis/pkg/models"
)

// NewsRepo persists collected articles, keyed by URL.
type NewsRepo struct {
	pool *pgxpool.Pool
}

func NewNewsRepo(pool *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{pool: pool}
}

// SaveItems upserts a batch of articles. A rescore of an already-seen URL
// overwrites the stored item.
func (r *NewsRepo) SaveItems(ctx context.Context, items []models.NewsItem) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO news_items (url, item_json, collected_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (url)
		DO UPDATE SET item_json = EXCLUDED.item_json, collected_at = EXCLUDED.collected_at;
	`

	now := time.Now()
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		jsonData, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal news item: %w", err)
		}
		if _, err := r.pool.Exec(ctx, query, item.URL, jsonData, now); err != nil {
			return fmt.Errorf("failed to save news item: %w", err)
		}
	}
	return nil
}

// ListRecent returns the most recently collected articles, newest first.
func (r *NewsRepo) ListRecent(ctx context.Context, limit int) ([]models.NewsItem, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT item_json FROM news_items ORDER BY collected_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		var item models.NewsItem
		if err := json.Unmarshal(jsonData, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal news item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
