package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"peer_analysis/pkg/core/dart"
)

// StatementCache caches raw DART statement rows so repeated runs in the same
// session do not refetch filings. Hybrid storage: DB when a pool is given,
// file system otherwise.
type StatementCache struct {
	pool    *pgxpool.Pool
	fileDir string
	maxAge  time.Duration
}

// NewStatementCache creates a cache. With a nil pool it falls back to files
// under dir, defaulting to .cache/dart.
func NewStatementCache(pool *pgxpool.Pool, dir string, maxAge time.Duration) *StatementCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "dart")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[Cache] ⚠️ cache dir unavailable: %v\n", err)
			dir = ""
		}
	}
	if maxAge == 0 {
		maxAge = 24 * time.Hour
	}
	return &StatementCache{pool: pool, fileDir: dir, maxAge: maxAge}
}

type cachedStatement struct {
	Rows      []dart.AccountRow `json:"rows"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Get returns cached rows, or ok=false on miss or expiry.
func (c *StatementCache) Get(ctx context.Context, corpCode, year, reportCode string) ([]dart.AccountRow, bool) {
	if c.pool != nil {
		query := `SELECT rows_json, fetched_at FROM statement_cache
			WHERE corp_code = $1 AND year = $2 AND report_code = $3`
		var jsonData []byte
		var fetchedAt time.Time
		if err := c.pool.QueryRow(ctx, query, corpCode, year, reportCode).Scan(&jsonData, &fetchedAt); err == nil {
			if time.Since(fetchedAt) < c.maxAge {
				var rows []dart.AccountRow
				if json.Unmarshal(jsonData, &rows) == nil && len(rows) > 0 {
					return rows, true
				}
			}
		}
	}

	if c.fileDir != "" {
		data, err := os.ReadFile(c.filePath(corpCode, year, reportCode))
		if err == nil {
			var entry cachedStatement
			if json.Unmarshal(data, &entry) == nil &&
				time.Since(entry.FetchedAt) < c.maxAge && len(entry.Rows) > 0 {
				return entry.Rows, true
			}
		}
	}
	return nil, false
}

// Put stores rows in whichever backends are configured. Failures only log,
// the cache is best effort.
func (c *StatementCache) Put(ctx context.Context, corpCode, year, reportCode string, rows []dart.AccountRow) {
	now := time.Now()

	if c.pool != nil {
		jsonData, err := json.Marshal(rows)
		if err == nil {
			query := `
				INSERT INTO statement_cache (corp_code, year, report_code, rows_json, fetched_at)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (corp_code, year, report_code)
				DO UPDATE SET rows_json = EXCLUDED.rows_json, fetched_at = EXCLUDED.fetched_at;
			`
			if _, err := c.pool.Exec(ctx, query, corpCode, year, reportCode, jsonData, now); err != nil {
				fmt.Printf("[Cache] ⚠️ DB write failed: %v\n", err)
			}
		}
	}

	if c.fileDir != "" {
		data, err := json.Marshal(cachedStatement{Rows: rows, FetchedAt: now})
		if err == nil {
			if err := os.WriteFile(c.filePath(corpCode, year, reportCode), data, 0644); err != nil {
				fmt.Printf("[Cache] ⚠️ file write failed: %v\n", err)
			}
		}
	}
}

func (c *StatementCache) filePath(corpCode, year, reportCode string) string {
	return filepath.Join(c.fileDir, fmt.Sprintf("%s_%s_%s.json", corpCode, year, reportCode))
}
