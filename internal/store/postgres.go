// Package store is the persistence layer. Article identity is the
// canonical URL: the table's uniqueness constraint is what makes the
// dedup gate safe under overlapping ingestion runs, with no
// application-level locking.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
)

// psql builds queries with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Postgres struct {
	db *sql.DB
}

// New connects, pings, and ensures the schema exists.
func New(connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Info("postgres store connected")
	return s, nil
}

// NewWithDB wraps an existing connection, for tests and embedding.
func NewWithDB(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		full_content TEXT NOT NULL DEFAULT '',
		source_name TEXT NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT,
		url TEXT UNIQUE NOT NULL,
		published_at TIMESTAMPTZ NOT NULL,
		read_time_minutes INTEGER NOT NULL DEFAULT 1,
		trending BOOLEAN NOT NULL DEFAULT FALSE,
		engagement_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC);

	CREATE TABLE IF NOT EXISTS custom_sources (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		feed_url TEXT NOT NULL,
		category TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_custom_sources_owner ON custom_sources(owner_id);

	CREATE TABLE IF NOT EXISTS interactions (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		article_id TEXT NOT NULL,
		action TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at);

	CREATE TABLE IF NOT EXISTS pipeline_state (
		key TEXT PRIMARY KEY,
		run_at TIMESTAMPTZ NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *Postgres) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// isUniqueViolation recognizes the postgres unique_violation error
// class that the dedup gate treats as a normal skip.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// LastRun returns the stored timestamp for a scheduler key, zero when
// the key has never run.
func (s *Postgres) LastRun(ctx context.Context, key string) (time.Time, error) {
	var runAt time.Time
	err := psql.Select("run_at").
		From("pipeline_state").
		Where(sq.Eq{"key": key}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&runAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load last run %s: %w", key, err)
	}
	return runAt, nil
}

func (s *Postgres) SetLastRun(ctx context.Context, key string, t time.Time) error {
	query := `
		INSERT INTO pipeline_state (key, run_at)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET run_at = EXCLUDED.run_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, t); err != nil {
		return fmt.Errorf("set last run %s: %w", key, err)
	}
	return nil
}

// GetStats returns row counts for the monitoring endpoint.
func (s *Postgres) GetStats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return nil, err
	}
	stats["total_articles"] = total

	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM articles GROUP BY category`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var category string
			var count int
			if err := rows.Scan(&category, &count); err == nil {
				stats["category_"+category] = count
			}
		}
	}

	return stats, nil
}
