package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackathon-ideas/internal/domain"
)

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS idea_snapshots (
	key TEXT PRIMARY KEY,
	snapshot_id UUID NOT NULL,
	ideas JSONB NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// PostgresStore keeps the snapshot as one row keyed like the file store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	key    string
	logger *slog.Logger
}

func NewPostgresStore(ctx context.Context, databaseURL, key string, logger *slog.Logger) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, createSnapshotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	logger.Info("snapshot database connected")
	return &PostgresStore{pool: pool, key: key, logger: logger}, nil
}

func (p *PostgresStore) Close() {
	p.pool.Close()
}

func (p *PostgresStore) Load(ctx context.Context) ([]domain.Idea, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT ideas FROM idea_snapshots WHERE key = $1`, p.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	var ideas []domain.Idea
	if err := json.Unmarshal(raw, &ideas); err != nil {
		p.logger.Warn("removing corrupt snapshot", "key", p.key, "error", err)
		if _, delErr := p.pool.Exec(ctx, `DELETE FROM idea_snapshots WHERE key = $1`, p.key); delErr != nil {
			p.logger.Error("removing snapshot", "key", p.key, "error", delErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	return ideas, nil
}

func (p *PostgresStore) Save(ctx context.Context, ideas []domain.Idea) error {
	raw, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	query := `
		INSERT INTO idea_snapshots (key, snapshot_id, ideas, saved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET snapshot_id = EXCLUDED.snapshot_id, ideas = EXCLUDED.ideas, saved_at = EXCLUDED.saved_at
	`

	if _, err := p.pool.Exec(ctx, query, p.key, uuid.New(), raw, time.Now()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
