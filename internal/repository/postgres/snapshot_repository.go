package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/redondonicolas-afk/padel/internal/domain"
	"github.com/redondonicolas-afk/padel/internal/repository"
)

// The snapshot keeps its whole-document overwrite semantics on Postgres too:
// one row holds the entire collection as JSONB and Save replaces it inside a
// transaction. This trades query granularity for the exact durability model
// the file store has.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) (repository.SnapshotRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return &snapshotRepository{db: db}, nil
}

func (r *snapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data []byte
	query := `SELECT data FROM snapshots WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Stats == nil {
		snap.Stats = make(map[string]*domain.PlayerStats)
	}
	return snap, nil
}

func (r *snapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO snapshots (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := tx.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}
