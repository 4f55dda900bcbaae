// Package jsonfile stores the snapshot as one pretty-printed JSON document,
// the same single-file model the bot has always used.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redondonicolas-afk/padel/internal/domain"
	"github.com/redondonicolas-afk/padel/internal/repository"
)

type snapshotRepository struct {
	path string
}

func NewSnapshotRepository(path string) repository.SnapshotRepository {
	return &snapshotRepository{path: path}
}

// Load reads the data file. A missing file is not an error: the bot starts
// with an empty collection on first run.
func (r *snapshotRepository) Load(_ context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	if snap.Stats == nil {
		snap.Stats = make(map[string]*domain.PlayerStats)
	}
	return snap, nil
}

// Save writes the whole snapshot through a temp file and a rename so a crash
// mid-write cannot leave a truncated data file behind.
func (r *snapshotRepository) Save(_ context.Context, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
