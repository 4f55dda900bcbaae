package repository

import (
	"context"

	"github.com/redondonicolas-afk/padel/internal/domain"
)

// SnapshotRepository persists the whole match collection at once. Load runs
// once at startup; Save overwrites everything after each mutating operation.
// Durability is best-effort: a failed Save loses that operation's effects,
// nothing is retried.
type SnapshotRepository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}
