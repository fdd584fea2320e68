package repository

import (
	"context"

	"github.com/bnema/sysparse/internal/domain/entity"
)

// UnitRepository defines operations for the unit catalog.
type UnitRepository interface {
	// Save creates or updates a unit record keyed by name (upsert).
	Save(ctx context.Context, record *entity.UnitRecord) error

	// FindByName retrieves a unit record. Returns nil, nil when absent.
	FindByName(ctx context.Context, name string) (*entity.UnitRecord, error)

	// List returns records ordered by most recently updated first.
	List(ctx context.Context, limit int) ([]*entity.UnitRecord, error)

	// Delete removes a unit record by name.
	Delete(ctx context.Context, name string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
