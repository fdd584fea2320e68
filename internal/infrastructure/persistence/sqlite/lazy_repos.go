// Package sqlite provides SQLite implementations of domain repositories.
package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/domain/repository"
)

// LazyUnitRepository wraps the unit repository with lazy database initialization.
type LazyUnitRepository struct {
	provider port.DatabaseProvider
	repo     repository.UnitRepository
	once     sync.Once
	initErr  error
}

// NewLazyUnitRepository creates a lazy-loading unit repository.
func NewLazyUnitRepository(provider port.DatabaseProvider) repository.UnitRepository {
	return &LazyUnitRepository{provider: provider}
}

func (r *LazyUnitRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewUnitRepository(db)
	})
	return r.initErr
}

func (r *LazyUnitRepository) Save(ctx context.Context, record *entity.UnitRecord) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, record)
}

func (r *LazyUnitRepository) FindByName(ctx context.Context, name string) (*entity.UnitRecord, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByName(ctx, name)
}

func (r *LazyUnitRepository) List(ctx context.Context, limit int) ([]*entity.UnitRecord, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx, limit)
}

func (r *LazyUnitRepository) Delete(ctx context.Context, name string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, name)
}

func (r *LazyUnitRepository) Count(ctx context.Context) (int64, error) {
	if err := r.init(ctx); err != nil {
		return 0, err
	}
	return r.repo.Count(ctx)
}
