package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/domain/repository"
	"github.com/bnema/sysparse/internal/logging"
)

// timeLayout keeps a fixed width so updated_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const defaultListLimit = 100

const (
	upsertUnitSQL = `
INSERT INTO units (name, source_path, description, content, checksum, imported_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    source_path = excluded.source_path,
    description = excluded.description,
    content = excluded.content,
    checksum = excluded.checksum,
    updated_at = excluded.updated_at`

	selectUnitColumns = `SELECT name, source_path, description, content, checksum, imported_at, updated_at FROM units`
)

type unitRepo struct {
	db *sql.DB
}

// NewUnitRepository creates a new SQLite-backed unit repository.
func NewUnitRepository(db *sql.DB) repository.UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Save(ctx context.Context, record *entity.UnitRecord) error {
	log := logging.FromContext(ctx)
	if err := record.Validate(); err != nil {
		return err
	}

	content, err := json.Marshal(record.File)
	if err != nil {
		return fmt.Errorf("encode unit %s: %w", record.Name, err)
	}

	now := time.Now().UTC()
	importedAt := record.ImportedAt
	if importedAt.IsZero() {
		importedAt = now
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	log.Debug().Str("unit", record.Name).Str("checksum", record.Checksum).Msg("saving unit")

	_, err = r.db.ExecContext(ctx, upsertUnitSQL,
		record.Name,
		record.SourcePath,
		record.Description,
		string(content),
		record.Checksum,
		importedAt.UTC().Format(timeLayout),
		updatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save unit %s: %w", record.Name, err)
	}
	return nil
}

func (r *unitRepo) FindByName(ctx context.Context, name string) (*entity.UnitRecord, error) {
	row := r.db.QueryRowContext(ctx, selectUnitColumns+` WHERE name = ?`, name)
	record, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *unitRepo) List(ctx context.Context, limit int) ([]*entity.UnitRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, selectUnitColumns+` ORDER BY updated_at DESC, name ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entity.UnitRecord, 0)
	for rows.Next() {
		record, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *unitRepo) Delete(ctx context.Context, name string) error {
	logging.FromContext(ctx).Debug().Str("unit", name).Msg("deleting unit")
	_, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE name = ?`, name)
	return err
}

func (r *unitRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM units`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(s scanner) (*entity.UnitRecord, error) {
	var (
		record     entity.UnitRecord
		content    string
		importedAt string
		updatedAt  string
	)
	if err := s.Scan(
		&record.Name,
		&record.SourcePath,
		&record.Description,
		&content,
		&record.Checksum,
		&importedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	record.File = &entity.SystemdFile{}
	if err := json.Unmarshal([]byte(content), record.File); err != nil {
		return nil, fmt.Errorf("decode unit %s: %w", record.Name, err)
	}

	var err error
	if record.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
		return nil, fmt.Errorf("decode imported_at for %s: %w", record.Name, err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("decode updated_at for %s: %w", record.Name, err)
	}
	return &record, nil
}
