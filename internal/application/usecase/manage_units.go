package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/domain/repository"
	"github.com/bnema/sysparse/internal/logging"
)

// ImportStatus says what an import did with one unit.
type ImportStatus string

const (
	ImportCreated   ImportStatus = "created"
	ImportUpdated   ImportStatus = "updated"
	ImportUnchanged ImportStatus = "unchanged"
	// ImportRemoved marks a catalog record dropped because its source file is gone.
	ImportRemoved ImportStatus = "removed"
)

// ImportResult describes the import of one unit file.
type ImportResult struct {
	Name   string       `json:"name"`
	Path   string       `json:"path"`
	Status ImportStatus `json:"status"`
}

// ImportOutput summarizes an import run.
type ImportOutput struct {
	Results   []ImportResult `json:"results"`
	Created   int            `json:"created"`
	Updated   int            `json:"updated"`
	Unchanged int            `json:"unchanged"`
}

// ManageUnitsUseCase maintains the unit catalog.
type ManageUnitsUseCase struct {
	repo   repository.UnitRepository
	parser *ParseUnitUseCase
	now    func() time.Time
}

// NewManageUnitsUseCase creates a new ManageUnitsUseCase.
func NewManageUnitsUseCase(repo repository.UnitRepository, parser *ParseUnitUseCase) *ManageUnitsUseCase {
	return &ManageUnitsUseCase{
		repo:   repo,
		parser: parser,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Import parses the files matched by patterns and stores them.
// Units whose checksum did not change are left alone.
func (uc *ManageUnitsUseCase) Import(ctx context.Context, patterns ...string) (*ImportOutput, error) {
	log := logging.FromContext(ctx)

	paths, err := ExpandUnitPaths(patterns)
	if err != nil {
		return nil, err
	}

	parsed, err := uc.parser.ParseMany(ctx, paths)
	if err != nil {
		return nil, err
	}

	out := &ImportOutput{Results: make([]ImportResult, 0, len(parsed))}
	for _, p := range parsed {
		status, err := uc.store(ctx, p)
		if err != nil {
			return out, err
		}
		out.Results = append(out.Results, ImportResult{Name: p.Name, Path: p.Path, Status: status})
		switch status {
		case ImportCreated:
			out.Created++
		case ImportUpdated:
			out.Updated++
		case ImportUnchanged:
			out.Unchanged++
		}
	}

	log.Info().
		Int("created", out.Created).
		Int("updated", out.Updated).
		Int("unchanged", out.Unchanged).
		Msg("units imported")

	return out, nil
}

// store saves one parsed unit unless the catalog already holds the same bytes.
func (uc *ManageUnitsUseCase) store(ctx context.Context, p *ParsedUnit) (ImportStatus, error) {
	existing, err := uc.repo.FindByName(ctx, p.Name)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", p.Name, err)
	}
	if existing != nil && existing.Checksum == p.Checksum {
		return ImportUnchanged, nil
	}

	source := p.Path
	if abs, absErr := filepath.Abs(p.Path); absErr == nil {
		source = abs
	}

	now := uc.now()
	record := &entity.UnitRecord{
		Name:        p.Name,
		SourcePath:  source,
		Description: p.File.Unit.Description,
		File:        p.File,
		Checksum:    p.Checksum,
		ImportedAt:  now,
		UpdatedAt:   now,
	}
	status := ImportCreated
	if existing != nil {
		record.ImportedAt = existing.ImportedAt
		status = ImportUpdated
	}

	if err := uc.repo.Save(ctx, record); err != nil {
		return "", err
	}
	return status, nil
}

// forget drops the record imported from path, if any. A record of the same
// name imported from another file is left alone.
func (uc *ManageUnitsUseCase) forget(ctx context.Context, path string) (ImportStatus, error) {
	name := entity.UnitNameFromPath(path)
	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", name, err)
	}
	source := path
	if abs, absErr := filepath.Abs(path); absErr == nil {
		source = abs
	}
	if existing == nil || existing.SourcePath != source {
		return "", nil
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		return "", fmt.Errorf("delete %s: %w", name, err)
	}
	return ImportRemoved, nil
}

// Get returns the stored unit called name.
func (uc *ManageUnitsUseCase) Get(ctx context.Context, name string) (*entity.UnitRecord, error) {
	record, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, name)
	}
	return record, nil
}

// List returns stored units, most recently updated first.
func (uc *ManageUnitsUseCase) List(ctx context.Context, limit int) ([]*entity.UnitRecord, error) {
	return uc.repo.List(ctx, limit)
}

// Count returns the number of stored units.
func (uc *ManageUnitsUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

// Remove deletes the stored unit called name.
func (uc *ManageUnitsUseCase) Remove(ctx context.Context, name string) error {
	if _, err := uc.Get(ctx, name); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	logging.FromContext(ctx).Info().Str("unit", name).Msg("unit removed")
	return nil
}

// Export renders the stored unit called name to w in unit file syntax.
func (uc *ManageUnitsUseCase) Export(ctx context.Context, name string, w io.Writer) error {
	record, err := uc.Get(ctx, name)
	if err != nil {
		return err
	}
	if _, err := record.File.WriteTo(w); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	return nil
}

// ExpandUnitPaths resolves literal paths and doublestar patterns such as
// "/etc/systemd/system/**/*.service" into a de-duplicated list of files.
// Two different files with the same unit name are rejected.
func ExpandUnitPaths(patterns []string) ([]string, error) {
	var (
		paths []string
		seen  = make(map[string]struct{})
		names = make(map[string]string)
	)

	add := func(path string) error {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return nil
		}
		name := entity.UnitNameFromPath(clean)
		if prev, ok := names[name]; ok {
			return fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateUnitName, name, prev, clean)
		}
		seen[clean] = struct{}{}
		names[name] = clean
		paths = append(paths, clean)
		return nil
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoUnitFiles, pattern)
		}
		for _, m := range matches {
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoUnitFiles
	}
	return paths, nil
}
