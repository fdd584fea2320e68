package usecase

import (
	"context"
	"errors"
	"io/fs"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/logging"
)

// UnitChange is reported for every settled change of a watched unit file.
type UnitChange struct {
	Path    string       `json:"path"`
	Unit    *ParsedUnit  `json:"unit,omitempty"`
	Removed bool         `json:"removed,omitempty"`
	Import  ImportStatus `json:"import,omitempty"`
	Err     error        `json:"-"`
}

// WatchUnitsUseCase re-parses unit files when they change on disk.
type WatchUnitsUseCase struct {
	watcher port.FileWatcher
	parser  *ParseUnitUseCase
	manage  *ManageUnitsUseCase
}

// NewWatchUnitsUseCase creates a watcher use case. manage may be nil when
// changes are never imported.
func NewWatchUnitsUseCase(watcher port.FileWatcher, parser *ParseUnitUseCase, manage *ManageUnitsUseCase) *WatchUnitsUseCase {
	return &WatchUnitsUseCase{watcher: watcher, parser: parser, manage: manage}
}

// Execute blocks until ctx is done, calling onChange after each re-parse.
// With autoImport the fresh parse is stored in the catalog and a deleted
// file drops the record that was imported from it.
func (uc *WatchUnitsUseCase) Execute(ctx context.Context, paths []string, autoImport bool, onChange func(UnitChange)) error {
	log := logging.FromContext(ctx)
	log.Info().Strs("paths", paths).Bool("import", autoImport).Msg("watching units")

	return uc.watcher.Watch(ctx, paths, func(path string) {
		change := UnitChange{Path: path}

		parsed, err := uc.parser.Execute(ctx, path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			change.Removed = true
			log.Info().Str("file", path).Msg("unit removed from disk")
			if autoImport && uc.manage != nil {
				status, forgetErr := uc.manage.forget(ctx, path)
				if forgetErr != nil {
					change.Err = forgetErr
					log.Error().Err(forgetErr).Str("file", path).Msg("catalog removal failed")
				} else {
					change.Import = status
				}
			}
		case err != nil:
			change.Err = err
			log.Warn().Err(err).Str("file", path).Msg("unit no longer parses")
		default:
			change.Unit = parsed
			if autoImport && uc.manage != nil {
				status, storeErr := uc.manage.store(ctx, parsed)
				if storeErr != nil {
					change.Err = storeErr
					log.Error().Err(storeErr).Str("unit", parsed.Name).Msg("re-import failed")
				} else {
					change.Import = status
				}
			}
		}

		if onChange != nil {
			onChange(change)
		}
	})
}
