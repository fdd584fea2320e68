package usecase_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/domain/entity"
	repomocks "github.com/bnema/sysparse/internal/domain/repository/mocks"
)

// scriptedWatcher replays a fixed list of changes and returns.
type scriptedWatcher struct {
	changes []string
	watched []string
}

func (w *scriptedWatcher) Watch(_ context.Context, paths []string, onChange func(string)) error {
	w.watched = paths
	for _, c := range w.changes {
		onChange(c)
	}
	return nil
}

func TestWatchUnitsUseCase_ReparsesChanges(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	good := writeUnit(t, dir, "web.service", webUnit)
	bad := writeUnit(t, dir, "bad.service", "nonsense\n")
	gone := writeUnit(t, dir, "gone.service", webUnit)
	require.NoError(t, os.Remove(gone))

	w := &scriptedWatcher{changes: []string{good, bad, gone}}
	uc := usecase.NewWatchUnitsUseCase(w, usecase.NewParseUnitUseCase(false, 1), nil)

	var changes []usecase.UnitChange
	err := uc.Execute(ctx, []string{dir}, false, func(c usecase.UnitChange) {
		changes = append(changes, c)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, w.watched)

	require.Len(t, changes, 3)
	require.NotNil(t, changes[0].Unit)
	assert.Equal(t, "Web daemon", changes[0].Unit.File.Unit.Description)
	assert.Empty(t, changes[0].Import)
	assert.Error(t, changes[1].Err)
	assert.True(t, changes[2].Removed)
}

func TestWatchUnitsUseCase_AutoImport(t *testing.T) {
	ctx := testContext()
	good := writeUnit(t, t.TempDir(), "web.service", webUnit)

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(nil, nil)
	repo.EXPECT().Save(ctx, mock.MatchedBy(func(r *entity.UnitRecord) bool { return r.Name == "web.service" })).Return(nil)

	parser := usecase.NewParseUnitUseCase(false, 1)
	uc := usecase.NewWatchUnitsUseCase(&scriptedWatcher{changes: []string{good}}, parser, usecase.NewManageUnitsUseCase(repo, parser))

	var got usecase.UnitChange
	require.NoError(t, uc.Execute(ctx, []string{good}, true, func(c usecase.UnitChange) { got = c }))
	assert.Equal(t, usecase.ImportCreated, got.Import)
	assert.NoError(t, got.Err)
}

func TestWatchUnitsUseCase_AutoImportMirrorsDeletion(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	gone := writeUnit(t, dir, "web.service", webUnit)
	require.NoError(t, os.Remove(gone))
	elsewhere := writeUnit(t, dir, "api.service", webUnit)
	require.NoError(t, os.Remove(elsewhere))

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(&entity.UnitRecord{Name: "web.service", SourcePath: gone}, nil)
	repo.EXPECT().Delete(ctx, "web.service").Return(nil)
	repo.EXPECT().FindByName(ctx, "api.service").Return(&entity.UnitRecord{Name: "api.service", SourcePath: "/etc/systemd/system/api.service"}, nil)

	parser := usecase.NewParseUnitUseCase(false, 1)
	w := &scriptedWatcher{changes: []string{gone, elsewhere}}
	uc := usecase.NewWatchUnitsUseCase(w, parser, usecase.NewManageUnitsUseCase(repo, parser))

	var changes []usecase.UnitChange
	require.NoError(t, uc.Execute(ctx, []string{dir}, true, func(c usecase.UnitChange) { changes = append(changes, c) }))

	require.Len(t, changes, 2)
	assert.True(t, changes[0].Removed)
	assert.Equal(t, usecase.ImportRemoved, changes[0].Import)
	assert.True(t, changes[1].Removed)
	assert.Empty(t, changes[1].Import)
	assert.NoError(t, changes[1].Err)
}

func TestWatchUnitsUseCase_DeletionWithoutImportKeepsCatalog(t *testing.T) {
	ctx := testContext()
	gone := writeUnit(t, t.TempDir(), "web.service", webUnit)
	require.NoError(t, os.Remove(gone))

	// No expectations: the repository must not be touched.
	repo := repomocks.NewMockUnitRepository(t)
	parser := usecase.NewParseUnitUseCase(false, 1)
	uc := usecase.NewWatchUnitsUseCase(&scriptedWatcher{changes: []string{gone}}, parser, usecase.NewManageUnitsUseCase(repo, parser))

	var got usecase.UnitChange
	require.NoError(t, uc.Execute(ctx, []string{gone}, false, func(c usecase.UnitChange) { got = c }))
	assert.True(t, got.Removed)
	assert.Empty(t, got.Import)
}
