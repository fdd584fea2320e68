package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/domain/entity"
	repomocks "github.com/bnema/sysparse/internal/domain/repository/mocks"
)

func TestManageUnitsUseCase_ImportCreatesAndSkipsUnchanged(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	web := writeUnit(t, dir, "web.service", webUnit)
	db := writeUnit(t, dir, "db.service", "[Unit]\nDescription=Database\n")

	parser := usecase.NewParseUnitUseCase(false, 2)
	dbParsed, err := parser.Execute(ctx, db)
	require.NoError(t, err)

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(nil, nil)
	repo.EXPECT().FindByName(ctx, "db.service").Return(&entity.UnitRecord{
		Name:     "db.service",
		Checksum: dbParsed.Checksum,
		File:     dbParsed.File,
	}, nil)
	repo.EXPECT().
		Save(ctx, mock.MatchedBy(func(r *entity.UnitRecord) bool {
			return r.Name == "web.service" && r.Description == "Web daemon" && filepath.IsAbs(r.SourcePath)
		})).
		Return(nil)

	out, err := usecase.NewManageUnitsUseCase(repo, parser).Import(ctx, web, db)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Unchanged)
	require.Len(t, out.Results, 2)
	assert.Equal(t, usecase.ImportCreated, out.Results[0].Status)
	assert.Equal(t, usecase.ImportUnchanged, out.Results[1].Status)
}

func TestManageUnitsUseCase_ImportUpdateKeepsImportedAt(t *testing.T) {
	ctx := testContext()
	web := writeUnit(t, t.TempDir(), "web.service", webUnit)
	importedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(&entity.UnitRecord{
		Name:       "web.service",
		Checksum:   "stale",
		File:       &entity.SystemdFile{},
		ImportedAt: importedAt,
	}, nil)

	var saved *entity.UnitRecord
	repo.EXPECT().Save(ctx, mock.AnythingOfType("*entity.UnitRecord")).
		RunAndReturn(func(_ context.Context, r *entity.UnitRecord) error {
			saved = r
			return nil
		})

	out, err := usecase.NewManageUnitsUseCase(repo, usecase.NewParseUnitUseCase(false, 1)).Import(ctx, web)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Updated)

	require.NotNil(t, saved)
	assert.True(t, saved.ImportedAt.Equal(importedAt))
	assert.True(t, saved.UpdatedAt.After(importedAt))
}

func TestManageUnitsUseCase_ImportPropagatesSaveError(t *testing.T) {
	ctx := testContext()
	web := writeUnit(t, t.TempDir(), "web.service", webUnit)

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(nil, nil)
	repo.EXPECT().Save(ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := usecase.NewManageUnitsUseCase(repo, usecase.NewParseUnitUseCase(false, 1)).Import(ctx, web)
	assert.EqualError(t, err, "disk full")
}

func TestManageUnitsUseCase_GetNotFound(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "ghost.service").Return(nil, nil)

	_, err := usecase.NewManageUnitsUseCase(repo, nil).Get(ctx, "ghost.service")
	assert.ErrorIs(t, err, usecase.ErrUnitNotFound)
}

func TestManageUnitsUseCase_Remove(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "web.service").Return(&entity.UnitRecord{Name: "web.service", File: &entity.SystemdFile{}}, nil)
	repo.EXPECT().Delete(ctx, "web.service").Return(nil)

	require.NoError(t, usecase.NewManageUnitsUseCase(repo, nil).Remove(ctx, "web.service"))
}

func TestManageUnitsUseCase_RemoveMissing(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "ghost.service").Return(nil, nil)

	err := usecase.NewManageUnitsUseCase(repo, nil).Remove(ctx, "ghost.service")
	assert.ErrorIs(t, err, usecase.ErrUnitNotFound)
}

func TestManageUnitsUseCase_Export(t *testing.T) {
	ctx := testContext()
	file := &entity.SystemdFile{Service: entity.ServiceSection{Head: "[Service]", ExecStart: []string{"/bin/true"}}}

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().FindByName(ctx, "t.service").Return(&entity.UnitRecord{Name: "t.service", File: file}, nil)

	var buf bytes.Buffer
	require.NoError(t, usecase.NewManageUnitsUseCase(repo, nil).Export(ctx, "t.service", &buf))
	assert.Equal(t, "[Service]\nExecStart=/bin/true\n", buf.String())
}

func TestManageUnitsUseCase_ListAndCount(t *testing.T) {
	ctx := testContext()
	records := []*entity.UnitRecord{{Name: "a.service"}, {Name: "b.service"}}

	repo := repomocks.NewMockUnitRepository(t)
	repo.EXPECT().List(ctx, 10).Return(records, nil)
	repo.EXPECT().Count(ctx).Return(int64(2), nil)

	uc := usecase.NewManageUnitsUseCase(repo, nil)
	got, err := uc.List(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestExpandUnitPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeUnit(t, dir, "system/a.service", "[Unit]\n")
	b := writeUnit(t, dir, "system/nested/b.service", "[Unit]\n")
	writeUnit(t, dir, "system/nested/c.timer", "[Timer]\n")

	paths, err := usecase.ExpandUnitPaths([]string{filepath.Join(dir, "system", "**", "*.service"), a})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, paths)
}

func TestExpandUnitPaths_Errors(t *testing.T) {
	dir := t.TempDir()
	one := writeUnit(t, dir, "one/x.service", "[Unit]\n")
	two := writeUnit(t, dir, "two/x.service", "[Unit]\n")

	_, err := usecase.ExpandUnitPaths([]string{one, two})
	assert.ErrorIs(t, err, usecase.ErrDuplicateUnitName)

	_, err = usecase.ExpandUnitPaths([]string{filepath.Join(dir, "**", "*.socket")})
	assert.ErrorIs(t, err, usecase.ErrNoUnitFiles)

	_, err = usecase.ExpandUnitPaths(nil)
	assert.ErrorIs(t, err, usecase.ErrNoUnitFiles)
}
