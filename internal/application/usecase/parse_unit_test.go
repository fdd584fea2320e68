package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/parser/systemd"
)

func TestParseUnitUseCase_Execute(t *testing.T) {
	ctx := testContext()
	path := writeUnit(t, t.TempDir(), "web.service", webUnit)

	parsed, err := usecase.NewParseUnitUseCase(false, 2).Execute(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "web.service", parsed.Name)
	assert.Equal(t, path, parsed.Path)
	assert.Len(t, parsed.Checksum, 64)
	assert.Equal(t, "Web daemon", parsed.File.Unit.Description)
	assert.Equal(t, []string{"/usr/bin/web", "--port", "8080"}, parsed.File.Service.ExecStart)
}

func TestParseUnitUseCase_StrictRejectsUnknownSection(t *testing.T) {
	ctx := testContext()
	path := writeUnit(t, t.TempDir(), "x.timer", "[Timer]\nOnCalendar=daily\n")

	_, err := usecase.NewParseUnitUseCase(true, 1).Execute(ctx, path)
	assert.ErrorIs(t, err, systemd.ErrUnknownSection)

	parsed, err := usecase.NewParseUnitUseCase(false, 1).Execute(ctx, path)
	require.NoError(t, err)
	assert.Len(t, parsed.File.Other, 1)
}

func TestParseUnitUseCase_MissingFile(t *testing.T) {
	_, err := usecase.NewParseUnitUseCase(false, 1).Execute(testContext(), filepath.Join(t.TempDir(), "nope.service"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseUnitUseCase_ParseManyKeepsOrder(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"c.service", "a.service", "b.service", "d.service"} {
		paths = append(paths, writeUnit(t, dir, name, "[Unit]\nDescription="+name+"\n"))
	}

	results, err := usecase.NewParseUnitUseCase(false, 2).ParseMany(ctx, paths)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
		assert.Equal(t, filepath.Base(paths[i]), r.File.Unit.Description)
	}
}

func TestParseUnitUseCase_ParseManyFailsFast(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	good := writeUnit(t, dir, "good.service", webUnit)
	bad := writeUnit(t, dir, "bad.service", "Description=outside\n")

	_, err := usecase.NewParseUnitUseCase(false, 4).ParseMany(ctx, []string{good, bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, systemd.ErrOutsideSection)
	assert.Contains(t, err.Error(), bad)
}

func TestParseUnitUseCase_ParseManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	cancel()
	path := writeUnit(t, t.TempDir(), "web.service", webUnit)

	_, err := usecase.NewParseUnitUseCase(false, 1).ParseMany(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseUnitUseCase_ParseReader(t *testing.T) {
	parsed, err := usecase.NewParseUnitUseCase(false, 1).ParseReader(testContext(), "stdin", strings.NewReader(webUnit))
	require.NoError(t, err)
	assert.Equal(t, "stdin", parsed.Name)
	assert.Empty(t, parsed.Path)
	assert.Equal(t, "simple", parsed.File.Service.Type)
}
