package logging

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRunID = "20261016_120000_abcd"

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLogRotator_RotatesPastMaxSize(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, testRunID, 1, 5, 0, false)
	require.NoError(t, err)

	chunk := []byte(strings.Repeat("a", 700*1024))
	_, err = r.Write(chunk)
	require.NoError(t, err)
	_, err = r.Write(chunk)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.ElementsMatch(t, []string{
		"run_" + testRunID + ".log",
		"run_" + testRunID + ".1.log",
	}, listNames(t, dir))

	info, err := os.Stat(filepath.Join(dir, RunFilename(testRunID)))
	require.NoError(t, err)
	assert.EqualValues(t, len(chunk), info.Size())
}

func TestLogRotator_RapidRotationsKeepEveryBackup(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, testRunID, 1, 0, 0, false)
	require.NoError(t, err)

	chunk := []byte(strings.Repeat("b", 600*1024))
	for range 4 {
		_, err = r.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	names := listNames(t, dir)
	assert.Contains(t, names, RunBackupFilename(testRunID, 1))
	assert.Contains(t, names, RunBackupFilename(testRunID, 2))
	assert.Contains(t, names, RunBackupFilename(testRunID, 3))
	assert.Len(t, names, 4)

	for _, name := range names {
		id, _, ok := ParseRunFile(name)
		assert.True(t, ok, name)
		assert.Equal(t, testRunID, id)
	}
}

func TestLogRotator_CompressesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, testRunID, 1, 1, 0, true)
	require.NoError(t, err)

	chunk := []byte(strings.Repeat("c", 600*1024))
	for range 3 {
		_, err = r.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	gz := RunBackupFilename(testRunID, 2) + ".gz"
	assert.ElementsMatch(t, []string{RunFilename(testRunID), gz}, listNames(t, dir))

	f, err := os.Open(filepath.Join(dir, gz))
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Len(t, data, len(chunk))
}

func TestLogRotator_ContinuesNumberingAfterRestart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RunBackupFilename(testRunID, 4)+".gz"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RunBackupFilename("other", 9)), []byte("x"), 0o600))

	r, err := NewLogRotator(dir, testRunID, 1, 0, 0, false)
	require.NoError(t, err)
	chunk := []byte(strings.Repeat("d", 600*1024))
	for range 2 {
		_, err = r.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	assert.Contains(t, listNames(t, dir), RunBackupFilename(testRunID, 5))
}
