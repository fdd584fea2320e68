package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/infrastructure/watcher"
)

func TestFileWatcher_ReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "app.service")
	other := filepath.Join(dir, "other.service")
	require.NoError(t, os.WriteFile(target, []byte("[Unit]\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changed []string
	)
	done := make(chan error, 1)
	go func() {
		done <- watcher.New(20*time.Millisecond).Watch(ctx, []string{target}, func(p string) {
			mu.Lock()
			defer mu.Unlock()
			changed = append(changed, p)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("[Unit]\n"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("[Unit]\nDescription=x\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range changed {
		assert.Equal(t, target, p)
	}
}

func TestFileWatcher_MissingPath(t *testing.T) {
	err := watcher.New(time.Millisecond).Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, func(string) {})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileWatcher_NoPaths(t *testing.T) {
	assert.Error(t, watcher.New(time.Millisecond).Watch(context.Background(), nil, func(string) {}))
}

func TestFileWatcher_DirectoryReportsUnitFilesOnly(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changed []string
	)
	done := make(chan error, 1)
	go func() {
		done <- watcher.New(20*time.Millisecond).Watch(ctx, []string{dir}, func(p string) {
			mu.Lock()
			defer mu.Unlock()
			changed = append(changed, p)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "app.service.d"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "odd.service"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".app.service.swp"), []byte("x"), 0o600))
	unit := filepath.Join(dir, "app.service")
	require.NoError(t, os.WriteFile(unit, []byte("[Unit]\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// Let any stray events for the other entries flush through the debouncer.
	time.Sleep(100 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range changed {
		assert.Equal(t, unit, p)
	}
}

func TestIsUnitFile(t *testing.T) {
	for _, name := range []string{"a.service", "/etc/systemd/system/b.timer", "c.socket", "d.mount"} {
		assert.True(t, watcher.IsUnitFile(name), name)
	}
	for _, name := range []string{"notes.txt", "a.service.d", ".a.service", "a.service~", "README"} {
		assert.False(t, watcher.IsUnitFile(name), name)
	}
}
