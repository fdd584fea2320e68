// Package watcher implements port.FileWatcher on top of fsnotify.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/logging"
)

// FileWatcher watches files through their parent directories so editors that
// replace files by rename are still observed.
type FileWatcher struct {
	debounce time.Duration
}

var _ port.FileWatcher = (*FileWatcher)(nil)

// New creates a watcher that coalesces events within debounce.
func New(debounce time.Duration) *FileWatcher {
	return &FileWatcher{debounce: debounce}
}

// unitSuffixes are the unit types reported from watched directories.
var unitSuffixes = map[string]struct{}{
	".service": {}, ".socket": {}, ".target": {}, ".timer": {}, ".path": {},
	".mount": {}, ".automount": {}, ".swap": {}, ".slice": {}, ".scope": {}, ".device": {},
}

// IsUnitFile reports whether name carries a systemd unit suffix.
func IsUnitFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, ok := unitSuffixes[filepath.Ext(base)]
	return ok
}

// watchSet decides which event paths are reported.
type watchSet struct {
	files map[string]struct{}
	dirs  map[string]struct{} // unit files inside are reported
}

func (s *watchSet) wants(path string) bool {
	if _, ok := s.files[path]; ok {
		return true
	}
	if _, ok := s.dirs[filepath.Dir(path)]; !ok || !IsUnitFile(path) {
		return false
	}
	// Deleted paths cannot be stat'ed and are still reported.
	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		return false
	}
	return true
}

// Watch blocks until ctx is done. Paths may be files or directories.
func (w *FileWatcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	log := logging.FromContext(logging.WithComponent(ctx, "watcher"))

	if len(paths) == 0 {
		return fmt.Errorf("no paths to watch")
	}

	set := &watchSet{files: make(map[string]struct{}), dirs: make(map[string]struct{})}
	watchDirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		if info.IsDir() {
			set.dirs[abs] = struct{}{}
			watchDirs[abs] = struct{}{}
			continue
		}
		set.files[abs] = struct{}{}
		watchDirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	for dir := range watchDirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debug().Str("dir", dir).Msg("watching directory")
	}

	debouncer := NewDebouncer(w.debounce, func(changed []string) {
		for _, p := range changed {
			onChange(p)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || !set.wants(ev.Name) {
				continue
			}
			log.Trace().Str("op", ev.Op.String()).Str("path", ev.Name).Msg("fs event")
			debouncer.Add(ev.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("fsnotify error")
		}
	}
}
