package port

import "context"

// FileWatcher reports debounced changes to files.
type FileWatcher interface {
	// Watch blocks until ctx is done, calling onChange once per settled path.
	// Directories are watched non-recursively.
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
