package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// LogRotator writes a run log and rotates it once it grows past maxSize.
//
// The live file is always run_<id>.log. Each rotation moves it to
// run_<id>.<n>.log (gzipped to run_<id>.<n>.log.gz when compress is set)
// with n one past the highest backup already on disk, so backups never
// overwrite each other and `logs` can list them under their run.
type LogRotator struct {
	mu         sync.Mutex
	dir        string
	runID      string
	maxSize    int64
	maxAge     time.Duration
	maxBackups int
	compress   bool

	file *os.File
	size int64
	seq  int
}

// NewLogRotator opens (or appends to) the live log of runID in dir.
func NewLogRotator(dir, runID string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*LogRotator, error) {
	r := &LogRotator{
		dir:        dir,
		runID:      runID,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
	}
	for _, b := range r.backups() {
		r.seq = max(r.seq, b.seq)
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LogRotator) livePath() string {
	return filepath.Join(r.dir, RunFilename(r.runID))
}

func (r *LogRotator) open() error {
	path := r.livePath()
	r.size = 0
	if info, err := os.Stat(path); err == nil {
		r.size = info.Size()
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	r.file = f
	return nil
}

// Write appends p, rotating first when p would push the file past maxSize.
// A record larger than maxSize still lands whole in a fresh file.
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close log file: %v\n", err)
	}
	r.file = nil

	r.seq++
	backup := filepath.Join(r.dir, RunBackupFilename(r.runID, r.seq))
	if err := os.Rename(r.livePath(), backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	if r.compress {
		if err := gzipFile(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: compress %s: %v\n", backup, err)
		} else if err := os.Remove(backup); err != nil {
			fmt.Fprintf(os.Stderr, "warning: remove %s: %v\n", backup, err)
		}
	}

	r.prune()
	return r.open()
}

// gzipFile writes path+".gz" next to path.
func gzipFile(path string) (retErr error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(path+gzSuffix, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

type backupFile struct {
	path    string
	seq     int
	modTime time.Time
}

// backups lists the rotated files of this run, oldest first.
func (r *LogRotator) backups() []backupFile {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil
	}

	var out []backupFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, seq, ok := ParseRunFile(e.Name())
		if !ok || seq == 0 || id != r.runID {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, backupFile{path: filepath.Join(r.dir, e.Name()), seq: seq, modTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// prune drops backups older than maxAge, then the oldest beyond maxBackups.
func (r *LogRotator) prune() {
	now := time.Now()
	var kept []backupFile
	for _, b := range r.backups() {
		if r.maxAge > 0 && now.Sub(b.modTime) > r.maxAge {
			removeBackup(b.path)
			continue
		}
		kept = append(kept, b)
	}

	if r.maxBackups > 0 && len(kept) > r.maxBackups {
		for _, b := range kept[:len(kept)-r.maxBackups] {
			removeBackup(b.path)
		}
	}
}

func removeBackup(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: remove old log file: %v\n", err)
	}
}

// Close closes the live file. A later Write reopens it.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
