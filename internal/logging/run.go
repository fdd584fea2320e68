package logging

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const (
	runPrefix = "run_"
	runSuffix = ".log"
	gzSuffix  = ".gz"
)

// GenerateRunID creates a unique run identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20261016_205106_a7b3
func GenerateRunID() string {
	now := time.Now()
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ShortRunID extracts the short ID (last 4 hex chars) from a full run ID.
// Example: "20261016_205106_a7b3" -> "a7b3"
func ShortRunID(runID string) string {
	if len(runID) < 4 {
		return runID
	}
	return runID[len(runID)-4:]
}

// ParseRunFilename extracts the run ID from a live run log filename.
// Rotated backups are rejected; use ParseRunFile to accept them too.
// Example: "run_20261016_205106_a7b3.log" -> "20261016_205106_a7b3", true
func ParseRunFilename(filename string) (runID string, ok bool) {
	runID, seq, ok := ParseRunFile(filename)
	if !ok || seq != 0 {
		return "", false
	}
	return runID, true
}

// ParseRunFile parses a live run log or one of its rotated backups.
// seq is 0 for the live file and the rotation counter for backups:
//
//	run_<id>.log        -> id, 0
//	run_<id>.<n>.log    -> id, n
//	run_<id>.<n>.log.gz -> id, n
func ParseRunFile(filename string) (runID string, seq int, ok bool) {
	name := strings.TrimSuffix(filename, gzSuffix)
	compressed := name != filename

	if len(name) <= len(runPrefix)+len(runSuffix) ||
		!strings.HasPrefix(name, runPrefix) || !strings.HasSuffix(name, runSuffix) {
		return "", 0, false
	}
	core := name[len(runPrefix) : len(name)-len(runSuffix)]

	if i := strings.LastIndexByte(core, '.'); i > 0 {
		if n, err := strconv.Atoi(core[i+1:]); err == nil && n > 0 {
			return core[:i], n, true
		}
	}
	if compressed {
		return "", 0, false
	}
	return core, 0, true
}

// RunBackupFilename names the seq-th rotated backup of a run log.
// Example: ("20261016_205106_a7b3", 2) -> "run_20261016_205106_a7b3.2.log"
func RunBackupFilename(runID string, seq int) string {
	return runPrefix + runID + "." + strconv.Itoa(seq) + runSuffix
}

// RunFilename generates the log filename for a run ID.
// Example: "20261016_205106_a7b3" -> "run_20261016_205106_a7b3.log"
func RunFilename(runID string) string {
	return runPrefix + runID + runSuffix
}
