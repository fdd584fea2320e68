package logging

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRunID_Format(t *testing.T) {
	id := GenerateRunID()
	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{4}$`), id)
	assert.Len(t, ShortRunID(id), 4)
}

func TestRunFilename_RoundTrip(t *testing.T) {
	name := RunFilename("20261016_205106_a7b3")
	assert.Equal(t, "run_20261016_205106_a7b3.log", name)

	id, ok := ParseRunFilename(name)
	assert.True(t, ok)
	assert.Equal(t, "20261016_205106_a7b3", id)
}

func TestParseRunFilename_Rejects(t *testing.T) {
	for _, name := range []string{"", "run_.log", "session_x.log", "run_x.log.2026-01-01", "run_x.txt"} {
		_, ok := ParseRunFilename(name)
		assert.False(t, ok, name)
	}
}

func TestShortRunID_Short(t *testing.T) {
	assert.Equal(t, "ab", ShortRunID("ab"))
}

func TestParseRunFile(t *testing.T) {
	tests := []struct {
		name string
		id   string
		seq  int
		ok   bool
	}{
		{"run_20261016_205106_a7b3.log", "20261016_205106_a7b3", 0, true},
		{"run_20261016_205106_a7b3.2.log", "20261016_205106_a7b3", 2, true},
		{"run_20261016_205106_a7b3.12.log.gz", "20261016_205106_a7b3", 12, true},
		{"run_20261016_205106_a7b3.log.gz", "", 0, false},
		{"run_x.0.log.gz", "", 0, false},
		{"run_x.log.2026-01-01", "", 0, false},
		{"notes.txt", "", 0, false},
	}
	for _, tt := range tests {
		id, seq, ok := ParseRunFile(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.id, id, tt.name)
		assert.Equal(t, tt.seq, seq, tt.name)
	}

	assert.Equal(t, "run_abc.3.log", RunBackupFilename("abc", 3))
	_, ok := ParseRunFilename("run_abc.3.log")
	assert.False(t, ok)
}
