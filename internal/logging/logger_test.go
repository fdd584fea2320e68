package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "v", line["k"])
}

func TestNewWithFile_WritesRunFile(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: true, LogDir: dir, RunID: "20261016_120000_abcd"})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "run_20261016_120000_abcd.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"20261016_120000_abcd"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNewWithFile_Disabled(t *testing.T) {
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: false})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile_RequiresDir(t *testing.T) {
	_, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: true})
	defer cleanup()
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "parser")
	ctx = WithFile(ctx, "/etc/a.service")
	ctx = WithUnit(ctx, "a.service")
	ctx = With(ctx, map[string]any{"attempt": 2})

	FromContext(ctx).Info().Msg("x")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "parser", line["component"])
	assert.Equal(t, "/etc/a.service", line["file"])
	assert.Equal(t, "a.service", line["unit"])
	assert.EqualValues(t, 2, line["attempt"])
}

func TestRecoverPanic_SwallowsPanic(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf))

	func() {
		defer RecoverPanic(ctx, "test")
		panic("boom")
	}()

	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Contains(t, buf.String(), "boom")
}
