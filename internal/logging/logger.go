package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDirPerm  = 0o755
	logFilePerm = 0o600
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional per-run log file.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	RunID         string
	WriteToStderr bool
	// MaxSizeMB > 0 enables size based rotation of the run file.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func formatWriter(out io.Writer, cfg Config) io.Writer {
	if cfg.Format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: cfg.TimeFormat,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to out.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	return zerolog.New(formatWriter(out, cfg)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues builds a stderr logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// SYSPARSE_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// SYSPARSE_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("SYSPARSE_LOG_LEVEL"), os.Getenv("SYSPARSE_LOG_FORMAT"))
}

// NewWithFile creates a logger that also writes to a per-run file.
// The returned cleanup closes the file and must always be called.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	noop := func() {}
	if !fileCfg.Enabled {
		if fileCfg.WriteToStderr {
			return New(cfg), noop, nil
		}
		return zerolog.Nop(), noop, nil
	}

	if fileCfg.LogDir == "" {
		return zerolog.Nop(), noop, fmt.Errorf("log directory not set")
	}
	if err := os.MkdirAll(fileCfg.LogDir, logDirPerm); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("create log dir: %w", err)
	}

	runID := fileCfg.RunID
	if runID == "" {
		runID = GenerateRunID()
	}
	filename := RunFilename(runID)

	var (
		fileOut io.WriteCloser
		err     error
	)
	if fileCfg.MaxSizeMB > 0 {
		fileOut, err = NewLogRotator(fileCfg.LogDir, runID, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
	} else {
		fileOut, err = os.OpenFile(filepath.Join(fileCfg.LogDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	}
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
	}

	// Files always get JSON so `sysparse logs` can pretty print them.
	writers := []io.Writer{fileOut}
	if fileCfg.WriteToStderr {
		writers = append(writers, formatWriter(os.Stderr, cfg))
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	cleanup := func() {
		_ = fileOut.Close()
	}
	return logger, cleanup, nil
}
