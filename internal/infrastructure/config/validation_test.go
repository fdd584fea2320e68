package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "negative max age", mutate: func(c *Config) { c.Logging.MaxAge = -1 }, wantErr: "logging.max_age"},
		{name: "too many workers", mutate: func(c *Config) { c.Parser.Workers = maxParserWorkers + 1 }, wantErr: "parser.workers"},
		{name: "negative workers", mutate: func(c *Config) { c.Parser.Workers = -2 }, wantErr: "parser.workers"},
		{name: "short debounce", mutate: func(c *Config) { c.Watch.DebounceMs = 1 }, wantErr: "watch.debounce_ms"},
		{name: "bad color", mutate: func(c *Config) { c.Appearance.Palette.Border = "#12345" }, wantErr: "appearance.palette.border"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
