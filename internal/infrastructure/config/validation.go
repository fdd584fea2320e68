package config

import (
	"fmt"
	"strings"
)

// validateConfig collects every invalid value instead of stopping at the first.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateParser(config)...)
	validationErrors = append(validationErrors, validateWatch(config)...)
	validationErrors = append(validationErrors, validatePalette(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error", config.Logging.Level))
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	return validationErrors
}

func validateParser(config *Config) []string {
	if config.Parser.Workers < 1 || config.Parser.Workers > maxParserWorkers {
		return []string{fmt.Sprintf("parser.workers must be between 1 and %d", maxParserWorkers)}
	}
	return nil
}

func validateWatch(config *Config) []string {
	if config.Watch.DebounceMs < minDebounceMs {
		return []string{fmt.Sprintf("watch.debounce_ms must be at least %d", minDebounceMs)}
	}
	return nil
}

func validatePalette(config *Config) []string {
	var validationErrors []string
	p := config.Appearance.Palette
	colors := map[string]string{
		"background": p.Background,
		"surface":    p.Surface,
		"text":       p.Text,
		"muted":      p.Muted,
		"accent":     p.Accent,
		"border":     p.Border,
	}
	for name, value := range colors {
		if value != "" && !isHexColor(value) {
			validationErrors = append(validationErrors, fmt.Sprintf("appearance.palette.%s %q is not a #rrggbb color", name, value))
		}
	}
	return validationErrors
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
