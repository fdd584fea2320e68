package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/sysparse/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager rooted at the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager reading config.toml from dir.
func NewManagerWithDir(configDir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// SYSPARSE_DATABASE_PATH, SYSPARSE_PARSER_STRICT, ... resolve automatically.
	v.SetEnvPrefix("SYSPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"logging.level":       "SYSPARSE_LOG_LEVEL",
		"logging.format":      "SYSPARSE_LOG_FORMAT",
		"parser.default_unit": "SYSPARSE_UNIT_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created from defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := finalizeConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = filepath.Join(m.configDir, configName)
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// finalizeConfig fills derived paths, normalizes and validates.
func finalizeConfig(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}

	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch OutputFormat(strings.ToLower(string(config.Output.Format))) {
	case OutputText:
		config.Output.Format = OutputText
	default:
		config.Output.Format = OutputJSON
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}

	config.Parser.DefaultUnit = strings.TrimSpace(config.Parser.DefaultUnit)
	if config.Parser.DefaultUnit == "" {
		config.Parser.DefaultUnit = defaultUnitFile
	}
	if config.Parser.Workers == 0 {
		config.Parser.Workers = defaultWorkers
	}
	if config.Watch.DebounceMs == 0 {
		config.Watch.DebounceMs = defaultDebounceMs
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configName)
}

// createDefaultConfig writes config.toml and its JSON schema from defaults.
func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, configName)
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}

	log := logging.NewFromEnv()
	log.Debug().Str("path", configFile).Msg("created default configuration file")

	if err := GenerateSchemaFile(m.configDir); err != nil {
		log.Warn().Err(err).Msg("failed to write config schema")
	}
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)

	// Database.Path is derived in finalizeConfig when left empty.
	m.viper.SetDefault("database.path", "")

	m.viper.SetDefault("parser.strict", defaults.Parser.Strict)
	m.viper.SetDefault("parser.default_unit", defaults.Parser.DefaultUnit)
	m.viper.SetDefault("parser.workers", defaults.Parser.Workers)

	m.viper.SetDefault("output.format", string(defaults.Output.Format))
	m.viper.SetDefault("output.pretty", defaults.Output.Pretty)

	m.viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	m.viper.SetDefault("watch.auto_import", defaults.Watch.AutoImport)

	p := defaults.Appearance.Palette
	m.viper.SetDefault("appearance.palette.background", p.Background)
	m.viper.SetDefault("appearance.palette.surface", p.Surface)
	m.viper.SetDefault("appearance.palette.text", p.Text)
	m.viper.SetDefault("appearance.palette.muted", p.Muted)
	m.viper.SetDefault("appearance.palette.accent", p.Accent)
	m.viper.SetDefault("appearance.palette.border", p.Border)
}
