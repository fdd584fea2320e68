package config

// Config is the sysparse configuration, loaded from config.toml and SYSPARSE_* env vars.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database" json:"database"`
	Parser     ParserConfig     `mapstructure:"parser" toml:"parser" json:"parser"`
	Output     OutputConfig     `mapstructure:"output" toml:"output" json:"output"`
	Watch      WatchConfig      `mapstructure:"watch" toml:"watch" json:"watch"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance" json:"appearance"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// MaxAge is the number of days rotated log files are kept.
	MaxAge int `mapstructure:"max_age" toml:"max_age" json:"max_age"`
	// MaxSizeMB rotates a run log once it grows past this size; 0 disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`

	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
}

// DatabaseConfig locates the unit catalog.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// ParserConfig tunes unit file parsing.
type ParserConfig struct {
	// Strict rejects sections other than [Unit], [Service] and [Install].
	Strict bool `mapstructure:"strict" toml:"strict" json:"strict"`
	// DefaultUnit is the file parsed by the zero-argument parser entry point.
	DefaultUnit string `mapstructure:"default_unit" toml:"default_unit" json:"default_unit"`
	// Workers bounds concurrent parsing during imports.
	Workers int `mapstructure:"workers" toml:"workers" json:"workers"`
}

// OutputFormat selects how parse results are printed.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputText OutputFormat = "text"
)

// OutputConfig controls command output.
type OutputConfig struct {
	Format OutputFormat `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=json,enum=text"`
	Pretty bool         `mapstructure:"pretty" toml:"pretty" json:"pretty"`
}

// WatchConfig controls `unit watch`.
type WatchConfig struct {
	DebounceMs int  `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms"`
	AutoImport bool `mapstructure:"auto_import" toml:"auto_import" json:"auto_import"`
}

// ColorPalette holds the terminal colors used by the CLI theme.
type ColorPalette struct {
	Background string `mapstructure:"background" toml:"background" json:"background"`
	Surface    string `mapstructure:"surface" toml:"surface" json:"surface"`
	Text       string `mapstructure:"text" toml:"text" json:"text"`
	Muted      string `mapstructure:"muted" toml:"muted" json:"muted"`
	Accent     string `mapstructure:"accent" toml:"accent" json:"accent"`
	Border     string `mapstructure:"border" toml:"border" json:"border"`
}

// AppearanceConfig holds CLI styling.
type AppearanceConfig struct {
	Palette ColorPalette `mapstructure:"palette" toml:"palette" json:"palette"`
}
