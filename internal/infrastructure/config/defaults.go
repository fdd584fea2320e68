package config

const (
	dirPerm  = 0o755
	filePerm = 0o644

	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultMaxLogAge  = 7 // days
	defaultMaxLogSize = 10
	defaultUnitFile   = "unit.service"
	defaultWorkers    = 4
	defaultDebounceMs = 250
	maxParserWorkers  = 64
	minDebounceMs     = 10
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			MaxAge:        defaultMaxLogAge,
			MaxSizeMB:     defaultMaxLogSize,
			EnableFileLog: false,
		},
		Parser: ParserConfig{
			Strict:      false,
			DefaultUnit: defaultUnitFile,
			Workers:     defaultWorkers,
		},
		Output: OutputConfig{
			Format: OutputJSON,
			Pretty: true,
		},
		Watch: WatchConfig{
			DebounceMs: defaultDebounceMs,
		},
		Appearance: AppearanceConfig{
			Palette: ColorPalette{
				Background: "#0a0a0b",
				Surface:    "#1a1a1b",
				Text:       "#ffffff",
				Muted:      "#909090",
				Accent:     "#4ade80",
				Border:     "#333333",
			},
		},
	}
}
