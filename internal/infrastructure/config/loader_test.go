package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "unit.service", mgr.viper.GetString("parser.default_unit"))
	assert.Equal(t, 4, mgr.viper.GetInt("parser.workers"))
	assert.Equal(t, "json", mgr.viper.GetString("output.format"))
	assert.Equal(t, 250, mgr.viper.GetInt("watch.debounce_ms"))
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)
	dir := filepath.Join(root, "config", "sysparse")

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, configName))
	assert.FileExists(t, filepath.Join(dir, schemaName))

	cfg := mgr.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.Equal(t, filepath.Join(root, "data", "sysparse", databaseName), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", "sysparse", "logs"), cfg.Logging.LogDir)
}

func TestLoad_ReadsFileAndEnv(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	content := "[parser]\nstrict = true\nworkers = 8\n\n[output]\nformat = \"TEXT\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(content), 0o600))

	t.Setenv("SYSPARSE_LOG_LEVEL", "debug")
	t.Setenv("SYSPARSE_UNIT_FILE", "/etc/systemd/system/app.service")

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, 8, cfg.Parser.Workers)
	assert.Equal(t, OutputText, cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/etc/systemd/system/app.service", cfg.Parser.DefaultUnit)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	content := "[parser]\nworkers = 500\n\n[appearance.palette]\naccent = \"green\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(content), 0o600))

	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser.workers")
	assert.Contains(t, err.Error(), "appearance.palette.accent")
}

func TestGet_ReturnsCopy(t *testing.T) {
	isolateXDG(t)
	mgr, err := NewManagerWithDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Parser.Workers = 99
	assert.Equal(t, 4, mgr.Get().Parser.Workers)
}

func TestReload_NotifiesCallbacks(t *testing.T) {
	isolateXDG(t)
	dir := t.TempDir()
	mgr, err := NewManagerWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var got *Config
	mgr.OnConfigChange(func(c *Config) { got = c })

	cfg := mgr.Get()
	cfg.Parser.Workers = 2
	require.NoError(t, WriteConfigOrdered(cfg, mgr.ConfigFile()))
	require.NoError(t, mgr.Reload())

	require.NotNil(t, got)
	assert.Equal(t, 2, got.Parser.Workers)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "yaml"
	cfg.Logging.Level = " WARN "
	cfg.Logging.Format = "pretty"
	cfg.Parser.Workers = 0
	cfg.Parser.DefaultUnit = "  "

	normalizeConfig(cfg)

	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, defaultWorkers, cfg.Parser.Workers)
	assert.Equal(t, defaultUnitFile, cfg.Parser.DefaultUnit)
}
