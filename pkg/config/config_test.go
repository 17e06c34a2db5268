// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: real filesystem (temp dirs), environment
// PURPOSE: Test configuration layering and rendering

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcintyre/AnimAssist/pkg/config"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "animassist.exe", cfg.Tool.Path)
	assert.Equal(t, "", cfg.Tool.Launcher)
	assert.Equal(t, time.Duration(0), cfg.Tool.Timeout)
	assert.False(t, cfg.Tool.Keep)
	assert.True(t, cfg.Log.File)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_UserConfigOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "animassist", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[tool]\nlauncher = \"wine\"\ntimeout = \"90s\"\n"), 0644))
	assert.Equal(t, path, config.UserConfigPath())

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "wine", cfg.Tool.Launcher)
	assert.Equal(t, 90*time.Second, cfg.Tool.Timeout)
	assert.Equal(t, "animassist.exe", cfg.Tool.Path, "unset keys keep their defaults")

	cfg, err = config.Load(config.LoadOptions{SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Tool.Launcher)
}

func TestLoad_ExplicitFileAndEnvironment(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tool]\npath = \"/opt/tool.exe\"\nkeep = true\n[output]\nformat = \"json\"\n"), 0644))
	t.Setenv("ANIMASSIST_OUTPUT_FORMAT", "yaml")
	t.Setenv("ANIMASSIST_LOG_FILE", "false")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "/opt/tool.exe", cfg.Tool.Path)
	assert.True(t, cfg.Tool.Keep)
	assert.Equal(t, "yaml", cfg.Output.Format, "environment wins over files")
	assert.False(t, cfg.Log.File)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tool:\n  launcher: wine64\n  timeout: 2m\n"), 0644))

	cfg, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "wine64", cfg.Tool.Launcher)
	assert.Equal(t, 2*time.Minute, cfg.Tool.Timeout)
}

func TestLoad_OverridesWinOverEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("ANIMASSIST_OUTPUT_FORMAT", "yaml")

	cfg, err := config.Load(config.LoadOptions{Overrides: map[string]interface{}{"output.format": "json"}})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tool\npath = "), 0644))

	_, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestToTOML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	out, err := cfg.ToTOML()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "[tool]")
	assert.Regexp(t, `path = ['"]animassist\.exe['"]`, s)
	assert.Regexp(t, `timeout = ['"]0s['"]`, s)
	assert.Contains(t, s, "[output]")
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, config.DefaultContent(), "[tool]")
}
