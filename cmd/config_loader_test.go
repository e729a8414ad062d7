package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	dir := isolateEnv(t)

	assert.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
	assert.Empty(t, resolveConfigPath(""), "missing XDG file is ignored")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "jview"), 0o755))
	path := writeFile(t, filepath.Join(dir, "jview"), "config.yaml", "ui:\n  ascii: true\n")
	assert.Equal(t, path, resolveConfigPath(""))
}

func TestResolveConfigPath_HomeFallback(t *testing.T) {
	isolateEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "")
	home := t.TempDir()
	origHome := userHomeDir
	userHomeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { userHomeDir = origHome })

	assert.Empty(t, resolveConfigPath(""))

	cfgDir := filepath.Join(home, ".config", "jview")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	path := writeFile(t, cfgDir, "config.yaml", "ui: {}\n")
	assert.Equal(t, path, resolveConfigPath(""))
}

func TestLoadMergedConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.UI.ColorScheme)
	assert.Contains(t, cfg.UI.Schemes, "colorblind")
	assert.Equal(t, []string{"q", "Q", "ctrl+c"}, cfg.UI.Keys["quit"])

	path := writeFile(t, dir, "config.yaml", "ui:\n  color_scheme: none\n  keys:\n    quit: [x]\n")
	cfg, err = loadMergedConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.UI.ColorScheme)
	assert.Equal(t, []string{"x"}, cfg.UI.Keys["quit"])
	assert.Equal(t, []string{"y"}, cfg.UI.Keys["copy"], "other bindings keep their defaults")

	bad := writeFile(t, dir, "bad.yaml", "ui:\n  colour_scheme: none\n")
	_, err = loadMergedConfig(bad)
	require.Error(t, err)

	_, err = loadMergedConfig(filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	dir := isolateEnv(t)

	out, _, err := runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "color_scheme: default")
	assert.Contains(t, out, "colorblind:")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "jview"), 0o755))
	writeFile(t, filepath.Join(dir, "jview"), "config.yaml", "ui:\n  color_scheme: colorblind\n")

	out, _, err = runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "color_scheme: colorblind")

	out, _, err = runCLI(t, "", "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "color_scheme: default")
}

func TestBrokenConfigFailsRun(t *testing.T) {
	dir := isolateEnv(t)
	path := writeFile(t, dir, "broken.yaml", "ui: [")

	_, _, err := runCLI(t, `{}`, "-p", "--config-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Equal(t, 1, ExitCode(err))
}
