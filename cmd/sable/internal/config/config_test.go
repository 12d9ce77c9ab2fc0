package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, modulePath, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module " + modulePath + "\n\ngo 1.24.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sable.yaml"), []byte(yaml), 0o644))
	}
	return dir
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadOptionalParsesYaml(t *testing.T) {
	dir := writeProject(t, "example.com/demo", `
app:
  name: demo
  window_title: Demo App
  window_width: 1024
debug:
  port: 8643
`)
	cfg, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.App.Name)
	assert.Equal(t, "Demo App", cfg.App.WindowTitle)
	assert.Equal(t, 1024.0, cfg.App.WindowWidth)
	assert.Equal(t, 8643, cfg.Debug.Port)
}

func TestLoadOptionalRejectsMalformedYaml(t *testing.T) {
	dir := writeProject(t, "example.com/demo", "app: [not: a: mapping\n")
	_, err := LoadOptional(dir)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "example.com/org/widgets", "")

	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/org/widgets", r.ModulePath)
	assert.Equal(t, "widgets", r.AppName, "app name defaults to the module path's last element")
	assert.Equal(t, "widgets", r.WindowTitle)
	assert.Equal(t, 800.0, r.WindowWidth)
	assert.Equal(t, 600.0, r.WindowHeight)
	assert.Equal(t, 0, r.DebugPort)
}

func TestResolveConfigOverrides(t *testing.T) {
	dir := writeProject(t, "example.com/demo", `
app:
  name: custom
  window_width: 1280
  window_height: 720
`)
	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom", r.AppName)
	assert.Equal(t, "custom", r.WindowTitle, "title falls back to the app name")
	assert.Equal(t, 1280.0, r.WindowWidth)
	assert.Equal(t, 720.0, r.WindowHeight)
}

func TestResolveVersionedModulePath(t *testing.T) {
	dir := writeProject(t, "example.com/demo/v2", "")
	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", r.AppName, "the /vN suffix is not an app name")
}

func TestResolveRequiresGoMod(t *testing.T) {
	_, err := Resolve(t.TempDir())
	assert.Error(t, err)
}
