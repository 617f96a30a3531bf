package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("appearance:\n  directory_color: \"#3366ff\"\nbehavior:\n  show_hidden: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#3366ff", cfg.Appearance.DirectoryColor)
	assert.True(t, cfg.Behavior.ShowHidden)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().Appearance.SelectedColor, cfg.Appearance.SelectedColor)
	assert.Equal(t, Default().Behavior.MaxFileLines, cfg.Behavior.MaxFileLines)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("appearance: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("appearance:\n  split_position: 99\nbehavior:\n  max_file_lines: -5\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Appearance.SplitPosition, cfg.Appearance.SplitPosition)
	assert.Equal(t, Default().Behavior.MaxFileLines, cfg.Behavior.MaxFileLines)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtree", "config.yaml")

	cfg := Default()
	cfg.Behavior.FollowSymlinks = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
