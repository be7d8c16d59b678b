package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `cache_dir: /tmp/methodray-cache
rbs_version: 3.7.0
harvester: [ruby, script/harvest.rb]
color: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/methodray-cache", cfg.CacheDir)
	assert.Equal(t, "3.7.0", cfg.RBSVersion)
	assert.Equal(t, []string{"ruby", "script/harvest.rb"}, cfg.Harvester)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("cache_dir: [\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
