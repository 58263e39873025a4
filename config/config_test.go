package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrockdb/src/coord"
	"bedrockdb/src/world"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, coord.Overworld, cfg.Dimension())
	assert.Equal(t, world.CompressionNone, cfg.Compression())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"world":{"dimension":"nether"},"export":{"compression":"zstd"}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, coord.Nether, cfg.Dimension())
	assert.Equal(t, world.CompressionZstd, cfg.Compression())
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, "zh_CN", cfg.General.Language)
	assert.True(t, cfg.UI.ColoredOutput)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      `{"general":`,
		"dimension":   `{"world":{"dimension":"aether"}}`,
		"compression": `{"export":{"compression":"brotli"}}`,
		"format":      `{"export":{"format":"schem"}}`,
		"workers":     `{"export":{"workers":0}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.World.Path = "/worlds/test"
	cfg.UI.ProgressBar = false
	cfg.Export.Format = "snbt"
	require.NoError(t, cfg.SaveConfig(path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
