package flatqa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero objects", func(c *Config) { c.NumObjects = 0 }},
		{"inverted size range", func(c *Config) { c.MinObjectSize = 20; c.MaxObjectSize = 10 }},
		{"too many shapes", func(c *Config) { c.NumShapes = len(Shapes) + 1 }},
		{"too many colors", func(c *Config) { c.NumColors = len(Colors) + 1 }},
		{"unknown split", func(c *Config) { c.Split = "cogent2" }},
		{"canvas cannot fit rotated object", func(c *Config) { c.ImageSize = 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigUniverses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumShapes = 2
	cfg.NumColors = 3

	assert.Equal(t, []Shape{ShapeSquare, ShapeTriangle}, cfg.ShapeUniverse())
	assert.Equal(t, []Color{ColorRed, ColorGreen, ColorBlue}, cfg.ColorUniverse())
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrainExamples = 42
	cfg.Split = SplitDiagonal
	cfg.Rotate = false

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	back, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("train: 10\nsplit: diagonal\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TrainExamples)
	assert.Equal(t, SplitDiagonal, cfg.Split)
	assert.Equal(t, DefaultConfig().NumObjects, cfg.NumObjects)
	assert.Equal(t, DefaultConfig().ValSeed, cfg.ValSeed)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
