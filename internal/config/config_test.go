package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Playback.AutoplayOnAdd)
	assert.False(t, cfg.Playback.AutoplayOnStartup)
	assert.False(t, cfg.Playback.InterruptOnAdd)
	assert.True(t, cfg.Startup.RememberPlaylist)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Logging.File)

	// Extension lists stay empty so the pipeline falls back to its defaults.
	assert.Empty(t, cfg.Library.AudioExtensions)
	assert.Empty(t, cfg.Library.PlaylistExtensions)
}

func TestDefaultStatePath(t *testing.T) {
	assert.NotEmpty(t, DefaultStatePath())
}
