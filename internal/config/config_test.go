package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "./web", cfg.WebDir)
	assert.Equal(t, 10, cfg.Game.TurnSeconds)
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.Equal(t, time.Second, cfg.Game.AIDelay)
	assert.Equal(t, "hard", cfg.Game.DefaultDifficulty)
	assert.Equal(t, 10*time.Minute, cfg.Game.IdleTimeout)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
log-level: debug
http-port: "9090"
game:
  turn-seconds: 15
  ai-delay: 500ms
  default-difficulty: easy
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("GAME_DEFAULT_DIFFICULTY", "medium")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 15, cfg.Game.TurnSeconds)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.AIDelay)
	assert.Equal(t, "medium", cfg.Game.DefaultDifficulty, "environment overrides the file")
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("game: [not, a, map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
