package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "PORT", "HOST", "ENV", "PHASE_SECONDS", "COUNTDOWN_SECONDS",
		"REVEAL_DELAY", "REVEAL_INTERVAL", "SCOREBOARD_DELAY", "NEXT_ROUND_DELAY",
		"LOG_LEVEL", "LOG_FORMAT")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.GetAddr())

	assert.Equal(t, 10, cfg.Game.PhaseSeconds)
	assert.Equal(t, 3, cfg.Game.CountdownSeconds)
	assert.Equal(t, time.Second, cfg.Game.TimerTick)
	assert.Equal(t, time.Second, cfg.Game.RevealDelay)
	assert.Equal(t, 3*time.Second, cfg.Game.RevealInterval)
	assert.Equal(t, 6*time.Second, cfg.Game.ScoreboardDelay)
	assert.Equal(t, 6*time.Second, cfg.Game.NextRoundDelay)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("ENV", "production")
	t.Setenv("PHASE_SECONDS", "20")
	t.Setenv("COUNTDOWN_SECONDS", "5")
	t.Setenv("REVEAL_INTERVAL", "500ms")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:9090", cfg.GetAddr())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 20, cfg.Game.PhaseSeconds)
	assert.Equal(t, 5, cfg.Game.CountdownSeconds)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.RevealInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PHASE_SECONDS", "soon")
	t.Setenv("REVEAL_DELAY", "a while")

	cfg := Load()

	assert.Equal(t, 10, cfg.Game.PhaseSeconds)
	assert.Equal(t, time.Second, cfg.Game.RevealDelay)
}
