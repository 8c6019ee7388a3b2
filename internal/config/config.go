package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds the phase and pacing durations. Player capacities are
// fixed game rules and live in the domain package.
type GameConfig struct {
	PhaseSeconds     int           // choose / per-turn / vote countdown
	CountdownSeconds int           // lobby start countdown
	TimerTick        time.Duration // real-time length of one countdown tick
	RevealDelay      time.Duration // pause before the first score reveal
	RevealInterval   time.Duration // pause between per-player reveals
	ScoreboardDelay  time.Duration // pause between last reveal and scoreboard
	NextRoundDelay   time.Duration // pause between scoreboard and next round
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			PhaseSeconds:     getEnvInt("PHASE_SECONDS", 10),
			CountdownSeconds: getEnvInt("COUNTDOWN_SECONDS", 3),
			TimerTick:        time.Second,
			RevealDelay:      getEnvDuration("REVEAL_DELAY", time.Second),
			RevealInterval:   getEnvDuration("REVEAL_INTERVAL", 3*time.Second),
			ScoreboardDelay:  getEnvDuration("SCOREBOARD_DELAY", 6*time.Second),
			NextRoundDelay:   getEnvDuration("NEXT_ROUND_DELAY", 6*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration returns an environment variable parsed as a duration
// (e.g. "3s") or a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
