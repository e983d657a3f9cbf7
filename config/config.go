// Package config collects the server's runtime settings from environment
// variables (typically loaded from a .env file) with sensible defaults.
// CLI flags may override individual fields after Load.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults mirror the classic deployment: game port 5000, a scores.txt file
// next to the binary, a 20-connection worker pool, 100ms snake ticks and a
// one second memory-game peek.
const (
	DefaultTCPAddr   = ":5000"
	DefaultHTTPAddr  = ":8080"
	DefaultScores    = "scores.txt"
	DefaultMaxConns  = 20
	DefaultSnakeTick = 100 * time.Millisecond
	DefaultPeekDelay = time.Second
)

// Config holds every tunable of the server process.
type Config struct {
	// TCPAddr is the game protocol listen address.
	TCPAddr string
	// HTTPAddr is the listen address for the status API and WebSocket
	// transport.
	HTTPAddr string
	// ScoresFile is the flat leaderboard file path. Used unless ScoresDB is
	// set.
	ScoresFile string
	// ScoresDB, when non-empty, selects the SQLite leaderboard backend.
	ScoresDB string
	// MaxConns bounds the number of concurrently served connections.
	MaxConns int
	// SnakeTick is the snake world tick interval.
	SnakeTick time.Duration
	// PeekDelay is how long a mismatched memory pair stays visible.
	PeekDelay time.Duration
	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string
}

// Load builds a Config from the environment.
func Load() *Config {
	return &Config{
		TCPAddr:    getEnv("ADDR", DefaultTCPAddr),
		HTTPAddr:   getEnv("HTTP_ADDR", DefaultHTTPAddr),
		ScoresFile: getEnv("SCORES_FILE", DefaultScores),
		ScoresDB:   getEnv("SCORES_DB", ""),
		MaxConns:   getEnvInt("MAX_CONNS", DefaultMaxConns),
		SnakeTick:  getEnvDurationMS("SNAKE_TICK_MS", DefaultSnakeTick),
		PeekDelay:  getEnvDurationMS("PEEK_DELAY_MS", DefaultPeekDelay),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDurationMS(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
