package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.TCPAddr != ":5000" {
		t.Errorf("TCPAddr = %q", cfg.TCPAddr)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.ScoresFile != "scores.txt" || cfg.ScoresDB != "" {
		t.Errorf("scores = %q / %q", cfg.ScoresFile, cfg.ScoresDB)
	}
	if cfg.MaxConns != 20 {
		t.Errorf("MaxConns = %d", cfg.MaxConns)
	}
	if cfg.SnakeTick != 100*time.Millisecond || cfg.PeekDelay != time.Second {
		t.Errorf("timings = %v / %v", cfg.SnakeTick, cfg.PeekDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":6000")
	t.Setenv("SCORES_DB", "scores.db")
	t.Setenv("MAX_CONNS", "50")
	t.Setenv("SNAKE_TICK_MS", "250")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.TCPAddr != ":6000" {
		t.Errorf("TCPAddr = %q", cfg.TCPAddr)
	}
	if cfg.ScoresDB != "scores.db" {
		t.Errorf("ScoresDB = %q", cfg.ScoresDB)
	}
	if cfg.MaxConns != 50 {
		t.Errorf("MaxConns = %d", cfg.MaxConns)
	}
	if cfg.SnakeTick != 250*time.Millisecond {
		t.Errorf("SnakeTick = %v", cfg.SnakeTick)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_CONNS", "lots")
	t.Setenv("PEEK_DELAY_MS", "soon")

	cfg := Load()
	if cfg.MaxConns != DefaultMaxConns {
		t.Errorf("MaxConns = %d, want default", cfg.MaxConns)
	}
	if cfg.PeekDelay != DefaultPeekDelay {
		t.Errorf("PeekDelay = %v, want default", cfg.PeekDelay)
	}
}
