package game

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SnapshotPath != "data/session.db" {
		t.Fatalf("expected default snapshot path, got %q", cfg.SnapshotPath)
	}
	if cfg.JournalPath != "data/journal.db" {
		t.Fatalf("expected default journal path, got %q", cfg.JournalPath)
	}
	if cfg.TurnWindow != 0 {
		t.Fatalf("expected zero turn window, got %v", cfg.TurnWindow)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("ROUNDTABLE_SNAPSHOT_DB_PATH", "/tmp/state.db")
	t.Setenv("ROUNDTABLE_TURN_WINDOW", "12h")

	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SnapshotPath != "/tmp/state.db" {
		t.Fatalf("expected env snapshot path, got %q", cfg.SnapshotPath)
	}
	if cfg.TurnWindow != 12*time.Hour {
		t.Fatalf("expected 12h turn window, got %v", cfg.TurnWindow)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-snapshot-db", "/tmp/override.db",
		"-turn-window", "90m",
		"-check-interval", "30s",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SnapshotPath != "/tmp/override.db" {
		t.Fatalf("expected snapshot path override, got %q", cfg.SnapshotPath)
	}
	if cfg.TurnWindow != 90*time.Minute {
		t.Fatalf("expected 90m turn window, got %v", cfg.TurnWindow)
	}
	if cfg.CheckInterval != 30*time.Second {
		t.Fatalf("expected 30s check interval, got %v", cfg.CheckInterval)
	}
}
