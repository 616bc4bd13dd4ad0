package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "swarm.toml")
	configContent := `
url = "ws://localhost:8080/ws"
clients = 200
ramp_per_sec = 25.0

[behavior]
kill_weight = 4.0
moves = ["north", "south"]

[loot]
get_lantern = true
get_every = 3
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.URL != "ws://localhost:8080/ws" {
		t.Errorf("expected url 'ws://localhost:8080/ws', got '%s'", cfg.URL)
	}
	if cfg.Clients != 200 {
		t.Errorf("expected clients 200, got %d", cfg.Clients)
	}
	if cfg.Behavior.KillWeight != 4.0 {
		t.Errorf("expected kill_weight 4.0, got %f", cfg.Behavior.KillWeight)
	}
	if len(cfg.Behavior.Moves) != 2 || cfg.Behavior.Moves[0] != "north" {
		t.Errorf("expected moves [north south], got %v", cfg.Behavior.Moves)
	}
	if !cfg.Loot.GetLantern || cfg.Loot.GetEvery != 3 {
		t.Errorf("expected loot enabled every 3 kills, got %+v", cfg.Loot)
	}
	// Untouched fields keep defaults.
	if cfg.Minutes != 5.0 {
		t.Errorf("expected default minutes 5.0, got %f", cfg.Minutes)
	}
	if cfg.Timeouts.IOS != 30.0 {
		t.Errorf("expected default io_s 30.0, got %f", cfg.Timeouts.IOS)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg := DefaultSwarm()
	cfg.Clients = -5
	cfg.Minutes = 0.01
	cfg.RampPerSec = -1
	cfg.Behavior.KillWeight = -2
	cfg.Behavior.Moves = nil
	cfg.Loot.GetEvery = 0
	cfg.Timing.ThinkMinMs = -100
	cfg.Timing.ThinkMaxMs = -200
	cfg.Timing.ProgressEveryS = 0.1
	cfg.Timeouts.ConnectS = 0
	cfg.Timeouts.IOS = 0.5

	cfg.Normalize()

	if cfg.Clients != 0 {
		t.Errorf("expected clients clamped to 0, got %d", cfg.Clients)
	}
	if cfg.Minutes != 0.1 {
		t.Errorf("expected minutes clamped to 0.1, got %f", cfg.Minutes)
	}
	if cfg.RampPerSec != 0 {
		t.Errorf("expected ramp clamped to 0, got %f", cfg.RampPerSec)
	}
	if cfg.Behavior.KillWeight != 0 {
		t.Errorf("expected kill_weight clamped to 0, got %f", cfg.Behavior.KillWeight)
	}
	if len(cfg.Behavior.Moves) != len(DefaultMoves) {
		t.Errorf("expected empty moves replaced with defaults, got %v", cfg.Behavior.Moves)
	}
	if cfg.Loot.GetEvery != 1 {
		t.Errorf("expected get_every clamped to 1, got %d", cfg.Loot.GetEvery)
	}
	if cfg.Timing.ThinkMinMs != 0 || cfg.Timing.ThinkMaxMs != 0 {
		t.Errorf("expected think bounds clamped to 0/0, got %d/%d", cfg.Timing.ThinkMinMs, cfg.Timing.ThinkMaxMs)
	}
	if cfg.Timing.ProgressEveryS != 1.0 {
		t.Errorf("expected progress clamped to 1.0, got %f", cfg.Timing.ProgressEveryS)
	}
	if cfg.Timeouts.ConnectS != 1.0 || cfg.Timeouts.IOS != 2.0 {
		t.Errorf("expected timeouts clamped to 1.0/2.0, got %f/%f", cfg.Timeouts.ConnectS, cfg.Timeouts.IOS)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "swarm.toml")

	cfg := DefaultSwarm()
	cfg.URL = "ws://game:8080/ws"
	cfg.Behavior.AvoidImmediateBacktrack = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.URL != cfg.URL {
		t.Errorf("expected url '%s', got '%s'", cfg.URL, loaded.URL)
	}
	if !loaded.Behavior.AvoidImmediateBacktrack {
		t.Error("expected avoid_immediate_backtrack true after round trip")
	}
}
