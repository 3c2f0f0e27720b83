package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drillsim.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
map_width = 14.0
drill_speed_tiers = [1.0, 2.0, 4.0]
seed = 42

[loop]
tick_rate = "50ms"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.MapWidth != 14 || cfg.Game.Seed != 42 {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.Game.DrillSpeedTiers[2] != 4 {
		t.Fatalf("tiers = %v", cfg.Game.DrillSpeedTiers)
	}
	if cfg.Loop.TickRate != 50*time.Millisecond {
		t.Fatalf("tick rate = %v", cfg.Loop.TickRate)
	}
	// Untouched keys keep their defaults.
	if cfg.Game.StripHeight != 0.5 || cfg.Logging.Format != "console" {
		t.Fatalf("defaults lost: %+v %+v", cfg.Game, cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, "[game]\nmap_width = -1.0\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "map_width") {
		t.Fatalf("want map_width error, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("want read error")
	}
	if _, err := Load(writeConfig(t, "[game\n")); err == nil {
		t.Fatal("want parse error")
	}
}

func TestLoadRejectsBadLoop(t *testing.T) {
	for _, body := range []string{
		"[loop]\ntick_rate = \"0s\"\n",
		"[loop]\ntick_rate = \"-5ms\"\n",
		"[loop]\nmax_runs = -1\n",
	} {
		_, err := Load(writeConfig(t, body))
		if err == nil || !strings.Contains(err.Error(), "loop.") {
			t.Fatalf("%q: want loop error, got %v", body, err)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load("../../config/drillsim.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Defaults()
	if cfg.Game != def.Game {
		t.Fatalf("shipped game config drifted from defaults:\n got %+v\nwant %+v", cfg.Game, def.Game)
	}
	if cfg.Loop != def.Loop || cfg.Database.ConnMaxLifetime != def.Database.ConnMaxLifetime {
		t.Fatalf("loop %+v database %+v", cfg.Loop, cfg.Database)
	}
}
