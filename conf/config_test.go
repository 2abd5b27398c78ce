package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.World.Width != 80 || cfg.World.Height != 40 {
		t.Fatalf("default world = %dx%d, want 80x40", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Sim.BacklogUnit != 8 || cfg.Sim.ReplenishPct != 20 {
		t.Fatalf("default sim tuning: unit=%d pct=%d", cfg.Sim.BacklogUnit, cfg.Sim.ReplenishPct)
	}
	if cfg.Sim.FlagRate != 0.8 {
		t.Fatalf("default flag rate = %v", cfg.Sim.FlagRate)
	}
	if cfg.UI.PaddingTop != 5 || cfg.UI.PaddingLeft != 8 || cfg.UI.PaddingRight != 5 {
		t.Fatalf("default padding = %d/%d/%d", cfg.UI.PaddingTop, cfg.UI.PaddingLeft, cfg.UI.PaddingRight)
	}
	if cfg.Derived.TickInterval != time.Second {
		t.Fatalf("derived tick interval = %v, want 1s", cfg.Derived.TickInterval)
	}
}

func TestLoadFileOverridesOnlyNamedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := "world:\n  width: 10\nsim:\n  seed: 42\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.World.Width != 10 {
		t.Fatalf("width = %d, want override 10", cfg.World.Width)
	}
	if cfg.World.Height != 40 {
		t.Fatalf("height = %d, want default 40 to survive", cfg.World.Height)
	}
	if cfg.Sim.Seed != 42 {
		t.Fatalf("seed = %d, want 42", cfg.Sim.Seed)
	}
	if cfg.Sim.FlagRate != 0.8 {
		t.Fatalf("flag rate = %v, want default 0.8 to survive", cfg.Sim.FlagRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing file did not error")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero width", "world:\n  width: 0\n"},
		{"flag rate above one", "sim:\n  flag_rate: 1.5\n"},
		{"negative pct", "sim:\n  replenish_pct: -3\n"},
		{"pct above hundred", "sim:\n  replenish_pct: 120\n"},
		{"zero unit", "sim:\n  backlog_unit: 0\n"},
		{"zero interval", "sim:\n  tick_interval_ms: 0\n"},
		{"negative padding", "ui:\n  padding_left: -1\n"},
		{"zero window", "telemetry:\n  window_ticks: 0\n"},
		{"not yaml", "world: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
				t.Fatalf("write temp config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("bad config accepted: %s", tc.body)
			}
		})
	}
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Sim.Seed = 99

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Sim.Seed != 99 || back.World.Width != cfg.World.Width {
		t.Fatalf("round trip lost values: seed=%d width=%d", back.Sim.Seed, back.World.Width)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "replenish_pct") {
		t.Fatalf("written yaml missing expected keys:\n%s", data)
	}
}
