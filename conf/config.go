// Package conf loads tuning for the grid, the tick clock and the
// terminal surface. Embedded defaults load first; a user file
// overrides only the keys it names.
package conf

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of a run.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Sim       SimConfig       `yaml:"sim"`
	UI        UIConfig        `yaml:"ui"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid extent.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig holds the engine tuning.
type SimConfig struct {
	BacklogUnit    int     `yaml:"backlog_unit"`     // ticks per history slot
	FlagRate       float64 `yaml:"flag_rate"`        // chance a touched neighbor joins the frontier
	ReplenishPct   int     `yaml:"replenish_pct"`    // share of cells refilled per tick
	TickIntervalMS int     `yaml:"tick_interval_ms"` // wall clock between ticks
	Seed           uint64  `yaml:"seed"`             // 0 seeds from the clock
}

// UIConfig holds the terminal layout.
type UIConfig struct {
	PaddingTop   int  `yaml:"padding_top"`
	PaddingLeft  int  `yaml:"padding_left"`
	PaddingRight int  `yaml:"padding_right"`
	Legend       bool `yaml:"legend"`
}

// AudioConfig holds the edit feedback switch.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TelemetryConfig holds stats aggregation settings.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // ticks per stats window
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	TickInterval time.Duration
}

// Load reads configuration from a YAML file, merging over the
// embedded defaults. An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// unmarshal into the same struct, overwriting only the keys present
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return fmt.Errorf("config: world %dx%d, both sides must be at least 1", c.World.Width, c.World.Height)
	}
	if c.Sim.BacklogUnit < 1 {
		return fmt.Errorf("config: backlog_unit %d, must be at least 1", c.Sim.BacklogUnit)
	}
	if c.Sim.FlagRate < 0 || c.Sim.FlagRate > 1 {
		return fmt.Errorf("config: flag_rate %v outside [0,1]", c.Sim.FlagRate)
	}
	if c.Sim.ReplenishPct < 0 || c.Sim.ReplenishPct > 100 {
		return fmt.Errorf("config: replenish_pct %d outside [0,100]", c.Sim.ReplenishPct)
	}
	if c.Sim.TickIntervalMS < 1 {
		return fmt.Errorf("config: tick_interval_ms %d, must be at least 1", c.Sim.TickIntervalMS)
	}
	if c.UI.PaddingTop < 0 || c.UI.PaddingLeft < 0 || c.UI.PaddingRight < 0 {
		return fmt.Errorf("config: negative ui padding")
	}
	if c.Telemetry.WindowTicks < 1 {
		return fmt.Errorf("config: window_ticks %d, must be at least 1", c.Telemetry.WindowTicks)
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.TickInterval = time.Duration(c.Sim.TickIntervalMS) * time.Millisecond
}

// WriteYAML writes the configuration to a YAML file, so a run's
// output directory carries the exact tuning that produced it.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
