package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/seep/chime"
	"github.com/lixenwraith/seep/conf"
	"github.com/lixenwraith/seep/editor"
	"github.com/lixenwraith/seep/sim"
	"github.com/lixenwraith/seep/telemetry"
	"github.com/lixenwraith/seep/tui"
)

// frameInterval paces rendering only; the tick clock runs on its own
// deadline
const frameInterval = 33 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to config yaml (empty = embedded defaults)")
	headless := flag.Bool("headless", false, "run without the terminal ui")
	logStats := flag.Bool("log-stats", false, "log window stats")
	seedFlag := flag.Uint64("seed", 0, "rng seed override (0 = config value, then clock)")
	maxTicks := flag.Int("max-ticks", 0, "headless: stop after n ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "directory for csv output and the effective config")
	debugFlag := flag.Bool("debug", false, "write a debug log file in tui mode")
	flag.Parse()

	cfg, err := conf.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seep: %v\n", err)
		os.Exit(1)
	}
	seed := cfg.Sim.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}

	out, err := telemetry.NewOutput(*outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seep: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "seep: %v\n", err)
		os.Exit(1)
	}

	g := buildGrid(cfg, seed)

	if *headless {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		if err := runHeadless(cfg, g, out, *logStats, *maxTicks); err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	// the screen restores itself through runTUI's defer while the
	// stack unwinds; this prints what killed the run once it has
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nseep crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := runTUI(cfg, g, out, *logStats); err != nil {
		fmt.Fprintf(os.Stderr, "seep: %v\n", err)
		os.Exit(1)
	}
}

// buildGrid prepares the starting world: an empty grid over a
// bedrock floor, cursor at the center
func buildGrid(cfg *conf.Config, seed uint64) *sim.Grid {
	g := sim.NewWithOptions(cfg.World.Width, cfg.World.Height, sim.Options{
		BacklogUnit:  sim.Tick(cfg.Sim.BacklogUnit),
		FlagRate:     cfg.Sim.FlagRate,
		ReplenishPct: cfg.Sim.ReplenishPct,
		Seed:         seed,
	})
	for x := 0; x < cfg.World.Width; x++ {
		_ = g.SetKind(x, 0, sim.KindBedrock) // row 0 of a validated extent
	}
	g.SetCursor(cfg.World.Width/2, cfg.World.Height/2)
	return g
}

// ticker drives the engine and feeds telemetry. Both run loops share
// it so a tick means the same thing paced, forced or headless.
type ticker struct {
	grid     *sim.Grid
	out      *telemetry.Output
	window   *telemetry.Window
	logStats bool
	now      sim.Tick
}

func (t *ticker) step() error {
	t.grid.Advance(t.now)
	t.now++

	s := telemetry.Collect(t.grid)
	if err := t.out.WriteSample(s); err != nil {
		return err
	}
	stats, ready := t.window.Add(s)
	if !ready {
		return nil
	}
	if t.logStats {
		slog.Info("window", "stats", stats)
	}
	return t.out.WriteWindow(stats)
}

func runHeadless(cfg *conf.Config, g *sim.Grid, out *telemetry.Output, logStats bool, maxTicks int) error {
	tk := &ticker{grid: g, out: out, window: telemetry.NewWindow(cfg.Telemetry.WindowTicks), logStats: logStats}

	slog.Info("starting headless run",
		"world", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height),
		"max_ticks", maxTicks,
	)
	for maxTicks <= 0 || int(tk.now) < maxTicks {
		if err := tk.step(); err != nil {
			return err
		}
	}
	if stats, ready := tk.window.Flush(); ready {
		if logStats {
			slog.Info("window", "stats", stats)
		}
		if err := out.WriteWindow(stats); err != nil {
			return err
		}
	}
	slog.Info("max ticks reached", "tick", g.Now())
	return nil
}

func runTUI(cfg *conf.Config, g *sim.Grid, out *telemetry.Output, logStats bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	var msg string
	player, err := chime.NewPlayer(cfg.Audio.Enabled)
	if err != nil {
		// non-fatal, the run continues without sound
		slog.Warn("audio init failed", "error", err)
		msg = "audio unavailable"
	}
	defer player.Close()

	view := tui.NewView(cfg.UI.PaddingTop, cfg.UI.PaddingLeft, cfg.UI.PaddingRight, cfg.UI.Legend)
	handler := editor.NewHandler(g)
	tk := &ticker{grid: g, out: out, window: telemetry.NewWindow(cfg.Telemetry.WindowTicks), logStats: logStats}

	events := make(chan tcell.Event, 256)
	go func() {
		// the poller gets its own recovery so a crash here still
		// restores the terminal
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\nevent poller crashed: %v\n%s\n", r, debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	paused := false
	deadline := time.Now().Add(cfg.Derived.TickInterval)

	step := func() {
		if err := tk.step(); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}
	}

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch handler.HandleKey(ev) {
				case editor.ActionQuit:
					return nil
				case editor.ActionTick:
					step()
					deadline = time.Now().Add(cfg.Derived.TickInterval)
				case editor.ActionPause:
					paused = !paused
					if !paused {
						deadline = time.Now().Add(cfg.Derived.TickInterval)
					}
				case editor.ActionEdited:
					player.Place()
				case editor.ActionKindled:
					player.Kindle()
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frames.C:
			if !paused && !time.Now().Before(deadline) {
				step()
				deadline = deadline.Add(cfg.Derived.TickInterval)
				if time.Now().After(deadline) {
					// fell far behind, a suspend or a stall; restart
					// the cadence instead of bursting to catch up
					deadline = time.Now().Add(cfg.Derived.TickInterval)
				}
			}
			view.Draw(screen, g, tui.Status{
				Tick:    g.Now(),
				Active:  g.Active(),
				Paused:  paused,
				Message: msg,
			})
			screen.Show()
		}
	}
}
