// Package telemetry collects per-tick aggregates of the grid and
// folds them into windowed statistics for the log and for CSV output.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/seep/sim"
)

// Sample is one tick's aggregate view of the grid.
type Sample struct {
	Tick         uint32 `csv:"tick"`
	TotalSum     int64  `csv:"total_sum"`
	MaxSum       int32  `csv:"max_sum"`
	TotalPending int64  `csv:"total_pending"`
	Frontier     int    `csv:"frontier"`
	Sources      int    `csv:"sources"`
	Bedrock      int    `csv:"bedrock"`
}

// Collect scans the grid after a tick
func Collect(g *sim.Grid) Sample {
	s := Sample{Tick: uint32(g.Now()), Frontier: g.Active()}
	g.Each(func(x, y int, c *sim.Cell) {
		s.TotalSum += int64(c.Sum())
		if int32(c.Sum()) > s.MaxSum {
			s.MaxSum = int32(c.Sum())
		}
		s.TotalPending += int64(c.Pending())
		switch c.Kind() {
		case sim.KindSource:
			s.Sources++
		case sim.KindBedrock:
			s.Bedrock++
		}
	})
	return s
}

// WindowStats holds aggregated statistics for a span of ticks.
type WindowStats struct {
	WindowEnd    uint32  `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	SumMean      float64 `csv:"sum_mean"`
	SumStd       float64 `csv:"sum_std"`
	SumMax       float64 `csv:"sum_max"`
	FrontierMean float64 `csv:"frontier_mean"`
	FrontierMax  int     `csv:"frontier_max"`
	Sources      int     `csv:"sources"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEnd)),
		slog.Int("ticks", s.Ticks),
		slog.Float64("sum_mean", s.SumMean),
		slog.Float64("sum_std", s.SumStd),
		slog.Float64("sum_max", s.SumMax),
		slog.Float64("frontier_mean", s.FrontierMean),
		slog.Int("frontier_max", s.FrontierMax),
		slog.Int("sources", s.Sources),
	)
}

// Window folds samples into stats every size ticks.
type Window struct {
	size    int
	samples []Sample
}

// NewWindow builds a window of the given tick span
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{size: size, samples: make([]Sample, 0, size)}
}

// Add absorbs a sample. When the window fills it returns the folded
// stats and starts the next window.
func (w *Window) Add(s Sample) (WindowStats, bool) {
	w.samples = append(w.samples, s)
	if len(w.samples) < w.size {
		return WindowStats{}, false
	}
	return w.fold(), true
}

// Flush folds a partial window, for the end of a run
func (w *Window) Flush() (WindowStats, bool) {
	if len(w.samples) == 0 {
		return WindowStats{}, false
	}
	return w.fold(), true
}

func (w *Window) fold() WindowStats {
	n := len(w.samples)
	sums := make([]float64, n)
	frontiers := make([]float64, n)
	st := WindowStats{
		WindowEnd: w.samples[n-1].Tick,
		Ticks:     n,
		Sources:   w.samples[n-1].Sources,
	}
	for i, s := range w.samples {
		sums[i] = float64(s.TotalSum)
		frontiers[i] = float64(s.Frontier)
		if s.Frontier > st.FrontierMax {
			st.FrontierMax = s.Frontier
		}
	}
	st.SumMean = stat.Mean(sums, nil)
	st.SumMax = floats.Max(sums)
	st.FrontierMean = stat.Mean(frontiers, nil)
	// the sample standard deviation needs two points
	if n > 1 {
		st.SumStd = stat.StdDev(sums, nil)
	}
	w.samples = w.samples[:0]
	return st
}
