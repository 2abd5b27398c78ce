package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/lixenwraith/seep/conf"
)

// Output writes run artifacts to a directory: per-tick samples,
// window stats and the effective config. A nil Output is valid and
// discards everything, so callers never branch on whether output was
// requested.
type Output struct {
	dir          string
	tickFile     *os.File
	windowFile   *os.File
	tickHeader   bool
	windowHeader bool
}

// NewOutput creates the directory and its CSV files. An empty dir
// disables output and returns nil.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	o := &Output{dir: dir}

	f, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	o.tickFile = f

	f, err = os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		o.tickFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	o.windowFile = f

	return o, nil
}

// WriteConfig saves the effective configuration next to the data
func (o *Output) WriteConfig(cfg *conf.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteSample appends one tick record to ticks.csv
func (o *Output) WriteSample(s Sample) error {
	if o == nil {
		return nil
	}
	records := []Sample{s}
	if !o.tickHeader {
		if err := gocsv.Marshal(records, o.tickFile); err != nil {
			return fmt.Errorf("writing tick sample: %w", err)
		}
		o.tickHeader = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.tickFile); err != nil {
		return fmt.Errorf("writing tick sample: %w", err)
	}
	return nil
}

// WriteWindow appends one stats record to windows.csv
func (o *Output) WriteWindow(s WindowStats) error {
	if o == nil {
		return nil
	}
	records := []WindowStats{s}
	if !o.windowHeader {
		if err := gocsv.Marshal(records, o.windowFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		o.windowHeader = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.windowFile); err != nil {
		return fmt.Errorf("writing window stats: %w", err)
	}
	return nil
}

// Dir returns the output directory path
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes the CSV files
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	var firstErr error
	if o.tickFile != nil {
		if err := o.tickFile.Close(); err != nil {
			firstErr = err
		}
	}
	if o.windowFile != nil {
		if err := o.windowFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
