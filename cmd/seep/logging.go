package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "seep.log"
	maxLogSize  = 10 << 20
)

// setupLogging routes the default logger for tui mode. The screen
// owns the terminal, so log lines either go to a file under logs/
// or nowhere at all. Returns the open file for the caller to close,
// nil when logging is off.
func setupLogging(debug bool) *os.File {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !debug {
		slog.SetDefault(discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		slog.SetDefault(discard)
		return nil
	}
	path := filepath.Join(logDir, logFileName)
	rotateIfLarge(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		slog.SetDefault(discard)
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return f
}

// rotateIfLarge moves an oversized log aside under a timestamped name
func rotateIfLarge(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	stamp := time.Now().Format("20060102-150405")
	os.Rename(path, filepath.Join(logDir, "seep-"+stamp+".log"))
}
