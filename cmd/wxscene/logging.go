package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/wxscene/config"
)

const (
	logFileName = "wxscene.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging routes logs to a rotated file when debug is on and discards them otherwise
// The terminal owns stdout/stderr while the scene runs, so nothing is written there
// Returns the open log file, nil when logging is disabled
func setupLogging(cfg *config.Config) (*slog.Logger, *os.File) {
	if !cfg.Log.Debug {
		log.SetOutput(io.Discard)
		return cfg.NewLogger(io.Discard), nil
	}

	dir := cfg.Log.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return cfg.NewLogger(io.Discard), nil
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("wxscene-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return cfg.NewLogger(io.Discard), nil
	}

	log.SetOutput(f)
	logger := cfg.NewLogger(f)
	logger.Info("logging started", "path", logPath)
	return logger, f
}
