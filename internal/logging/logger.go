// Package logging provides config-driven categorized file logging for deskcalc.
// Logs are written to <config dir>/logs/ with separate files per category.
// Logging is controlled by debug_mode in the config file - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"deskcalc/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryEngine Category = "engine" // Calculator state machine
	CategoryKeymap Category = "keymap" // Key translation and feedback
	CategoryUI     Category = "ui"     // Terminal UI, clipboard, theme
	CategoryConfig Category = "config" // Config file watching
)

var (
	loggers   = make(map[Category]*zap.Logger)
	files     = make(map[Category]*os.File)
	loggersMu sync.RWMutex

	logsDir  string
	cfg      config.LoggingConfig
	level    zapcore.Level
	configMu sync.RWMutex
)

// Initialize sets up the logging directory under dir and applies the
// logging config. Should be called once at startup.
func Initialize(dir string, c config.LoggingConfig) error {
	if dir == "" {
		return fmt.Errorf("log directory required")
	}

	CloseAll()

	configMu.Lock()
	cfg = c
	logsDir = filepath.Join(dir, "logs")
	level = parseLevel(c.Level)
	configMu.Unlock()

	// Only create logs directory if debug mode is enabled
	if !c.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("dir", logsDir),
		zap.String("level", level.String()),
		zap.String("format", c.Format),
	)
	if len(c.Categories) == 0 {
		boot.Info("all categories enabled (no category filter)")
	}

	return nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	configMu.RLock()
	dir, lvl, format := logsDir, level, cfg.Format
	configMu.RUnlock()
	if dir == "" {
		return zap.NewNop()
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return zap.NewNop()
	}

	core := zapcore.NewCore(newEncoder(format), zapcore.AddSync(file), lvl)
	l := zap.New(core, zap.AddCaller()).Named(string(category))

	loggers[category] = l
	files[category] = file
	return l
}

func newEncoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(enc)
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for cat, l := range loggers {
		_ = l.Sync()
		if f := files[cat]; f != nil {
			_ = f.Close()
		}
	}
	loggers = make(map[Category]*zap.Logger)
	files = make(map[Category]*os.File)
}

// UI logs to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Sugar().Infof(format, args...)
}
