// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
)

// DebugLogPath is where --debug sends logs when no log file is configured
// and stderr is unavailable (the TUI owns the terminal).
const DebugLogPath = "dayview-debug.log"

// New builds a JSON logger at the configured level, writing to cfg.File or
// stderr. debug forces the debug level.
func New(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if debug {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	zcfg.Sampling = nil
	zcfg.DisableStacktrace = !debug

	out := "stderr"
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		out = cfg.File
	}
	zcfg.OutputPaths = []string{out}
	zcfg.ErrorOutputPaths = []string{out}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewForTUI is New for full-screen mode: stderr would draw over the view, so
// without a log file it discards everything unless debug is set, in which
// case it writes to DebugLogPath.
func NewForTUI(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	if cfg.File == "" {
		if !debug {
			return zap.NewNop(), nil
		}
		cfg.File = DebugLogPath
	}
	return New(cfg, debug)
}
