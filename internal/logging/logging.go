// Package logging builds the zap loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/daytimeline/internal/config"
)

// Mode selects where log output goes.
type Mode int

const (
	// ModeCLI writes warnings and errors to stderr in console format.
	ModeCLI Mode = iota
	// ModeTUI discards everything; stderr belongs to the terminal UI.
	ModeTUI
)

// New returns a logger for mode. With debug set, every level is written as
// JSON lines to cfg.Path instead, whatever the mode.
// The returned function flushes and must be called before exit.
func New(cfg config.LogConfig, mode Mode, debug bool) (*zap.Logger, func(), error) {
	if debug {
		return newDebug(cfg.Path)
	}
	if mode == ModeTUI {
		return zap.NewNop(), func() {}, nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Development = false
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	zc.EncoderConfig.TimeKey = ""
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func newDebug(path string) (*zap.Logger, func(), error) {
	if path == "" {
		path = "daytimeline-debug.log"
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zc.Sampling = nil
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger.Debug("debug start",
		zap.String("log_file", path),
		zap.String("time", time.Now().Format(time.RFC3339)))

	return logger, func() {
		logger.Debug("debug end", zap.String("time", time.Now().Format(time.RFC3339)))
		_ = logger.Sync()
	}, nil
}
