// Package logger configures the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the global logger. Production mode emits JSON, otherwise a
// colored console encoder is used.
func Init(level string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	log = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// L returns the global logger.
func L() *zap.Logger {
	return log
}

// Named returns a child of the global logger, or of l when it is non-nil.
func Named(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = log
	}
	return l.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}
