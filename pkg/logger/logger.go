// Package logger builds the zap loggers the rest of Ignite uses. Every
// package that logs takes a *zap.SugaredLogger through its Config rather
// than constructing one itself, so callers embedding Ignite can redirect
// or silence its output.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger annotated with the given service
// name, suitable for the default behavior of a long-running Ignite
// instance.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return log.Sugar().With("service", service)
}

// NewDevelopment builds a human-readable console logger for local use.
func NewDevelopment(service string) *zap.SugaredLogger {
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything, used as the default
// when a caller does not supply one.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
