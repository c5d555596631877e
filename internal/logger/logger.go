package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the process-wide logger. Init must be called once from main before
// any other package logs.
var L *zap.Logger = zap.NewNop()

// Init builds the global logger. LOG_LEVEL understands zap level names
// (debug, info, warn, error); anything else means info.
func Init() *zap.Logger {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	L = l
	return l
}

// Sync flushes buffered entries; safe to defer from main.
func Sync() {
	_ = L.Sync()
}
