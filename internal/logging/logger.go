// Package logging builds the zap logger shared by the CLI and the pipeline.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv overrides the level chosen from the verbose flag.
const LevelEnv = "SWAGGER2TS_LOG_LEVEL"

// New returns a console logger writing to w, or stderr when w is nil.
// Verbose selects debug level; LevelEnv wins over both.
func New(verbose bool, w io.Writer) *zap.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if env := os.Getenv(LevelEnv); env != "" {
		level = ParseLevel(env, level)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	encoder := zapcore.NewConsoleEncoder(cfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel maps a level name onto a zap level, keeping fallback for
// unknown values.
func ParseLevel(name string, fallback zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return fallback
	}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
