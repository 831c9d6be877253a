package log

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

var globalLogger atomic.Pointer[Logger]

//nolint:gochecknoinits // default logger until the config is loaded.
func init() {
	globalLogger.Store(New(Config{Level: "info"}))
}

// SetGlobalConfig replaces the global logger with one built from cfg.
func SetGlobalConfig(cfg Config) {
	SetGlobalLogger(New(cfg))
}

func SetGlobalLogger(l *Logger) {
	if l == nil {
		return
	}

	globalLogger.Store(l)
}

func GetGlobalLogger() *Logger {
	return globalLogger.Load()
}

func DebugEnabled(ctx context.Context) bool {
	return GetGlobalLogger().Enabled(zapcore.DebugLevel)
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.DebugLevel, msg, fields)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.InfoLevel, msg, fields)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.WarnLevel, msg, fields)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	GetGlobalLogger().log(ctx, zapcore.ErrorLevel, msg, fields)
}
