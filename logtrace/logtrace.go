// Package logtrace is the structured logger used across the generator. The
// CLI points it at stderr; stdout carries only the manifest.
package logtrace

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const sectionKey ctxKey = iota

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Setup installs a logger at level ("debug", "info", "warn", "error") writing
// format "json" or "console" to w.
func Setup(level, format string, w io.Writer) error {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}
	var enc zapcore.Encoder
	switch format {
	case "", "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console":
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	SetLogger(zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)))
	return nil
}

// SetLogger replaces the process logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	_ = l.Sync()
}

// CtxWithSection tags ctx with the config section being generated.
func CtxWithSection(ctx context.Context, section string) context.Context {
	return context.WithValue(ctx, sectionKey, section)
}

func Debug(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.DebugLevel, msg, fields)
}
func Info(ctx context.Context, msg string, fields Fields) { write(ctx, zapcore.InfoLevel, msg, fields) }
func Warn(ctx context.Context, msg string, fields Fields) { write(ctx, zapcore.WarnLevel, msg, fields) }
func Error(ctx context.Context, msg string, fields Fields) {
	write(ctx, zapcore.ErrorLevel, msg, fields)
}

func write(ctx context.Context, level zapcore.Level, msg string, fields Fields) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	ce := l.Check(level, msg)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, len(fields)+1)
	if ctx != nil {
		if s, ok := ctx.Value(sectionKey).(string); ok && s != "" {
			zf = append(zf, zap.String(FieldSection, s))
		}
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	ce.Write(zf...)
}
