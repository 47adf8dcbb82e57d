// Package logging builds the process logger. Logs go to a JSON file because
// the terminal belongs to the interactive session.
package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Level string
	File  string
	// Stderr tees warnings and errors to stderr, for one-shot commands.
	Stderr bool
}

// ParseLevel maps a configured level name to a zap level. "off" reports false.
func ParseLevel(s string) (zapcore.Level, bool, error) {
	switch strings.ToLower(s) {
	case "off":
		return zapcore.InvalidLevel, false, nil
	case "":
		return zapcore.InfoLevel, true, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InvalidLevel, false, fmt.Errorf("log level: %w", err)
	}
	return lvl, true, nil
}

// New returns a logger tagged with a fresh session id. The returned close
// function syncs and closes the log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	lvl, enabled, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var cores []zapcore.Core
	closer := func() error { return nil }

	if enabled && opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), lvl))
		closer = func() error {
			_ = f.Sync()
			return f.Close()
		}
	}

	if opts.Stderr {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.TimeKey = ""
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.WarnLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), closer, nil
	}

	logger := zap.New(zapcore.NewTee(cores...)).With(zap.String("session", uuid.NewString()))
	return logger, closer, nil
}

type loggerKey struct{}

// ContextWithLogger returns a context carrying l.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger carried by ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
