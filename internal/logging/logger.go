// Package logging defines the structured, context-aware logger used across
// the console and two backends for it: log/slog and zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs:
//
//	log.Info(ctx, "list loaded", "view", "stores", "count", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs a failure the operator may need to act on.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger for the named backend writing to w at the given level
// ("debug", "info", "warn", "error").
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", BackendSlog:
		lvl, err := parseSlogLevel(level)
		if err != nil {
			return nil, err
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil
	case BackendZap:
		zl, err := newZapFromWriter(level, w)
		if err != nil {
			return nil, err
		}
		return zl, nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Redacted replaces the value of any secret key passed to a Logger.
const Redacted = "[redacted]"

var secretKeys = map[string]struct{}{
	"token":         {},
	"password":      {},
	"authorization": {},
}

// Redact returns args with the values of secret keys (token, password,
// authorization; case-insensitive) replaced by Redacted. args is not modified.
func Redact(args []any) []any {
	var out []any
	for i := 0; i < len(args); i++ {
		if a, ok := args[i].(slog.Attr); ok {
			if isSecret(a.Key) {
				if out == nil {
					out = append([]any(nil), args...)
				}
				out[i] = slog.String(a.Key, Redacted)
			}
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 == len(args) {
			continue
		}
		i++
		if !isSecret(key) {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = Redacted
	}
	if out == nil {
		return args
	}
	return out
}

func isSecret(key string) bool {
	_, ok := secretKeys[strings.ToLower(key)]
	return ok
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseSlogLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
