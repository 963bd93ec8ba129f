package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type slogLogger struct {
	l *slog.Logger
}

// New builds a colored slog logger writing to w. Debug records are only
// emitted when verbose is set.
func New(w io.Writer, verbose bool) Logger {
	if w == nil {
		return NopLogger{}
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
	return slogLogger{l: slog.New(h)}
}

func (s slogLogger) log(level slog.Level, msg string, obj any) {
	s.l.LogAttrs(context.Background(), level, msg, attrs(obj)...)
}

func (s slogLogger) Info(msg string, obj any)  { s.log(slog.LevelInfo, msg, obj) }
func (s slogLogger) Warn(msg string, obj any)  { s.log(slog.LevelWarn, msg, obj) }
func (s slogLogger) Debug(msg string, obj any) { s.log(slog.LevelDebug, msg, obj) }
func (s slogLogger) Error(msg string, obj any) { s.log(slog.LevelError, msg, obj) }

// attrs flattens obj into slog attributes. Maps expand key by key in sorted
// order, errors go under "err", anything else under "obj".
func attrs(obj any) []slog.Attr {
	switch v := obj.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]slog.Attr, 0, len(keys))
		for _, k := range keys {
			if err, ok := v[k].(error); ok {
				out = append(out, tint.Err(err))
				continue
			}
			out = append(out, slog.Any(k, v[k]))
		}
		return out
	case error:
		return []slog.Attr{tint.Err(v)}
	default:
		return []slog.Attr{slog.Any("obj", v)}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a compatibility helper for format-style debug logging.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
