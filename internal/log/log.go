// Package log wraps log/slog with the category attribute every claudible
// log line carries. Output goes to stderr: stdout belongs to the monitored
// process.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Category string

const (
	CatAudio   Category = "audio"
	CatMonitor Category = "monitor"
	CatSynth   Category = "synth"
	CatSession Category = "session"
	CatConfig  Category = "config"
)

var (
	level   = new(slog.LevelVar)
	current atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelWarn)
	install(os.Stderr)
}

func install(w io.Writer) {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	current.Store(l)
	slog.SetDefault(l)
}

// Setup installs a text handler on w at the given level and makes it the
// slog default.
func Setup(lvl slog.Level, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level.Set(lvl)
	install(w)
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func SetLevel(lvl slog.Level) { level.Set(lvl) }

// For returns a logger that tags every record with cat.
func For(cat Category) *slog.Logger {
	return current.Load().With("category", string(cat))
}

func Debug(cat Category, msg string, args ...any) { emit(slog.LevelDebug, cat, msg, args) }
func Info(cat Category, msg string, args ...any)  { emit(slog.LevelInfo, cat, msg, args) }
func Warn(cat Category, msg string, args ...any)  { emit(slog.LevelWarn, cat, msg, args) }
func Error(cat Category, msg string, args ...any) { emit(slog.LevelError, cat, msg, args) }

// ErrorErr logs err under the "error" key.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	emit(slog.LevelError, cat, msg, append(args, "error", err))
}

func emit(lvl slog.Level, cat Category, msg string, args []any) {
	l := current.Load()
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.Log(ctx, lvl, msg, append([]any{"category", string(cat)}, args...)...)
}
