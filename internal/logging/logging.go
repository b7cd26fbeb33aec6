package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger. Diagnostics go to stderr so
	// that stdout stays free for rendered plans and exported variables.
	Logger *slog.Logger

	// Verbose is true once Setup has enabled debug output.
	Verbose bool

	level = new(slog.LevelVar)
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Setup replaces the global logger. A nil writer means stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if jsonOutput {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	Logger = slog.New(h)
}

func Debug(msg string, args ...any) { Logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger.Warn(msg, args...) }
func Error(msg string, args ...any) { Logger.Error(msg, args...) }

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// ForProcess returns a logger tagged with a child process name.
func ForProcess(name string) *slog.Logger {
	return Logger.With("process", name)
}
