package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New creates a console slog.Logger with the provided level and format.
func New(level, format string) *slog.Logger {
	return slog.New(NewHandler(os.Stdout, level, format))
}

// NewHandler picks a handler for format: "json", "text", "tint", or "auto"
// (tint on a terminal, text otherwise).
func NewHandler(w io.Writer, level, format string) slog.Handler {
	lvl := levelFromString(level)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	case "tint":
		return tint.NewHandler(w, &tint.Options{Level: lvl, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)})
	default:
		if isTerminal(w) {
			return tint.NewHandler(w, &tint.Options{Level: lvl, TimeFormat: time.Kitchen})
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewCLI logs warnings and above to w with colors when w is a terminal.
func NewCLI(w io.Writer, level string) *slog.Logger {
	if strings.TrimSpace(level) == "" || levelFromString(level) < slog.LevelWarn {
		level = "warn"
	}
	return slog.New(NewHandler(w, level, "tint"))
}
