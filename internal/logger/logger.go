package logger

import (
	"log/slog"
	"os"
)

// Init initializes the logger with the specified level and format.
// Logs go to stderr so that stdout stays reserved for reports and
// encoder pass-through output.
func Init(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		if format != "text" && format != "" {
			slog.Warn("Unsupported log format, defaulting to text", "format", format)
		}
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
