// Package logger configures structured logging: slog for application code
// and a zerolog access logger for gin.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level string // debug, info, warn, error
	// Format is "json" or "console".
	Format string
	// ContextAttrs are added to every record after the correlation id.
	ContextAttrs []ContextAttr
}

// Setup installs the default slog logger. Records pick up correlation_id
// and opts.ContextAttrs from the context they are logged with.
func Setup(opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(opts.Level),
		AddSource: true,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "console") {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	attrs := append([]ContextAttr{CorrelationAttr}, opts.ContextAttrs...)
	l := slog.New(NewContextHandler(handler, attrs...))
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
