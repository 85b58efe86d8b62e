package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"MockECommerce/pkg/correlation"

	"github.com/rs/zerolog"
)

// Logger is the printf-style zerolog logger used for the HTTP access log
// and background workers.
type Logger struct {
	logger *zerolog.Logger
}

func New(level string) *Logger {
	var l zerolog.Level

	switch strings.ToLower(level) {
	case "error":
		l = zerolog.ErrorLevel
	case "warn":
		l = zerolog.WarnLevel
	case "info":
		l = zerolog.InfoLevel
	case "debug":
		l = zerolog.DebugLevel
	default:
		l = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(l)
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "mock-ecommerce").Logger()

	return &Logger{logger: &logger}
}

// NewWithLogger wraps an existing zerolog logger, mostly for tests.
func NewWithLogger(l zerolog.Logger) *Logger {
	return &Logger{logger: &l}
}

func (l *Logger) Debug(message any, args ...any) {
	l.msg(l.logger.Debug(), message, args...)
}

func (l *Logger) Info(message string, args ...any) {
	l.msg(l.logger.Info(), message, args...)
}

func (l *Logger) Warn(message string, args ...any) {
	l.msg(l.logger.Warn(), message, args...)
}

func (l *Logger) Error(message any, args ...any) {
	l.msg(l.logger.Error(), message, args...)
}

func (l *Logger) Fatal(message any, args ...any) {
	l.msg(l.logger.Fatal(), message, args...)
}

func (l *Logger) DebugCtx(ctx context.Context, message string, args ...any) {
	l.msg(withCorrelation(ctx, l.logger.Debug()), message, args...)
}

func (l *Logger) InfoCtx(ctx context.Context, message string, args ...any) {
	l.msg(withCorrelation(ctx, l.logger.Info()), message, args...)
}

func (l *Logger) ErrorCtx(ctx context.Context, message string, args ...any) {
	l.msg(withCorrelation(ctx, l.logger.Error()), message, args...)
}

func withCorrelation(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id := correlation.FromContext(ctx); id != "" {
		return e.Str(CorrelationIDKey, id)
	}
	return e
}

func (l *Logger) msg(e *zerolog.Event, message any, args ...any) {
	switch m := message.(type) {
	case error:
		e.Msg(m.Error())
	case string:
		if len(args) == 0 {
			e.Msg(m)
			return
		}
		e.Msg(fmt.Sprintf(m, args...))
	default:
		e.Msg(fmt.Sprintf("%v", m))
	}
}
