// Package logging provides concrete logger adapters.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

// Config selects level, output format and destination.
type Config struct {
	Level       string
	Format      string // json or console
	Output      io.Writer
	ServiceName string
}

// zerologLogger adapts zerolog to the usecase.Logger port.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewLogger creates a zerolog-backed logger from cfg.
func NewLogger(cfg Config) usecase.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(output)
	}

	ctx := zl.Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

// FromZerolog wraps an existing zerolog logger.
func FromZerolog(zl zerolog.Logger) usecase.Logger {
	return &zerologLogger{zl: zl}
}

// Info logs informational events.
func (l *zerologLogger) Info(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withKeyValues(l.zl.Info(), keysAndValues...).Msg(msg)
}

// Warn logs recoverable problems.
func (l *zerologLogger) Warn(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withKeyValues(l.zl.Warn(), keysAndValues...).Msg(msg)
}

// Error logs error events.
func (l *zerologLogger) Error(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	withKeyValues(l.zl.Error(), keysAndValues...).Msg(msg)
}

// withKeyValues attaches key/value pairs to evt. An odd trailing key gets the
// value "<missing>"; an error under the "error" key becomes the event error.
func withKeyValues(evt *zerolog.Event, keysAndValues ...any) *zerolog.Event {
	if evt == nil {
		return nil
	}
	for i := 0; i < len(keysAndValues); i += 2 {
		key := sanitizeKey(fmt.Sprint(keysAndValues[i]), i/2)
		value := any("<missing>")
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}

		switch v := value.(type) {
		case nil:
			evt = evt.Interface(key, nil)
		case error:
			if key == zerolog.ErrorFieldName {
				evt = evt.Err(v)
			} else {
				evt = evt.AnErr(key, v)
			}
		case string:
			evt = evt.Str(key, v)
		case int:
			evt = evt.Int(key, v)
		case bool:
			evt = evt.Bool(key, v)
		case time.Duration:
			evt = evt.Dur(key, v)
		case fmt.Stringer:
			evt = evt.Stringer(key, v)
		default:
			evt = evt.Interface(key, v)
		}
	}
	return evt
}

// sanitizeKey normalizes logging keys and applies deterministic fallbacks.
func sanitizeKey(key string, index int) string {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", "_"))
	if normalized == "" {
		return fmt.Sprintf("field_%d", index)
	}
	return normalized
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
