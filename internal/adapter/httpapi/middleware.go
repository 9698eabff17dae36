package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

// Request identifier headers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// CorrelationID returns the request's correlation id, or "" outside a request.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(correlationIDKey).(string); ok {
		return v
	}
	return ""
}

// WithCorrelationID stores id in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationMiddleware assigns every request a correlation id: the caller's
// X-Request-ID or X-Correlation-ID when present, a new uuid otherwise. The id
// is echoed in the X-Request-ID response header.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, correlationID := requestIdentifiers(r)
		id := requestID
		if id == "" {
			id = correlationID
		}
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
	})
}

// LoggingMiddleware logs method, path, status code, and request duration.
func LoggingMiddleware(logger usecase.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startedAt := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			duration := time.Since(startedAt)

			statusCode := ww.Status()
			if statusCode == 0 {
				statusCode = http.StatusOK
			}

			requestID, correlationID := requestIdentifiers(r)
			logInfo(logger, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", statusCode,
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", requestID,
				"correlation_id", correlationID,
				"trace_fallback_id", CorrelationID(r.Context()),
			)
		})
	}
}

// PanicError carries a recovered panic value to the error translator.
type PanicError struct {
	Value any
	Stack []byte
}

// Error describes the panic, including the stack, for server-side logs.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// RecoveryMiddleware recovers panics from downstream handlers and answers with
// the translated 500 problem response.
func RecoveryMiddleware(responder *Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}
				responder.Fail(w, r, &PanicError{Value: recovered, Stack: debug.Stack()})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// requestIdentifiers extracts request/correlation IDs from headers.
func requestIdentifiers(r *http.Request) (string, string) {
	if r == nil {
		return "", ""
	}
	return strings.TrimSpace(r.Header.Get(HeaderRequestID)), strings.TrimSpace(r.Header.Get(HeaderCorrelationID))
}

// logInfo logs an info event when a logger is provided.
func logInfo(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, keysAndValues...)
}

// logWarn logs a warning when a logger is provided.
func logWarn(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, keysAndValues...)
}
