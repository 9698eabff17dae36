package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamalishaq/forecast_serve/internal/adapter/problem"
)

// logEntry is one captured log call.
type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

// stubLogger captures middleware log messages for assertions.
type stubLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *stubLogger) add(level, msg string, kv ...any) {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

// Info stores info-level log entries for test verification.
func (l *stubLogger) Info(msg string, kv ...any) { l.add("info", msg, kv...) }

// Warn stores warn-level log entries for test verification.
func (l *stubLogger) Warn(msg string, kv ...any) { l.add("warn", msg, kv...) }

// Error stores error-level log entries for test verification.
func (l *stubLogger) Error(msg string, kv ...any) { l.add("error", msg, kv...) }

func (l *stubLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

// TestCorrelationMiddleware_UsesRequestID verifies the caller's id is kept and echoed.
func TestCorrelationMiddleware_UsesRequestID(t *testing.T) {
	var seen string
	handler := CorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, " req-123 ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
}

// TestCorrelationMiddleware_FallsBackToCorrelationID verifies X-Correlation-ID is used second.
func TestCorrelationMiddleware_FallsBackToCorrelationID(t *testing.T) {
	var seen string
	handler := CorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "corr-456")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "corr-456", seen)
}

// TestCorrelationMiddleware_GeneratesID verifies a uuid is minted when no header is sent.
func TestCorrelationMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := CorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

// TestLoggingMiddleware_LogsRequestMetadata verifies method, path, status and identifiers are logged.
func TestLoggingMiddleware_LogsRequestMetadata(t *testing.T) {
	logger := &stubLogger{}
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderCorrelationID, "corr-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	infos := logger.byLevel("info")
	require.Len(t, infos, 1)
	assert.Equal(t, "http request", infos[0].msg)
	assert.Equal(t, http.MethodGet, infos[0].fields["method"])
	assert.Equal(t, "/health", infos[0].fields["path"])
	assert.Equal(t, http.StatusTeapot, infos[0].fields["status"])
	assert.Equal(t, "req-1", infos[0].fields["request_id"])
	assert.Equal(t, "corr-1", infos[0].fields["correlation_id"])
	assert.Contains(t, infos[0].fields, "duration")
}

// TestLoggingMiddleware_DefaultsStatusToOK verifies a handler that never writes logs 200.
func TestLoggingMiddleware_DefaultsStatusToOK(t *testing.T) {
	logger := &stubLogger{}
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	infos := logger.byLevel("info")
	require.Len(t, infos, 1)
	assert.Equal(t, http.StatusOK, infos[0].fields["status"])
}

// TestLoggingMiddleware_NilLogger verifies a missing logger is tolerated.
func TestLoggingMiddleware_NilLogger(t *testing.T) {
	handler := LoggingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// TestRecoveryMiddleware_RecoversPanic verifies panics become a generic 500 problem logged once.
func TestRecoveryMiddleware_RecoversPanic(t *testing.T) {
	logger := &stubLogger{}
	responder := NewResponder(problem.NewTranslator(logger, nil), logger)
	handler := CorrelationMiddleware(RecoveryMiddleware(responder)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom: secret connection string")
	})))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(HeaderRequestID, "req-789")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, problem.ContentType, rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "secret")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, problem.GenericDetail, body["detail"])
	assert.Equal(t, "/panic", body["instance"])
	assert.Equal(t, "req-789", body["traceId"])

	errs := logger.byLevel("error")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].fields["error_message"], "secret connection string")
}

// TestRecoveryMiddleware_RepanicsAbortHandler verifies http.ErrAbortHandler is not swallowed.
func TestRecoveryMiddleware_RepanicsAbortHandler(t *testing.T) {
	handler := RecoveryMiddleware(NewResponder(nil, nil))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
