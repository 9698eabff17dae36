package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jamalishaq/forecast_serve/internal/adapter/problem"
	"github.com/jamalishaq/forecast_serve/internal/domain"
	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

// RouterConfig holds the dependencies of the HTTP surface.
type RouterConfig struct {
	Logger         usecase.Logger
	Translator     *problem.Translator
	Service        ForecastService
	RequestTimeout time.Duration
}

// NewRouter builds the chi router. Middleware order is correlation, logging,
// recovery, then the optional request timeout.
func NewRouter(cfg RouterConfig) http.Handler {
	responder := NewResponder(cfg.Translator, cfg.Logger)
	forecasts := NewForecastHandler(cfg.Service, responder)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(CorrelationMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(RecoveryMiddleware(responder))
	if cfg.RequestTimeout > 0 {
		// A request still running at the deadline gets chi's bare 504: the
		// handler's problem write is abandoned once the context is done, so no
		// problem+json body or traceId is sent for timeouts.
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	notFound := func(w http.ResponseWriter, r *http.Request) {
		responder.Fail(w, r, domain.NewNotFoundError())
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		responder.Text(w, http.StatusOK, "ok")
	})

	r.Route("/weatherforecast", func(r chi.Router) {
		r.Get("/", forecasts.List)
		r.Get("/outlook/{days}", forecasts.Outlook)
		r.Get("/{id}", forecasts.Get)
	})

	return r
}
