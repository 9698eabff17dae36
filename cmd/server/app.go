package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jamalishaq/forecast_serve/internal/adapter/generator"
	"github.com/jamalishaq/forecast_serve/internal/adapter/httpapi"
	"github.com/jamalishaq/forecast_serve/internal/adapter/logging"
	"github.com/jamalishaq/forecast_serve/internal/adapter/problem"
	"github.com/jamalishaq/forecast_serve/internal/config"
	"github.com/jamalishaq/forecast_serve/internal/tracing"
	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

const serverSpanName = "forecast-api"

// app is the wired service: logger, handler chain and optional tracer.
type app struct {
	logger         usecase.Logger
	handler        http.Handler
	tracerProvider *sdktrace.TracerProvider
}

// newApp wires every layer from cfg. Logs are written to out.
func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      out,
		ServiceName: cfg.Log.ServiceName,
	})

	loc, err := cfg.Forecast.Location()
	if err != nil {
		return nil, fmt.Errorf("forecast timezone: %w", err)
	}
	now := func() time.Time { return time.Now().In(loc) }
	service := usecase.NewForecastService(generator.Random{}, now)

	a := &app{logger: logger}
	reader := tracing.None
	if cfg.Tracing.Enabled {
		a.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
		reader = tracing.NewOTelReader()
	}

	a.handler = httpapi.NewRouter(httpapi.RouterConfig{
		Logger:         logger,
		Translator:     problem.NewTranslator(logger, reader),
		Service:        service,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	if a.tracerProvider != nil {
		a.handler = otelhttp.NewHandler(a.handler, serverSpanName,
			otelhttp.WithTracerProvider(a.tracerProvider),
			otelhttp.WithPropagators(propagation.TraceContext{}),
		)
	}
	return a, nil
}

// close flushes and stops the tracer provider, if any.
func (a *app) close(ctx context.Context) error {
	if a.tracerProvider == nil {
		return nil
	}
	return a.tracerProvider.Shutdown(ctx)
}
