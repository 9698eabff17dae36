// Package usecase contains application business rules and ports (interfaces).
// Use cases depend on these interfaces, not concrete implementations.
package usecase

import (
	"context"
	"time"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// Logger is a port for logging. Adapters implement this interface.
// keysAndValues alternate between a string key and its value; an error value
// under the "error" key is recorded as the event's cause.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Generator is a port for the forecast data source.
type Generator interface {
	// Generate returns one forecast per day starting the day after start.
	Generate(ctx context.Context, start time.Time, days int, req domain.ForecastRequest) ([]domain.Forecast, error)
}

// Clock is a port for the current time.
type Clock func() time.Time
