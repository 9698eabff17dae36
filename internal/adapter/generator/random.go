// Package generator provides forecast data sources.
package generator

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// Summaries are the descriptions a random forecast can carry.
var Summaries = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

const (
	minTemperatureC = -20
	maxTemperatureC = 55
)

// Random produces synthetic forecasts. The zero value is ready to use and safe
// for concurrent use.
type Random struct {
	// IntN returns a value in [0, n). Nil uses math/rand.
	IntN func(n int) int
}

// Generate returns days forecasts starting the day after start.
func (g Random) Generate(ctx context.Context, start time.Time, days int, req domain.ForecastRequest) ([]domain.Forecast, error) {
	intN := g.IntN
	if intN == nil {
		intN = rand.Intn
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	out := make([]domain.Forecast, 0, max(days, 0))
	for i := 1; i <= days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := domain.Forecast{
			ID:           uuid.NewString(),
			Date:         day.AddDate(0, 0, i),
			TemperatureC: minTemperatureC + intN(maxTemperatureC-minTemperatureC),
			Summary:      Summaries[intN(len(Summaries))],
		}
		if req.IncludeDetails {
			f.Details = &domain.ForecastDetails{
				Location:         location(req),
				HumidityPercent:  intN(101),
				WindSpeedKph:     intN(120),
				PrecipitationPct: intN(101),
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func location(req domain.ForecastRequest) string {
	if req.Location == nil {
		return ""
	}
	return strings.TrimSpace(*req.Location)
}
