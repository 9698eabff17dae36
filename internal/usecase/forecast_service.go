package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// RuleDetailedForecastHorizon names the rule limiting detailed forecasts.
const RuleDetailedForecastHorizon = "DetailedForecastHorizon"

// ForecastService answers forecast queries. It holds no per-request state and
// is safe for concurrent use.
type ForecastService struct {
	generator Generator
	now       Clock
}

// NewForecastService creates a service backed by generator. A nil clock uses time.Now.
func NewForecastService(generator Generator, now Clock) *ForecastService {
	if now == nil {
		now = time.Now
	}
	return &ForecastService{generator: generator, now: now}
}

// Forecasts validates req and returns req.Days forecasts.
// Validation failures are returned as *domain.ValidationError before any
// generation happens.
func (s *ForecastService) Forecasts(ctx context.Context, req domain.ForecastRequest) ([]domain.Forecast, error) {
	if err := ForecastRequestValidator().Validate(ctx, req).Err(); err != nil {
		return nil, err
	}
	if req.IncludeDetails && req.Days > domain.MaxDetailedDays {
		return nil, domain.NewRuleViolationError(RuleDetailedForecastHorizon,
			"Detailed forecasts are limited to "+strconv.Itoa(domain.MaxDetailedDays)+" days.")
	}
	return s.generate(ctx, req.Days, req)
}

// ForecastByID returns the forecast for the day offset id (1..MaxDays).
func (s *ForecastService) ForecastByID(ctx context.Context, id string) (domain.Forecast, error) {
	day, err := strconv.Atoi(id)
	if err != nil || day < domain.MinDays || day > domain.MaxDays {
		return domain.Forecast{}, domain.NewEntityNotFoundError("WeatherForecast", id)
	}

	forecasts, err := s.generate(ctx, day, domain.DefaultForecastRequest())
	if err != nil {
		return domain.Forecast{}, err
	}
	return forecasts[day-1], nil
}

// Outlook returns forecasts for days, rejecting counts outside the supported range.
func (s *ForecastService) Outlook(ctx context.Context, days int) ([]domain.Forecast, error) {
	if days < domain.MinDays || days > domain.MaxDays {
		return nil, domain.InvalidDayRange(days, domain.MinDays, domain.MaxDays)
	}
	return s.generate(ctx, days, domain.DefaultForecastRequest())
}

func (s *ForecastService) generate(ctx context.Context, days int, req domain.ForecastRequest) ([]domain.Forecast, error) {
	if s.generator == nil {
		return nil, errors.New("forecast generator is not configured")
	}

	forecasts, err := s.generator.Generate(ctx, s.now(), days, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, domain.ForecastUnavailable("the forecast provider did not respond").
			WithRequestedDays(days).
			WithCause(err)
	}
	if len(forecasts) != days {
		return nil, domain.ForecastUnavailable("the forecast provider returned an incomplete forecast").
			WithRequestedDays(days)
	}
	return forecasts, nil
}
