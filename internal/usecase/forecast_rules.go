package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jamalishaq/forecast_serve/internal/domain"
	"github.com/jamalishaq/forecast_serve/internal/validation"
)

// Field error codes produced by the forecast request rules.
const (
	CodeDaysTooLow      = "WF_DAYS_TOO_LOW"
	CodeDaysTooHigh     = "WF_DAYS_TOO_HIGH"
	CodeLocationTooLong = "WF_LOCATION_TOO_LONG"
	CodeLocationInvalid = "WF_LOCATION_INVALID"
)

const (
	fieldDays           = "days"
	fieldLocation       = "location"
	locationInvalidText = "The location may only contain letters, digits, spaces, hyphens, apostrophes and commas."
)

var forecastRequestValidator = validation.New[domain.ForecastRequest](
	validation.RuleFunc[domain.ForecastRequest](checkDays),
	validation.RuleFunc[domain.ForecastRequest](checkLocationLength),
	validation.RuleFunc[domain.ForecastRequest](checkLocationCharacters),
)

// ValidateForecastRequest returns every rule failure for req, days first.
// An empty slice with a nil error means req is valid. When ctx is done before
// the pass completes, the context error is returned and the failures are nil.
func ValidateForecastRequest(ctx context.Context, req domain.ForecastRequest) ([]domain.FieldError, error) {
	res := forecastRequestValidator.Validate(ctx, req)
	if err := res.ContextErr(); err != nil {
		return nil, err
	}
	return res.FieldErrors(), nil
}

// ForecastRequestValidator exposes the rule set for callers that want the full Result.
func ForecastRequestValidator() *validation.Validator[domain.ForecastRequest] {
	return forecastRequestValidator
}

func checkDays(req domain.ForecastRequest) []domain.FieldError {
	switch {
	case req.Days < domain.MinDays:
		return []domain.FieldError{{
			Field:   fieldDays,
			Message: fmt.Sprintf("The number of days must be at least %d.", domain.MinDays),
			Code:    CodeDaysTooLow,
		}}
	case req.Days > domain.MaxDays:
		return []domain.FieldError{{
			Field:   fieldDays,
			Message: fmt.Sprintf("The number of days cannot exceed %d.", domain.MaxDays),
			Code:    CodeDaysTooHigh,
		}}
	}
	return nil
}

func checkLocationLength(req domain.ForecastRequest) []domain.FieldError {
	loc, ok := presentLocation(req)
	if !ok || utf8.RuneCountInString(loc) <= domain.MaxLocationLength {
		return nil
	}
	return []domain.FieldError{{
		Field:   fieldLocation,
		Message: fmt.Sprintf("The location cannot exceed %d characters.", domain.MaxLocationLength),
		Code:    CodeLocationTooLong,
	}}
}

func checkLocationCharacters(req domain.ForecastRequest) []domain.FieldError {
	loc, ok := presentLocation(req)
	if !ok || strings.IndexFunc(loc, isForbiddenLocationRune) < 0 {
		return nil
	}
	return []domain.FieldError{{
		Field:   fieldLocation,
		Message: locationInvalidText,
		Code:    CodeLocationInvalid,
	}}
}

// presentLocation returns the location unless it is absent or blank.
func presentLocation(req domain.ForecastRequest) (string, bool) {
	if req.Location == nil || strings.TrimSpace(*req.Location) == "" {
		return "", false
	}
	return *req.Location, true
}

func isForbiddenLocationRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == ' ', r == '-', r == '\'', r == ',':
		return false
	}
	return true
}
