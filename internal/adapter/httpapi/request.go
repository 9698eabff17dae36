package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// Query parameter names accepted by the forecast endpoint.
const (
	paramDays           = "days"
	paramLocation       = "location"
	paramIncludeDetails = "includeDetails"
)

// parseForecastRequest binds the forecast query string onto a request.
// Absent parameters keep their defaults; values that cannot be parsed become
// a field-level validation error for that parameter.
func parseForecastRequest(r *http.Request) (domain.ForecastRequest, error) {
	req := domain.DefaultForecastRequest()
	query := r.URL.Query()

	if raw, ok := lookupQuery(query, paramDays); ok {
		days, err := parseInt(paramDays, raw)
		if err != nil {
			return req, err
		}
		req.Days = days
	}

	if raw, ok := lookupQuery(query, paramLocation); ok {
		location := raw
		req.Location = &location
	}

	if raw, ok := lookupQuery(query, paramIncludeDetails); ok {
		if strings.TrimSpace(raw) != "" {
			include, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return req, invalidValue(paramIncludeDetails, raw)
			}
			req.IncludeDetails = include
		}
	}

	return req, nil
}

// parseInt parses a route or query integer named field.
func parseInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidValue(field, raw)
	}
	return n, nil
}

func invalidValue(field, raw string) error {
	return domain.NewFieldValidationError(field, fmt.Sprintf("The value '%s' is not valid for %s.", raw, field))
}

// lookupQuery finds a parameter by case-insensitive name. An exact match wins;
// otherwise the lexically smallest matching key is used. The first value wins.
func lookupQuery(query url.Values, name string) (string, bool) {
	if values, ok := query[name]; ok && len(values) > 0 {
		return values[0], true
	}
	keys := make([]string, 0, len(query))
	for key, values := range query {
		if strings.EqualFold(key, name) && len(values) > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	slices.Sort(keys)
	return query[keys[0]][0], true
}
