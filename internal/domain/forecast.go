package domain

import "time"

// Forecast request limits.
const (
	MinDays           = 1
	MaxDays           = 30
	DefaultDays       = 5
	MaxLocationLength = 100
	// MaxDetailedDays bounds how far ahead detailed forecasts are produced.
	MaxDetailedDays = 14
)

// ForecastRequest is the caller's forecast query.
type ForecastRequest struct {
	Days           int
	Location       *string
	IncludeDetails bool
}

// DefaultForecastRequest returns the request used when the caller supplies nothing.
func DefaultForecastRequest() ForecastRequest {
	return ForecastRequest{Days: DefaultDays}
}

// Forecast is one synthetic day of weather.
type Forecast struct {
	ID           string
	Date         time.Time
	TemperatureC int
	Summary      string
	Details      *ForecastDetails
}

// ForecastDetails is returned only when the caller asks for details.
type ForecastDetails struct {
	Location         string
	HumidityPercent  int
	WindSpeedKph     int
	PrecipitationPct int
}

// TemperatureF converts TemperatureC with the historical 0.5556 divisor rather
// than 5/9; published fixtures depend on it.
func (f Forecast) TemperatureF() int {
	return 32 + int(float64(f.TemperatureC)/0.5556)
}
