package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// ForecastService is the use case surface the HTTP handlers drive.
type ForecastService interface {
	Forecasts(ctx context.Context, req domain.ForecastRequest) ([]domain.Forecast, error)
	ForecastByID(ctx context.Context, id string) (domain.Forecast, error)
	Outlook(ctx context.Context, days int) ([]domain.Forecast, error)
}

type forecastResponse struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	TemperatureC int              `json:"temperatureC"`
	TemperatureF int              `json:"temperatureF"`
	Summary      string           `json:"summary"`
	Details      *detailsResponse `json:"details,omitempty"`
}

type detailsResponse struct {
	Location         string `json:"location,omitempty"`
	HumidityPercent  int    `json:"humidityPercent"`
	WindSpeedKph     int    `json:"windSpeedKph"`
	PrecipitationPct int    `json:"precipitationPercent"`
}

// ForecastHandler serves the weather forecast endpoints.
type ForecastHandler struct {
	service   ForecastService
	responder *Responder
}

// NewForecastHandler creates forecast handlers over service.
func NewForecastHandler(service ForecastService, responder *Responder) *ForecastHandler {
	return &ForecastHandler{service: service, responder: responder}
}

// List handles GET /weatherforecast.
func (h *ForecastHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := parseForecastRequest(r)
	if err != nil {
		h.responder.Fail(w, r, err)
		return
	}

	forecasts, err := h.service.Forecasts(r.Context(), req)
	if err != nil {
		h.responder.Fail(w, r, err)
		return
	}
	h.responder.JSON(w, r, http.StatusOK, toForecastResponses(forecasts))
}

// Get handles GET /weatherforecast/{id}.
func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.service.ForecastByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Fail(w, r, err)
		return
	}
	h.responder.JSON(w, r, http.StatusOK, toForecastResponse(forecast))
}

// Outlook handles GET /weatherforecast/outlook/{days}.
func (h *ForecastHandler) Outlook(w http.ResponseWriter, r *http.Request) {
	days, err := parseInt(paramDays, chi.URLParam(r, "days"))
	if err != nil {
		h.responder.Fail(w, r, err)
		return
	}

	forecasts, err := h.service.Outlook(r.Context(), days)
	if err != nil {
		h.responder.Fail(w, r, err)
		return
	}
	h.responder.JSON(w, r, http.StatusOK, toForecastResponses(forecasts))
}

func toForecastResponses(forecasts []domain.Forecast) []forecastResponse {
	out := make([]forecastResponse, 0, len(forecasts))
	for _, f := range forecasts {
		out = append(out, toForecastResponse(f))
	}
	return out
}

func toForecastResponse(f domain.Forecast) forecastResponse {
	resp := forecastResponse{
		ID:           f.ID,
		Date:         f.Date.Format(time.DateOnly),
		TemperatureC: f.TemperatureC,
		TemperatureF: f.TemperatureF(),
		Summary:      f.Summary,
	}
	if f.Details != nil {
		resp.Details = &detailsResponse{
			Location:         f.Details.Location,
			HumidityPercent:  f.Details.HumidityPercent,
			WindSpeedKph:     f.Details.WindSpeedKph,
			PrecipitationPct: f.Details.PrecipitationPct,
		}
	}
	return resp
}
