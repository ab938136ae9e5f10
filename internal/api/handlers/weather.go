// Package handlers contains the HTTP handlers for the v1 weather API.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"skyherald/internal/core"
	"skyherald/internal/forecasts"
	"skyherald/internal/types"
)

// queryDateFormat is the wire format for date query parameters.
const queryDateFormat = "2006-01-02"

// RegionSummary is the list item returned by GET /v1/regions.
type RegionSummary struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Seasons []types.Season `json:"seasons"`
}

// WeekResponse is the payload returned by the weekly outlook endpoint.
type WeekResponse struct {
	Region string                 `json:"region"`
	Days   []*types.WeatherResult `json:"days"`
}

// WeatherHandler serves the weather endpoints.
type WeatherHandler struct {
	weather forecasts.WeatherService
	regions forecasts.RegionProvider
	logger  *slog.Logger
	clock   clockwork.Clock
}

// NewWeatherHandler creates a WeatherHandler with the provided dependencies.
func NewWeatherHandler(weather forecasts.WeatherService, regions forecasts.RegionProvider, logger *slog.Logger, clock clockwork.Clock) *WeatherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WeatherHandler{
		weather: weather,
		regions: regions,
		logger:  logger,
		clock:   clock,
	}
}

// RegisterRoutes mounts the weather endpoints on the given router.
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/regions", h.ListRegions)
	r.Get("/weather/{region}", h.GetDaily)
	r.Get("/weather/{region}/week", h.GetWeek)
}

// ListRegions returns the registered regions with their configured seasons.
func (h *WeatherHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	all := h.regions.All()
	summaries := make([]RegionSummary, 0, len(all))
	for _, region := range all {
		seasons := make([]types.Season, 0, len(region.Seasons))
		for _, season := range types.AllSeasons {
			if _, ok := region.Seasons[season]; ok {
				seasons = append(seasons, season)
			}
		}
		summaries = append(summaries, RegionSummary{
			ID:      region.ID,
			Name:    region.DisplayName(),
			Seasons: seasons,
		})
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: summaries})
}

// GetDaily returns the weather for one region on one date. The date query
// parameter defaults to the current UTC day.
func (h *WeatherHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "region")

	date, err := h.parseDateParam(r, "date")
	if err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.weather.Daily(r.Context(), regionID, date)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// GetWeek returns a seven-day outlook for one region. The start query
// parameter defaults to the current UTC day.
func (h *WeatherHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "region")

	start, err := h.parseDateParam(r, "start")
	if err != nil {
		core.Error(w, r, err)
		return
	}

	days, err := h.weather.Week(r.Context(), regionID, start)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: WeekResponse{
		Region: regionID,
		Days:   days,
	}})
}

// parseDateParam reads an ISO date query parameter, defaulting to today (UTC)
// when absent.
func (h *WeatherHandler) parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		now := h.clock.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.ParseInLocation(queryDateFormat, raw, time.UTC)
	if err != nil {
		return time.Time{}, types.NewAppError(
			types.ErrCodeValidationInvalidDate,
			fmt.Sprintf("invalid %s parameter %q, expected YYYY-MM-DD", name, raw),
			err,
		)
	}
	return date, nil
}
