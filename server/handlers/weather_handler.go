package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"weather-dash/models"
	"weather-dash/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	QUERY_ARG = "q"
	UNITS_ARG = "units"
)

// Searcher runs a dashboard search for a session.
type Searcher interface {
	Search(ctx context.Context, sessionID, query, units string) (*models.DashboardState, error)
	Location() *time.Location
}

// RecentLister reads a session's recent searches.
type RecentLister interface {
	List(ctx context.Context, sessionID string) ([]string, error)
}

type WeatherHandler struct {
	searcher     Searcher
	recent       RecentLister
	cookieName   string
	defaultUnits string
}

func NewWeatherHandler(searcher Searcher, recent RecentLister, cookieName, defaultUnits string) *WeatherHandler {
	return &WeatherHandler{
		searcher:     searcher,
		recent:       recent,
		cookieName:   cookieName,
		defaultUnits: defaultUnits,
	}
}

// Ping handles GET /ping
func (h *WeatherHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// Search handles GET /v1/search?q={query}&units={metric|imperial}
func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	units, ok := h.parseUnits(w, r)
	if !ok {
		return
	}
	sessionID := h.session(w, r)

	state, err := h.searcher.Search(r.Context(), sessionID, r.URL.Query().Get(QUERY_ARG), units)
	if err != nil {
		h.searchFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Recent handles GET /v1/recent
func (h *WeatherHandler) Recent(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)
	recent, err := h.recent.List(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("component", "weather_handler").Str("session", sessionID).Msg("failed to load recent searches")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"recent": recent})
}

// Chart handles GET /v1/chart?q={city}&units={metric|imperial} and renders the forecast as HTML.
// Searches that end without weather data are answered with the state as JSON.
func (h *WeatherHandler) Chart(w http.ResponseWriter, r *http.Request) {
	units, ok := h.parseUnits(w, r)
	if !ok {
		return
	}
	sessionID := h.session(w, r)

	state, err := h.searcher.Search(r.Context(), sessionID, r.URL.Query().Get(QUERY_ARG), units)
	if err != nil {
		h.searchFailed(w, r, err)
		return
	}
	if !state.HasWeather() {
		writeJSON(w, http.StatusUnprocessableEntity, state)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderForecastChart(w, state.Current.Name, state.Units, state.Forecast, state.Daily, h.searcher.Location()); err != nil {
		log.Error().Err(err).Str("component", "weather_handler").Str("query", state.Query).Msg("failed to render chart")
	}
}

func (h *WeatherHandler) parseUnits(w http.ResponseWriter, r *http.Request) (string, bool) {
	units := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(UNITS_ARG)))
	if units == "" {
		return h.defaultUnits, true
	}
	if !models.ValidUnits(units) {
		http.Error(w, "Invalid argument "+UNITS_ARG, http.StatusBadRequest)
		return "", false
	}
	return units, true
}

// session returns the caller's session id, issuing a new cookie when none is present.
func (h *WeatherHandler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *WeatherHandler) searchFailed(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		log.Debug().Err(err).Str("component", "weather_handler").Msg("request canceled")
		return
	}
	log.Error().Err(err).Str("component", "weather_handler").Msg("search failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("component", "weather_handler").Msg("error encoding response")
	}
}
