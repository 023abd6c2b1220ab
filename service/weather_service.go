package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weather-dash/api"
	"weather-dash/api/openweather"
	"weather-dash/models"

	"github.com/rs/zerolog/log"
)

const (
	MESSAGE_EMPTY_QUERY  = "Please enter a city name."
	MESSAGE_SUGGESTIONS  = "That looks like a country. Pick a city:"
	MESSAGE_DEMO_MODE    = "Demo mode: the weather API rejected the credential, showing generated data."
	MESSAGE_NOT_FOUND    = "City %q not found. Check the spelling and try again."
	MESSAGE_FETCH_FAILED = "Failed to fetch weather data. Please try again later."
)

// WeatherServiceConfig carries the tunables of the search flow.
type WeatherServiceConfig struct {
	// MockDelay is waited before generated data is delivered. Zero disables it.
	MockDelay time.Duration
	// Location decides calendar dates when aggregating the forecast. Nil means time.Local.
	Location *time.Location
}

// WeatherService runs one dashboard search: disambiguation, the two upstream calls,
// the demo fallback, aggregation and the recent-search bookkeeping.
type WeatherService struct {
	weatherAPI    openweather.WeatherAPI
	fallbackAPI   openweather.WeatherAPI
	disambiguator *CountryDisambiguator
	recent        *RecentSearchService
	cfg           WeatherServiceConfig
}

func NewWeatherService(
	weatherAPI openweather.WeatherAPI,
	fallbackAPI openweather.WeatherAPI,
	disambiguator *CountryDisambiguator,
	recent *RecentSearchService,
	cfg WeatherServiceConfig) *WeatherService {

	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &WeatherService{
		weatherAPI:    weatherAPI,
		fallbackAPI:   fallbackAPI,
		disambiguator: disambiguator,
		recent:        recent,
		cfg:           cfg,
	}
}

// Location is the zone used for daily aggregation.
func (ws *WeatherService) Location() *time.Location {
	return ws.cfg.Location
}

// Search resolves query into a new DashboardState.
//
// Search failures (unknown city, upstream errors) are reported in the state, not as an
// error. The returned error is reserved for a canceled context and for failures of the
// demo generator.
func (ws *WeatherService) Search(ctx context.Context, sessionID, query, units string) (*models.DashboardState, error) {
	query = strings.TrimSpace(query)
	if units == "" {
		units = models.UnitsMetric
	}
	state := &models.DashboardState{Query: query, Units: units}
	logger := log.With().Str("component", "weather_service").Str("query", query).Str("units", units).Logger()

	if query == "" {
		state.Status = models.StatusError
		state.Message = MESSAGE_EMPTY_QUERY
		ws.attachRecent(ctx, sessionID, state)
		return state, nil
	}

	if suggestions := ws.disambiguator.Disambiguate(query); suggestions != nil {
		logger.Debug().Strs("suggestions", suggestions).Msg("query names a country")
		state.Status = models.StatusSuggestions
		state.Message = MESSAGE_SUGGESTIONS
		state.Suggestions = suggestions
		ws.attachRecent(ctx, sessionID, state)
		return state, nil
	}

	current, forecast, err := ws.fetch(ctx, ws.weatherAPI, query, units)
	switch {
	case err == nil:
		state.Status = models.StatusReady

	case errors.Is(err, api.ErrUnauthorized):
		logger.Warn().Err(err).Dur("delay", ws.cfg.MockDelay).Msg("weather API rejected the credential, falling back to demo data")
		if err := ws.wait(ctx); err != nil {
			return nil, err
		}
		current, forecast, err = ws.fetch(ctx, ws.fallbackAPI, query, units)
		if err != nil {
			return nil, fmt.Errorf("failed to generate demo data for %q: %w", query, err)
		}
		state.Status = models.StatusDemo
		state.Message = MESSAGE_DEMO_MODE

	case ctx.Err() != nil:
		return nil, ctx.Err()

	case errors.Is(err, api.ErrNotFound):
		logger.Info().Err(err).Msg("city not found")
		state.Status = models.StatusError
		state.Message = fmt.Sprintf(MESSAGE_NOT_FOUND, query)
		ws.attachRecent(ctx, sessionID, state)
		return state, nil

	default:
		logger.Error().Err(err).Msg("weather fetch failed")
		state.Status = models.StatusError
		state.Message = MESSAGE_FETCH_FAILED
		ws.attachRecent(ctx, sessionID, state)
		return state, nil
	}

	state.Current = current
	state.Forecast = forecast.List
	state.Daily = AggregateDaily(forecast.List, ws.cfg.Location)

	recent, err := ws.recent.Add(ctx, sessionID, query)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("failed to record recent search")
		recent = []string{}
	}
	state.Recent = recent

	logger.Info().Str("status", state.Status).Int("days", len(state.Daily)).Msg("search complete")
	return state, nil
}

// fetch performs the two upstream calls in order. The forecast is only requested when
// the current conditions succeed, and a forecast failure discards the current conditions.
func (ws *WeatherService) fetch(ctx context.Context, client openweather.WeatherAPI, query, units string) (*models.CurrentWeather, *models.ForecastResponse, error) {
	current, err := client.GetCurrentWeather(ctx, query, units)
	if err != nil {
		return nil, nil, err
	}
	forecast, err := client.GetForecast(ctx, query, units)
	if err != nil {
		return nil, nil, err
	}
	return current, forecast, nil
}

func (ws *WeatherService) wait(ctx context.Context) error {
	if ws.cfg.MockDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(ws.cfg.MockDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (ws *WeatherService) attachRecent(ctx context.Context, sessionID string, state *models.DashboardState) {
	recent, err := ws.recent.List(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("component", "weather_service").Str("session", sessionID).Msg("failed to load recent searches")
		recent = []string{}
	}
	state.Recent = recent
}
