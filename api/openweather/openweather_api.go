package openweather

import (
	"context"

	"weather-dash/models"
)

// WeatherAPI defines the interface for interacting with an OpenWeatherMap compatible API
type WeatherAPI interface {
	GetCurrentWeather(ctx context.Context, city, units string) (*models.CurrentWeather, error)
	GetForecast(ctx context.Context, city, units string) (*models.ForecastResponse, error)
	SetCredentials(apiKey string)
}
