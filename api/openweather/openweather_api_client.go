package openweather

import (
	"context"
	"fmt"
	"net/url"

	"weather-dash/api"
	"weather-dash/models"
)

const (
	CURRENT_WEATHER_ENDPOINT = "/weather"
	FORECAST_ENDPOINT        = "/forecast"
)

// OpenWeatherApiClient embeds the common HTTPClient
type OpenWeatherApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewOpenWeatherApiClient creates a new instance of OpenWeatherApiClient
func NewOpenWeatherApiClient(httpClient *api.HTTPClient) *OpenWeatherApiClient {
	return &OpenWeatherApiClient{
		HTTPClient: httpClient,
	}
}

func (c *OpenWeatherApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *OpenWeatherApiClient) params(city, units string) url.Values {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", units)
	params.Set("appid", c.apiKey)
	return params
}

// GetCurrentWeather retrieves current conditions for a city.
func (c *OpenWeatherApiClient) GetCurrentWeather(ctx context.Context, city, units string) (*models.CurrentWeather, error) {
	var response models.CurrentWeather
	if err := c.Request(ctx, "GET", CURRENT_WEATHER_ENDPOINT, c.params(city, units), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get current weather for %q: %w", city, err)
	}
	return &response, nil
}

// GetForecast retrieves the 5 day / 3 hour forecast for a city.
func (c *OpenWeatherApiClient) GetForecast(ctx context.Context, city, units string) (*models.ForecastResponse, error) {
	var response models.ForecastResponse
	if err := c.Request(ctx, "GET", FORECAST_ENDPOINT, c.params(city, units), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get forecast for %q: %w", city, err)
	}
	return &response, nil
}
