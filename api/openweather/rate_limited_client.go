package openweather

import (
	"context"
	"fmt"

	"weather-dash/models"

	"golang.org/x/time/rate"
)

// RateLimitedApiClient wraps a WeatherAPI with a token bucket shared by both endpoints.
type RateLimitedApiClient struct {
	client  WeatherAPI
	limiter *rate.Limiter
}

// NewRateLimitedApiClient allows rps requests per second (fractional values allowed)
// with bursts of up to burst requests.
func NewRateLimitedApiClient(client WeatherAPI, rps float64, burst int) *RateLimitedApiClient {
	return &RateLimitedApiClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedApiClient) SetCredentials(apiKey string) {
	r.client.SetCredentials(apiKey)
}

func (r *RateLimitedApiClient) GetCurrentWeather(ctx context.Context, city, units string) (*models.CurrentWeather, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.GetCurrentWeather(ctx, city, units)
}

func (r *RateLimitedApiClient) GetForecast(ctx context.Context, city, units string) (*models.ForecastResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.GetForecast(ctx, city, units)
}
