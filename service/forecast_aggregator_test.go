package services

import (
	"math/rand"
	"testing"
	"time"

	"weather-dash/api/openweather"
	"weather-dash/models"
	"weather-dash/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(ts time.Time, temp float64, icon, desc string, pop float64) models.ForecastSample {
	return models.ForecastSample{
		Dt:      ts.Unix(),
		Main:    models.MainReadings{Temp: temp},
		Weather: []models.WeatherCondition{{Icon: icon, Description: desc}},
		Pop:     pop,
	}
}

func TestAggregateDaily_GroupsByDate(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{
		sample(day1, 12, "04n", "broken clouds", 0.1),
		sample(day1.Add(3*time.Hour), 9, "10n", "light rain", 0.8),
		// 2024-03-11 from here on
		sample(day1.Add(6*time.Hour), 7, "01n", "clear sky", 0.0),
		sample(day1.Add(15*time.Hour), 14, "02d", "few clouds", 0.3),
		sample(day1.Add(18*time.Hour), 16, "10d", "light rain", 0.6),
		sample(day1.Add(21*time.Hour), 15, "04n", "overcast clouds", 0.2),
	}

	got := AggregateDaily(samples, time.UTC)

	require.Len(t, got, 2)
	assert.Equal(t, models.DailySummary{
		Date: "2024-03-10", Dt: day1.Unix(), TempMin: 9, TempMax: 12,
		Icon: "04n", Description: "broken clouds", Pop: 0.8,
	}, got[0])
	assert.Equal(t, models.DailySummary{
		Date: "2024-03-11", Dt: day1.Add(6 * time.Hour).Unix(), TempMin: 7, TempMax: 16,
		Icon: "10d", Description: "light rain", Pop: 0.2,
	}, got[1])
}

func TestAggregateDaily_UsesLocation(t *testing.T) {
	ts := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{
		sample(ts, 10, "01n", "clear sky", 0),
		sample(ts.Add(3*time.Hour), 11, "01n", "clear sky", 0),
	}

	assert.Len(t, AggregateDaily(samples, time.UTC), 2)

	tokyo := time.FixedZone("JST", 9*60*60)
	got := AggregateDaily(samples, tokyo)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-11", got[0].Date)
}

func TestAggregateDaily_CapsAtFive(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	var samples []models.ForecastSample
	for i := 0; i < 7*8; i++ {
		samples = append(samples, sample(start.Add(time.Duration(i)*3*time.Hour), float64(i%8), "01d", "clear sky", 0))
	}

	got := AggregateDaily(samples, time.UTC)

	require.Len(t, got, MAX_DAILY_SUMMARIES)
	assert.Equal(t, "2024-03-10", got[0].Date)
	assert.Equal(t, "2024-03-14", got[4].Date)
}

func TestAggregateDaily_Empty(t *testing.T) {
	assert.Empty(t, AggregateDaily(nil, time.UTC))
	// a sample without weather entries still aggregates
	got := AggregateDaily([]models.ForecastSample{{Dt: 0, Main: models.MainReadings{Temp: 3}}}, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].TempMin)
}

func TestAggregateDaily_GeneratedForecast(t *testing.T) {
	now := time.Date(2024, 3, 10, 13, 30, 0, 0, time.UTC)
	mock := openweather.NewOpenWeatherApiClientMockWithSource(func() time.Time { return now }, rand.NewSource(3))

	for _, city := range []string{"Tokyo", "Lima", "Reykjavik"} {
		forecast := mock.GenerateForecast(city)
		got := AggregateDaily(forecast.List, time.UTC)

		assert.LessOrEqual(t, len(got), MAX_DAILY_SUMMARIES)
		assert.NotEmpty(t, got)
		for _, d := range got {
			assert.LessOrEqual(t, d.TempMin, d.TempMax, "%s %s", city, d.Date)
		}
	}
}

func TestAggregateDaily_LondonForecast(t *testing.T) {
	forecast, err := util.ReadForecastResponseFromJSON("../testdata/forecast_london.json")
	require.NoError(t, err)

	daily := AggregateDaily(forecast.List, time.UTC)

	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2024-03-10", "2024-03-11", "2024-03-12"},
		[]string{daily[0].Date, daily[1].Date, daily[2].Date})

	assert.Equal(t, 8.1, daily[0].TempMin)
	assert.Equal(t, 8.1, daily[0].TempMax)
	assert.Equal(t, "04n", daily[0].Icon)

	// the last daytime icon of the day wins over the night samples after it
	assert.Equal(t, 6.0, daily[1].TempMin)
	assert.Equal(t, 12.4, daily[1].TempMax)
	assert.Equal(t, "03d", daily[1].Icon)
	assert.Equal(t, "scattered clouds", daily[1].Description)
	assert.Equal(t, 0.02, daily[1].Pop)
	assert.Equal(t, forecast.List[1].Dt, daily[1].Dt)

	assert.Equal(t, "01n", daily[2].Icon)
}
