package openweather

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
	"unicode/utf16"

	"weather-dash/models"
)

// FORECAST_SAMPLES is the length of a 5 day / 3 hour forecast feed.
const FORECAST_SAMPLES = 40

const forecastStep = 3 * time.Hour

// mockConditions is indexed by hash%4 for current conditions and by the
// temperature band for forecast samples.
var mockConditions = []models.WeatherCondition{
	{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"},
	{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"},
	{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"},
	{ID: 701, Main: "Mist", Description: "mist", Icon: "50d"},
}

var mockCountryCodes = []string{"US", "GB", "FR", "DE", "JP", "CN", "IN", "BR"}

// OpenWeatherApiClientMock synthesizes weather from the city name instead of calling the API.
//
// Every field is a function of CityHash(city) except the current feels-like
// temperature and the forecast precipitation probabilities, which carry random jitter,
// and the timestamps, which are relative to the generation time.
// The data only has to look varied and stable per city. It is not a forecast.
type OpenWeatherApiClientMock struct {
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOpenWeatherApiClientMock creates a generator using the wall clock and a time-seeded jitter source.
func NewOpenWeatherApiClientMock() *OpenWeatherApiClientMock {
	return NewOpenWeatherApiClientMockWithSource(time.Now, rand.NewSource(time.Now().UnixNano()))
}

// NewOpenWeatherApiClientMockWithSource creates a generator with an injected clock and jitter source.
func NewOpenWeatherApiClientMockWithSource(now func() time.Time, src rand.Source) *OpenWeatherApiClientMock {
	return &OpenWeatherApiClientMock{
		now: now,
		rng: rand.New(src),
	}
}

// SetCredentials is a no-op: the generator needs no credential.
func (c *OpenWeatherApiClientMock) SetCredentials(apiKey string) {}

func (c *OpenWeatherApiClientMock) GetCurrentWeather(ctx context.Context, city, units string) (*models.CurrentWeather, error) {
	current := c.GenerateCurrentWeather(city)
	return &current, nil
}

func (c *OpenWeatherApiClientMock) GetForecast(ctx context.Context, city, units string) (*models.ForecastResponse, error) {
	forecast := c.GenerateForecast(city)
	return &forecast, nil
}

// CityHash is the sum of the UTF-16 code units of city. Case and whitespace count;
// character order does not.
func CityHash(city string) int {
	hash := 0
	for _, unit := range utf16.Encode([]rune(city)) {
		hash += int(unit)
	}
	return hash
}

// mockProfile holds the hash-derived fields shared by current conditions and forecast.
type mockProfile struct {
	hash        int
	baseTemp    int
	humidity    int
	pressure    int
	windSpeed   int
	windDeg     int
	clouds      int
	visibility  int
	condition   models.WeatherCondition
	countryCode string
}

func newMockProfile(city string) mockProfile {
	h := CityHash(city)
	return mockProfile{
		hash:        h,
		baseTemp:    15 + h%20,
		humidity:    40 + h%50,
		pressure:    1000 + h%30,
		windSpeed:   2 + h%8,
		windDeg:     (h * 10) % 360,
		clouds:      h % 100,
		visibility:  8000 + h%3000,
		condition:   mockConditions[h%len(mockConditions)],
		countryCode: mockCountryCodes[h%len(mockCountryCodes)],
	}
}

// GenerateCurrentWeather synthesizes current conditions for city.
func (c *OpenWeatherApiClientMock) GenerateCurrentWeather(city string) models.CurrentWeather {
	p := newMockProfile(city)
	now := c.now()
	base := float64(p.baseTemp)

	return models.CurrentWeather{
		Weather: []models.WeatherCondition{p.condition},
		Main: models.MainReadings{
			Temp:      base,
			FeelsLike: base - 1 + c.float64()*2,
			TempMin:   base,
			TempMax:   base,
			Pressure:  p.pressure,
			Humidity:  p.humidity,
		},
		Visibility: p.visibility,
		Wind:       models.Wind{Speed: float64(p.windSpeed), Deg: p.windDeg},
		Clouds:     models.Clouds{All: p.clouds},
		Dt:         now.Unix(),
		Sys: models.Sys{
			Country: p.countryCode,
			Sunrise: now.Add(-2 * time.Hour).Unix(),
			Sunset:  now.Add(8 * time.Hour).Unix(),
		},
		ID:   p.hash,
		Name: city,
		Cod:  200,
	}
}

// GenerateForecast synthesizes FORECAST_SAMPLES samples spaced 3 hours apart,
// starting at the generation time.
func (c *OpenWeatherApiClientMock) GenerateForecast(city string) models.ForecastResponse {
	p := newMockProfile(city)
	now := c.now()
	base := float64(p.baseTemp)

	samples := make([]models.ForecastSample, FORECAST_SAMPLES)
	for i := range samples {
		hour := ((i/8)*24 + (i%8)*3) % 24
		diurnal := 5 * math.Sin(math.Pi*float64(hour-12)/12)
		daily := 3 * math.Sin(math.Pi*(float64(i)/8)/2.5)
		temp := base + diurnal + daily

		condIdx := floorMod(int(math.Floor((temp-base+8)/4)), len(mockConditions))
		pop := clamp(float64(condIdx-1)*0.3+c.float64()*0.2, 0, 1)

		ts := now.Add(time.Duration(i) * forecastStep)
		samples[i] = models.ForecastSample{
			Dt: ts.Unix(),
			Main: models.MainReadings{
				Temp:      temp,
				FeelsLike: temp - 1,
				TempMin:   temp,
				TempMax:   temp,
				Pressure:  p.pressure,
				Humidity:  p.humidity,
			},
			Weather: []models.WeatherCondition{mockConditions[condIdx]},
			Wind:    models.Wind{Speed: float64(p.windSpeed), Deg: p.windDeg},
			Pop:     pop,
			DtTxt:   ts.UTC().Format("2006-01-02 15:04:05"),
		}
	}

	return models.ForecastResponse{
		Cod:  "200",
		Cnt:  len(samples),
		List: samples,
		City: models.ForecastCity{
			ID:      p.hash,
			Name:    city,
			Country: p.countryCode,
			Sunrise: now.Add(-2 * time.Hour).Unix(),
			Sunset:  now.Add(8 * time.Hour).Unix(),
		},
	}
}

// float64 draws from [0, 1).
func (c *OpenWeatherApiClientMock) float64() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

func floorMod(a, n int) int {
	return ((a % n) + n) % n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
