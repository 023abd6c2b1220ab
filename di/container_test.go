package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"weather-dash/api/openweather"
	"weather-dash/config"
	"weather-dash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                config.ENV_MOCK,
		OpenWeatherBaseURL: config.OPENWEATHER_ENDPOINT_BASE,
		RateLimitRPS:       config.OPENWEATHER_RATE_LIMIT_RPS,
		RateLimitBurst:     config.OPENWEATHER_RATE_LIMIT_BURST,
		ServerAddr:         config.SERVER_ADDR,
		StorageBackend:     config.STORAGE_BACKEND_MEMORY,
		LogLevel:           config.DEFAULT_LOG_LEVEL,
		DefaultUnits:       config.DEFAULT_UNITS,
	}
}

func TestNewContainer_MockEnv(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &openweather.OpenWeatherApiClientMock{}, c.WeatherAPI)
	assert.Same(t, c.FallbackWeatherAPI, c.WeatherAPI)

	state, err := c.WeatherService.Search(context.Background(), "cli", "Tokyo", models.UnitsMetric)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, state.Status)

	recent, err := c.RecentSearchService.List(context.Background(), "cli")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo"}, recent)
}

func TestNewContainer_ProdEnvIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Env = config.ENV_PROD
	cfg.OpenWeatherAPIKey = "key"

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &openweather.RateLimitedApiClient{}, c.WeatherAPI)
	assert.Equal(t, time.Local, c.WeatherService.Location())
}

func TestNewContainer_CountriesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
aliases:
  atl: atlantis
cities:
  atlantis: [Poseidonia]
recognized: [atlantis]
`), 0o644))

	cfg := testConfig()
	cfg.CountriesFile = path
	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"Poseidonia"}, c.CountryDisambiguator.Disambiguate("ATL"))
	assert.Nil(t, c.CountryDisambiguator.Disambiguate("Germany"))
}

func TestNewContainer_MissingCountriesFile(t *testing.T) {
	cfg := testConfig()
	cfg.CountriesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewContainer(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to load country table")
}

func TestNewContainer_ProjectRootCountryTable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, config.RESOURCES_PATH_PREFIX), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.RESOURCES_PATH_PREFIX, config.COUNTRIES_RESOURCE), []byte(`
cities:
  wakanda: [Birnin Zana]
recognized: [wakanda]
`), 0o644))
	t.Setenv("PROJECT_ROOT", root)

	c, err := NewContainer(context.Background(), testConfig())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"Birnin Zana"}, c.CountryDisambiguator.Disambiguate("Wakanda"))
	assert.Nil(t, c.CountryDisambiguator.Disambiguate("Germany"))
}

func TestNewContainer_CountriesFileBeatsProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, config.RESOURCES_PATH_PREFIX), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.RESOURCES_PATH_PREFIX, config.COUNTRIES_RESOURCE),
		[]byte("cities:\n  wakanda: [Birnin Zana]\n"), 0o644))
	t.Setenv("PROJECT_ROOT", root)

	cfg := testConfig()
	cfg.CountriesFile = filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(cfg.CountriesFile, []byte("cities:\n  atlantis: [Poseidonia]\n"), 0o644))

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"Poseidonia"}, c.CountryDisambiguator.Disambiguate("atlantis"))
	assert.Nil(t, c.CountryDisambiguator.Disambiguate("wakanda"))
}
