package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WEATHER_ENV", "OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "SERVER_ADDR",
		"STORAGE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "MOCK_DELAY_MS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "COUNTRIES_FILE", "DEFAULT_UNITS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, ENV_PROD, cfg.Env)
	assert.Equal(t, OPENWEATHER_ENDPOINT_BASE, cfg.OpenWeatherBaseURL)
	assert.Equal(t, SERVER_ADDR, cfg.ServerAddr)
	assert.Equal(t, STORAGE_BACKEND_REDIS, cfg.StorageBackend)
	assert.Equal(t, 800*time.Millisecond, cfg.MockDelay)
	assert.Equal(t, OPENWEATHER_RATE_LIMIT_RPS, cfg.RateLimitRPS)
	assert.Equal(t, OPENWEATHER_RATE_LIMIT_BURST, cfg.RateLimitBurst)
	assert.Equal(t, "metric", cfg.DefaultUnits)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "OPENWEATHER_API_KEY=abc123\nSTORAGE_BACKEND=memory\nMOCK_DELAY_MS=0\nREDIS_DB=3\nDEFAULT_UNITS=imperial\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))
	// godotenv does not override variables that are already set
	os.Unsetenv("OPENWEATHER_API_KEY")
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("MOCK_DELAY_MS")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("DEFAULT_UNITS")
	t.Cleanup(func() {
		for _, k := range []string{"OPENWEATHER_API_KEY", "STORAGE_BACKEND", "MOCK_DELAY_MS", "REDIS_DB", "DEFAULT_UNITS"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.OpenWeatherAPIKey)
	assert.Equal(t, STORAGE_BACKEND_MEMORY, cfg.StorageBackend)
	assert.Equal(t, time.Duration(0), cfg.MockDelay)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "imperial", cfg.DefaultUnits)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.env"))

	assert.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad int", "REDIS_DB", "zero"},
		{"Bad float", "RATE_LIMIT_RPS", "fast"},
		{"Bad backend", "STORAGE_BACKEND", "postgres"},
		{"Bad env", "WEATHER_ENV", "staging"},
		{"Bad units", "DEFAULT_UNITS", "kelvin"},
		{"Negative delay", "MOCK_DELAY_MS", "-5"},
		{"Zero rate", "RATE_LIMIT_RPS", "0"},
		{"Negative rate", "RATE_LIMIT_RPS", "-1"},
		{"Zero burst", "RATE_LIMIT_BURST", "0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)

			_, err := LoadConfig("")

			assert.Error(t, err)
		})
	}
}

func TestDefaultCountriesYAMLEmbedded(t *testing.T) {
	assert.Contains(t, string(DefaultCountriesYAML), "germany")
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/weather")

	assert.Equal(t, "/srv/weather", BaseDir())
	assert.Equal(t, filepath.Join("/srv/weather", "resources", "countries.yaml"), GetResourcePath(COUNTRIES_RESOURCE))
}
