package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"weather-dash/models"

	"github.com/joho/godotenv"
)

// Environments
const ENV_PROD = "prod"
const ENV_MOCK = "mock"

// OpenWeather API config
const OPENWEATHER_ENDPOINT_BASE = "https://api.openweathermap.org/data/2.5"
const OPENWEATHER_RATE_LIMIT_RPS = 1.0
const OPENWEATHER_RATE_LIMIT_BURST = 5

// Delay before mock data is delivered after an authorization failure.
const MOCK_DELAY_MS = 800

// Server config
const SERVER_ADDR = ":8080"
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5
const SESSION_COOKIE_NAME = "wd_session"

// Storage config
const STORAGE_BACKEND_REDIS = "redis"
const STORAGE_BACKEND_MEMORY = "memory"
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

const DEFAULT_UNITS = models.UnitsMetric
const DEFAULT_LOG_LEVEL = "info"

// Resources
const RESOURCES_PATH_PREFIX = "resources"
const COUNTRIES_RESOURCE = "countries.yaml"

// DefaultCountriesYAML is the built-in country table.
//
//go:embed resources/countries.yaml
var DefaultCountriesYAML []byte

// Config holds the runtime settings, read from the environment.
type Config struct {
	Env string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	RateLimitRPS       float64
	RateLimitBurst     int
	MockDelay          time.Duration

	ServerAddr string

	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	LogLevel      string
	CountriesFile string
	DefaultUnits  string
}

// LoadConfig reads envFile (when it exists) into the process environment and builds a Config.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	}

	cfg := &Config{
		Env:                getEnv("WEATHER_ENV", ENV_PROD),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", OPENWEATHER_ENDPOINT_BASE),
		ServerAddr:         getEnv("SERVER_ADDR", SERVER_ADDR),
		StorageBackend:     getEnv("STORAGE_BACKEND", STORAGE_BACKEND_REDIS),
		RedisAddr:          getEnv("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword:      getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		LogLevel:           getEnv("LOG_LEVEL", DEFAULT_LOG_LEVEL),
		CountriesFile:      getEnv("COUNTRIES_FILE", ""),
		DefaultUnits:       getEnv("DEFAULT_UNITS", DEFAULT_UNITS),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", REDIS_DB); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", OPENWEATHER_RATE_LIMIT_BURST); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", OPENWEATHER_RATE_LIMIT_RPS); err != nil {
		return nil, err
	}
	delayMs, err := getEnvInt("MOCK_DELAY_MS", MOCK_DELAY_MS)
	if err != nil {
		return nil, err
	}
	cfg.MockDelay = time.Duration(delayMs) * time.Millisecond

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.Env != ENV_PROD && c.Env != ENV_MOCK {
		return fmt.Errorf("invalid WEATHER_ENV %q: want %q or %q", c.Env, ENV_PROD, ENV_MOCK)
	}
	if c.StorageBackend != STORAGE_BACKEND_REDIS && c.StorageBackend != STORAGE_BACKEND_MEMORY {
		return fmt.Errorf("invalid STORAGE_BACKEND %q: want %q or %q", c.StorageBackend, STORAGE_BACKEND_REDIS, STORAGE_BACKEND_MEMORY)
	}
	if !models.ValidUnits(c.DefaultUnits) {
		return fmt.Errorf("invalid DEFAULT_UNITS %q: want %q or %q", c.DefaultUnits, models.UnitsMetric, models.UnitsImperial)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_RPS %v: must be positive", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("invalid RATE_LIMIT_BURST %d: must be at least 1", c.RateLimitBurst)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("invalid MOCK_DELAY_MS: %s", c.MockDelay)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

// BaseDir returns the project root directory: PROJECT_ROOT, or the working directory.
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}

// GetResourcePath returns the path of resourceFile under <BaseDir>/resources.
func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
