package di

import (
	"context"
	"os"
	"time"

	"weather-dash/api"
	"weather-dash/api/openweather"
	"weather-dash/config"
	"weather-dash/dao/redis"
	"weather-dash/db"
	"weather-dash/models"
	"weather-dash/server"
	"weather-dash/server/handlers"
	services "weather-dash/service"
	"weather-dash/util"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Container holds all application dependencies.
type Container struct {
	Config               *config.Config
	RedisClient          db.RedisClient
	RecentSearchDao      *redis.RedisRecentSearchDAO
	RecentSearchService  *services.RecentSearchService
	CountryDisambiguator *services.CountryDisambiguator
	WeatherAPI           openweather.WeatherAPI
	FallbackWeatherAPI   openweather.WeatherAPI
	WeatherService       *services.WeatherService
	WeatherHandler       *handlers.WeatherHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	WeatherHttpServer    *server.WeatherHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := log.With().Str("component", "container").Logger()
	logger.Info().Str("env", cfg.Env).Str("storage", cfg.StorageBackend).Msg("initializing container")

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recentSearchDao := redis.NewRedisRecentSearchDAO(redisClient)
	recentSearchService := services.NewRecentSearchService(recentSearchDao)

	table, err := loadCountryTable(cfg)
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	disambiguator := services.NewCountryDisambiguator(table)

	// The generator is both the demo fallback and, in mock env, the primary source.
	fallbackAPI := openweather.NewOpenWeatherApiClientMock()
	var weatherAPI openweather.WeatherAPI
	if cfg.Env == config.ENV_MOCK {
		logger.Info().Msg("using mock weather api")
		weatherAPI = fallbackAPI
	} else {
		logger.Info().Str("base_url", cfg.OpenWeatherBaseURL).Msg("using prod weather api")
		client := openweather.NewOpenWeatherApiClient(api.NewHTTPClient(cfg.OpenWeatherBaseURL))
		weatherAPI = openweather.NewRateLimitedApiClient(client, cfg.RateLimitRPS, cfg.RateLimitBurst)
		weatherAPI.SetCredentials(cfg.OpenWeatherAPIKey)
		if cfg.OpenWeatherAPIKey == "" {
			logger.Warn().Msg("OPENWEATHER_API_KEY is empty, searches will fall back to demo data")
		}
	}

	weatherService := services.NewWeatherService(weatherAPI, fallbackAPI, disambiguator, recentSearchService,
		services.WeatherServiceConfig{MockDelay: cfg.MockDelay})

	weatherHandler := handlers.NewWeatherHandler(weatherService, recentSearchService, config.SESSION_COOKIE_NAME, cfg.DefaultUnits)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(weatherHandler, muxRouter)
	weatherHttpServer := server.NewWeatherHttpServer(router, muxRouter, cfg.ServerAddr,
		config.SERVER_SHUTDOWN_TIMEOUT_SECONDS*time.Second)

	return &Container{
		Config:               cfg,
		RedisClient:          redisClient,
		RecentSearchDao:      recentSearchDao,
		RecentSearchService:  recentSearchService,
		CountryDisambiguator: disambiguator,
		WeatherAPI:           weatherAPI,
		FallbackWeatherAPI:   fallbackAPI,
		WeatherService:       weatherService,
		WeatherHandler:       weatherHandler,
		MuxRouter:            muxRouter,
		Router:               router,
		WeatherHttpServer:    weatherHttpServer,
	}, nil
}

// Close releases the storage connection.
func (c *Container) Close() error {
	return c.RedisClient.Close()
}

func newRedisClient(ctx context.Context, cfg *config.Config) (db.RedisClient, error) {
	if cfg.StorageBackend == config.STORAGE_BACKEND_MEMORY {
		return db.NewMemoryRedisClient(), nil
	}
	client, err := db.NewGoRedisClientFromOptions(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize storage")
	}
	return client, nil
}

func loadCountryTable(cfg *config.Config) (*models.CountryTable, error) {
	if cfg.CountriesFile != "" {
		table, err := util.ReadCountryTableFromYAML(cfg.CountriesFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load country table")
		}
		return table, nil
	}
	// a resources/countries.yaml under the project root replaces the built-in table
	if path := config.GetResourcePath(config.COUNTRIES_RESOURCE); fileExists(path) {
		log.Info().Str("component", "container").Str("path", path).Msg("using on-disk country table")
		table, err := util.ReadCountryTableFromYAML(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load country table")
		}
		return table, nil
	}
	table, err := util.ParseCountryTable(config.DefaultCountriesYAML)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse embedded country table")
	}
	return table, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
