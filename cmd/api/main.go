package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cinemamap/backend/internal/adapters/cache"
	"github.com/cinemamap/backend/internal/adapters/dataset"
	"github.com/cinemamap/backend/internal/adapters/providers/geolocation"
	"github.com/cinemamap/backend/internal/api/handlers"
	"github.com/cinemamap/backend/internal/api/middleware"
	"github.com/cinemamap/backend/internal/api/routes"
	"github.com/cinemamap/backend/internal/application/services"
	"github.com/cinemamap/backend/internal/domain/providers"
	"github.com/cinemamap/backend/internal/infrastructure/clients/redis"
	"github.com/cinemamap/backend/internal/infrastructure/observability"
	"github.com/cinemamap/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}
	promMetrics := observability.NewPrometheusMetrics()

	// The table is loaded once and shared read-only by every request
	repo, err := dataset.NewRepository(cfg.Dataset.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load cinema dataset")
	}
	promMetrics.SetDatasetSize(repo.Count())

	// Initialize Redis client; the API works without it
	var cacheProvider providers.CacheProvider
	if cfg.Cache.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, response cache disabled")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	geocoder := newGeolocationProvider(cfg.Geolocation, promMetrics)
	finder := services.NewCinemaFinderService(repo, geocoder, cfg.Search.NearestLimit, promMetrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, cfg.Cache.TTLSeconds, metrics)
	}

	router := routes.NewRouter(
		handlers.NewCinemaHandler(finder),
		handlers.NewGeolocationHandler(finder),
		cacheMiddleware,
		metrics,
		promMetrics.Handler(),
		cfg.Server.AllowedOrigins,
	)

	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Geolocation.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}

func newGeolocationProvider(cfg config.GeolocationConfig, recorder geolocation.GeocodeRecorder) providers.GeolocationProvider {
	var provider providers.GeolocationProvider
	switch cfg.Provider {
	case "mock":
		provider = geolocation.NewMockGeolocationProvider()
	default:
		provider = geolocation.NewAdresseGeolocationProviderWithOptions(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
	}
	log.Info().Str("provider", cfg.Provider).Str("base_url", cfg.BaseURL).Msg("Geolocation provider configured")
	return geolocation.NewInstrumentedProvider(cfg.Provider, provider, recorder)
}
