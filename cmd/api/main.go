// Package main provides the entrypoint for the weather and time tool service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/happychuks/ai-weather-time-agent/internal/api"
	"github.com/happychuks/ai-weather-time-agent/internal/api/middleware"
	"github.com/happychuks/ai-weather-time-agent/internal/clock"
	"github.com/happychuks/ai-weather-time-agent/internal/config"
	"github.com/happychuks/ai-weather-time-agent/internal/location"
	"github.com/happychuks/ai-weather-time-agent/internal/location/nominatim"
	"github.com/happychuks/ai-weather-time-agent/internal/location/tzindex"
	"github.com/happychuks/ai-weather-time-agent/internal/provider/resilience"
	"github.com/happychuks/ai-weather-time-agent/internal/telemetry"
	"github.com/happychuks/ai-weather-time-agent/internal/tools"
	"github.com/happychuks/ai-weather-time-agent/internal/weather"
	"github.com/happychuks/ai-weather-time-agent/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weather-time-agent"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting weather-time agent")

	cfg := config.Load()

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Provider registry and resilient HTTP clients
	registry := resilience.NewRegistry()

	geocodeClientCfg := resilience.DefaultClientConfig(nominatim.ProviderName)
	geocodeClientCfg.Timeout = cfg.RequestTimeout
	geocodeClient := resilience.NewClient(geocodeClientCfg)
	registry.Register(nominatim.ProviderName, geocodeClient)

	// Timezone index: embedded polygon data, no network calls.
	timezoneIndex, err := tzindex.NewResolver()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize timezone index")
	}

	locationService := location.NewService(location.ServiceConfig{
		Geocoder: nominatim.NewClient(nominatim.ClientConfig{
			BaseURL:    cfg.NominatimBaseURL,
			HTTPClient: geocodeClient,
			Registry:   registry,
			Logger:     log,
		}),
		Timezones: timezoneIndex,
		Logger:    log,
	})
	log.Info().Msg("location service initialized")

	// Weather source: live provider when a credential is configured,
	// otherwise the built-in demo table.
	var weatherSource weather.Source
	if cfg.HasWeatherCredential() {
		weatherClientCfg := resilience.DefaultClientConfig(openweathermap.ProviderName)
		weatherClientCfg.Timeout = cfg.RequestTimeout
		weatherClient := resilience.NewClient(weatherClientCfg)
		registry.Register(openweathermap.ProviderName, weatherClient)

		weatherSource = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     cfg.OpenWeatherAPIKey,
			BaseURL:    cfg.OpenWeatherBaseURL,
			HTTPClient: weatherClient,
			Registry:   registry,
			Logger:     log,
		})
		log.Info().Msg("live weather source initialized")
	} else {
		weatherSource = weather.NewOfflineSource()
		log.Warn().Msg("OPENWEATHER_API_KEY not set - serving demo weather data, forecasts unavailable")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Source: weatherSource,
		Logger: log,
	})

	timeService := clock.NewService(clock.ServiceConfig{
		Resolver: locationService,
		Logger:   log,
	})
	log.Info().Msg("time service initialized")

	toolbox := tools.NewToolbox(tools.ToolboxConfig{
		Weather:  weatherService,
		Time:     timeService,
		Location: locationService,
		Logger:   log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:       Version,
		BuildTime:     BuildTime,
		Logger:        log,
		ServiceName:   serviceName,
		Metrics:       metrics,
		Toolbox:       toolbox,
		Registry:      registry,
		WeatherSource: weatherSource.Name(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
