// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// OpenWeatherAPIKey enables the live weather source. When empty the
	// service runs in offline mode: current weather comes from the built-in
	// demo table and forecasts are unavailable.
	OpenWeatherAPIKey string

	// OpenWeatherBaseURL is the OpenWeatherMap API base URL.
	OpenWeatherBaseURL string

	// NominatimBaseURL is the geocoding provider base URL.
	NominatimBaseURL string

	// RequestTimeout bounds each outbound provider call.
	RequestTimeout time.Duration

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export.
	TelemetryEnabled bool
}

// HasWeatherCredential reports whether a live weather provider key is set.
func (c Config) HasWeatherCredential() bool {
	return c.OpenWeatherAPIKey != ""
}

// Load reads configuration from a .env file (if present) and the process
// environment, applying defaults for anything unset.
func Load() Config {
	// Best effort; missing .env just means plain environment variables.
	_ = godotenv.Load()

	return Config{
		Port:               getEnv("APP_PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		RequestTimeout:     time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:   getEnv("OTEL_ENABLED", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
