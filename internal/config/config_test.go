package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/happychuks/ai-weather-time-agent/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeatherBaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.HasWeatherCredential())
	assert.False(t, cfg.TelemetryEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.HasWeatherCredential())
	assert.True(t, cfg.TelemetryEnabled)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")

	cfg := config.Load()

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
