package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/happychuks/ai-weather-time-agent/internal/clock"
	"github.com/happychuks/ai-weather-time-agent/internal/location"
	"github.com/happychuks/ai-weather-time-agent/internal/weather"
)

const (
	// maxWorldClockCities caps world_clock input; excess cities are dropped
	// with a truncation note.
	maxWorldClockCities = 10

	// defaultForecastDays is used when the days argument is not an integer.
	defaultForecastDays = 3

	minForecastDays = 1
	maxForecastDays = 5
)

const emptyCityMessage = "City name cannot be empty. Please provide a valid city name."

// WeatherService provides current conditions and forecasts.
type WeatherService interface {
	CurrentWeather(ctx context.Context, city string, units weather.Units) (*weather.CurrentReport, error)
	Forecast(ctx context.Context, city string, units weather.Units, days int) (*weather.ForecastReport, error)
}

// TimeService answers time queries for cities.
type TimeService interface {
	CurrentTime(ctx context.Context, city string, format clock.Format) (*clock.TimeResult, error)
	TimeDifference(ctx context.Context, city1, city2 string) (*clock.DifferenceResult, error)
	WorldClock(ctx context.Context, cities []string) (*clock.WorldClockResult, error)
}

// LocationService resolves city names to coordinates and timezones.
type LocationService interface {
	ResolveCity(ctx context.Context, city string) (*location.ResolvedLocation, error)
}

// ToolboxConfig holds the services the toolbox delegates to.
type ToolboxConfig struct {
	Weather  WeatherService
	Time     TimeService
	Location LocationService

	// Logger for tool invocations.
	Logger zerolog.Logger
}

// Toolbox implements the tool operations the agent framework calls.
type Toolbox struct {
	weather  WeatherService
	time     TimeService
	location LocationService
	logger   zerolog.Logger
}

// NewToolbox creates a new toolbox.
func NewToolbox(cfg ToolboxConfig) *Toolbox {
	return &Toolbox{
		weather:  cfg.Weather,
		time:     cfg.Time,
		location: cfg.Location,
		logger:   cfg.Logger,
	}
}

// GetWeather returns the current weather report for a city.
func (t *Toolbox) GetWeather(ctx context.Context, city, units string) *Result {
	city = strings.TrimSpace(city)
	if city == "" {
		return t.invalid("get_weather", emptyCityMessage)
	}

	u := weather.ParseUnits(units)
	report, err := t.weather.CurrentWeather(ctx, city, u)
	if err != nil {
		return t.failed("get_weather", err)
	}

	r := report.Reading
	data := map[string]any{
		"temperature": r.Temperature,
		"feels_like":  r.FeelsLike,
		"condition":   r.Condition,
		"humidity":    r.Humidity,
		"wind_speed":  r.WindSpeed,
		"units":       string(r.Units),
	}
	if r.Pressure > 0 {
		data["pressure"] = r.Pressure
	}

	return success(report.Report, data)
}

// GetWeatherForecast returns a daily forecast for a city. The days argument
// accepts any JSON-decoded value; non-integers fall back to the default.
func (t *Toolbox) GetWeatherForecast(ctx context.Context, city string, days any, units string) *Result {
	city = strings.TrimSpace(city)
	if city == "" {
		return t.invalid("get_weather_forecast", emptyCityMessage)
	}

	u := weather.ParseUnits(units)
	report, err := t.weather.Forecast(ctx, city, u, clampDays(days))
	if err != nil {
		return t.failed("get_weather_forecast", err)
	}

	forecasts := make([]map[string]any, 0, len(report.Entries))
	for _, entry := range report.Entries {
		forecasts = append(forecasts, map[string]any{
			"date":        entry.Date,
			"temperature": entry.Temperature,
			"condition":   entry.Condition,
		})
	}

	return success(report.Report, map[string]any{
		"forecasts": forecasts,
		"units":     string(u),
	})
}

// GetCurrentTime returns the current time in a city.
func (t *Toolbox) GetCurrentTime(ctx context.Context, city, format string) *Result {
	city = strings.TrimSpace(city)
	if city == "" {
		return t.invalid("get_current_time", emptyCityMessage)
	}

	result, err := t.time.CurrentTime(ctx, city, clock.ParseFormat(format))
	if err != nil {
		return t.failed("get_current_time", err)
	}

	return success(result.Report, map[string]any{
		"city":           city,
		"timezone":       result.Timezone,
		"local_time":     result.LocalTime.Format(time.RFC3339),
		"utc_time":       result.UTCTime.Format(time.RFC3339),
		"formatted_time": result.FormattedTime,
		"day_of_week":    result.DayOfWeek,
		"utc_offset":     result.UTCOffset,
	})
}

// GetTimeDifference returns the current time difference between two cities.
func (t *Toolbox) GetTimeDifference(ctx context.Context, city1, city2 string) *Result {
	city1 = strings.TrimSpace(city1)
	city2 = strings.TrimSpace(city2)
	if city1 == "" {
		return t.invalid("get_time_difference",
			"First city name cannot be empty. Please provide valid city names.")
	}
	if city2 == "" {
		return t.invalid("get_time_difference",
			"Second city name cannot be empty. Please provide valid city names.")
	}

	result, err := t.time.TimeDifference(ctx, city1, city2)
	if err != nil {
		return t.failed("get_time_difference", err)
	}

	return success(result.Report, map[string]any{
		"city1":            city1,
		"city2":            city2,
		"timezone1":        result.Timezone1,
		"timezone2":        result.Timezone2,
		"time1":            result.Time1.Format(time.RFC3339),
		"time2":            result.Time2.Format(time.RFC3339),
		"difference_hours": result.DifferenceHours,
	})
}

// GetWorldClock returns the current time for multiple cities. Input is
// capped to the first ten cities; a note is appended when truncated.
func (t *Toolbox) GetWorldClock(ctx context.Context, cities []string) *Result {
	if len(cities) == 0 {
		return t.invalid("get_world_clock",
			"Please provide a list of cities. Example: ['New York', 'London', 'Tokyo']")
	}

	clean := make([]string, 0, len(cities))
	for _, city := range cities {
		if trimmed := strings.TrimSpace(city); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	if len(clean) == 0 {
		return t.invalid("get_world_clock",
			"No valid city names provided. Please ensure city names are not empty.")
	}

	truncated := len(clean) > maxWorldClockCities
	if truncated {
		clean = clean[:maxWorldClockCities]
	}

	result, err := t.time.WorldClock(ctx, clean)
	if err != nil {
		return t.failed("get_world_clock", err)
	}

	report := result.Report
	if truncated {
		report += fmt.Sprintf("\n\nNote: Limited to first %d cities out of %d provided.",
			maxWorldClockCities, len(cities))
	}

	entries := make([]map[string]any, 0, len(result.Results))
	for _, r := range result.Results {
		entries = append(entries, map[string]any{
			"city":     r.City,
			"time":     r.Time,
			"timezone": r.Timezone,
			"day":      r.Day,
		})
	}

	return success(report, map[string]any{
		"results":           entries,
		"errors":            result.Errors,
		"total_cities":      result.TotalCities,
		"successful_cities": result.SuccessfulCities,
	})
}

// GetCityInfo returns coordinates, timezone and address details for a city.
func (t *Toolbox) GetCityInfo(ctx context.Context, city string) *Result {
	city = strings.TrimSpace(city)
	if city == "" {
		return t.invalid("get_city_info", emptyCityMessage)
	}

	loc, err := t.location.ResolveCity(ctx, city)
	if err != nil {
		t.logger.Debug().Err(err).Str("tool", "get_city_info").Str("city", city).
			Msg("tool call failed")
		return failure(fmt.Sprintf("Could not find location information for '%s'", city))
	}

	report := fmt.Sprintf(`Information for %s:
Coordinates: %.4f, %.4f
Timezone: %s
Full address: %s
Country: %s`,
		titleCase(city), loc.Coordinates.Lat, loc.Coordinates.Lon,
		loc.Timezone, loc.FullAddress, loc.Country)

	return success(report, map[string]any{
		"city":         city,
		"latitude":     loc.Coordinates.Lat,
		"longitude":    loc.Coordinates.Lon,
		"timezone":     loc.Timezone,
		"full_address": loc.FullAddress,
		"country":      loc.Country,
	})
}

// invalid reports a rejected input; no provider is ever called for these.
func (t *Toolbox) invalid(tool, message string) *Result {
	t.logger.Debug().Str("tool", tool).Str("reason", message).Msg("tool input rejected")
	return failure(message)
}

// failed wraps a service error into an error envelope. Service errors carry
// caller-safe messages.
func (t *Toolbox) failed(tool string, err error) *Result {
	t.logger.Debug().Err(err).Str("tool", tool).Msg("tool call failed")
	return failure(err.Error())
}

// clampDays normalizes the forecast days argument. Integers clamp into the
// valid range; anything else falls back to the default.
func clampDays(days any) int {
	var n int
	switch v := days.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return defaultForecastDays
		}
		n = parsed
	default:
		return defaultForecastDays
	}

	if n < minForecastDays {
		return minForecastDays
	}
	if n > maxForecastDays {
		return maxForecastDays
	}
	return n
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
