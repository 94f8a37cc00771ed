// Package weather normalizes current conditions and forecasts from a
// configurable source into unit-aware reports.
package weather

import (
	"errors"
	"strings"
)

// Weather errors. Provider and parse failures are distinguished for
// logging only; callers surface both the same way.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrMalformedPayload    = errors.New("malformed weather payload")
	ErrNoAPIKey            = errors.New("no weather API key configured")
	ErrCityNotSupported    = errors.New("city not in demo data set")
)

// Error carries a user-facing message alongside the underlying error kind.
type Error struct {
	// Provider identifies the source that produced the error.
	Provider string

	// Code is a short machine-readable error code.
	Code string

	// Message is safe to show to the caller.
	Message string

	// Err is the underlying sentinel error.
	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Units selects the measurement system for temperatures and wind speeds.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsKelvin   Units = "kelvin"
)

// ParseUnits normalizes a units string. Unrecognized values silently fall
// back to metric; this is never a caller-facing error.
func ParseUnits(s string) Units {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case UnitsImperial:
		return UnitsImperial
	case UnitsKelvin:
		return UnitsKelvin
	default:
		return UnitsMetric
	}
}

// TempSymbol returns the temperature symbol for the units.
func (u Units) TempSymbol() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsKelvin:
		return "K"
	default:
		return "°C"
	}
}

// SpeedUnit returns the wind speed unit for the units.
func (u Units) SpeedUnit() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Reading is a normalized current-weather observation.
type Reading struct {
	Temperature float64
	FeelsLike   float64

	// Condition is the human-readable condition description.
	Condition string

	// Humidity percentage (0-100).
	Humidity float64

	WindSpeed float64

	// Pressure in hPa; 0 when the source did not report it.
	Pressure float64

	// Visibility in meters; 0 when the source did not report it.
	Visibility float64

	Units Units

	// Demo marks readings served from the built-in table rather than a
	// live provider.
	Demo bool
}

// ForecastEntry is one day of a forecast.
type ForecastEntry struct {
	// Date in YYYY-MM-DD form.
	Date string

	Temperature float64
	Condition   string
}
