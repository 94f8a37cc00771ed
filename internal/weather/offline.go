package weather

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// OfflineSourceName identifies the built-in demo source.
const OfflineSourceName = "offline"

// demoReading is a fixed entry of the offline table. Values are metric.
type demoReading struct {
	temp      float64
	condition string
	humidity  float64
	windSpeed float64
}

// demoCities is the fixed offline table, keyed by lowercase city name.
var demoCities = map[string]demoReading{
	"new york": {temp: 22.5, condition: "partly cloudy", humidity: 65, windSpeed: 3.2},
	"london":   {temp: 15.8, condition: "overcast", humidity: 78, windSpeed: 2.1},
	"lagos":    {temp: 31.3, condition: "sunny", humidity: 55, windSpeed: 1.8},
	"paris":    {temp: 18.7, condition: "light rain", humidity: 82, windSpeed: 2.5},
	"sydney":   {temp: 24.1, condition: "clear sky", humidity: 60, windSpeed: 4.1},
}

// OfflineSource serves demo weather data when no provider credential is
// configured. Current weather comes from a fixed five-city table; forecasts
// are not available offline.
type OfflineSource struct{}

// NewOfflineSource creates the offline source.
func NewOfflineSource() *OfflineSource {
	return &OfflineSource{}
}

// Name returns the source name.
func (s *OfflineSource) Name() string {
	return OfflineSourceName
}

// SupportedCities returns the demo city names in stable order.
func (s *OfflineSource) SupportedCities() []string {
	cities := make([]string, 0, len(demoCities))
	for city := range demoCities {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// CurrentWeather returns the demo reading for the city. Lookup is
// case-insensitive; unlisted cities error with the supported set.
func (s *OfflineSource) CurrentWeather(_ context.Context, city string, _ Units) (*Reading, error) {
	entry, ok := demoCities[strings.ToLower(city)]
	if !ok {
		return nil, &Error{
			Provider: OfflineSourceName,
			Code:     "UNSUPPORTED_CITY",
			Message: fmt.Sprintf("Demo weather data not available for '%s'. Supported cities: %s",
				city, strings.Join(s.SupportedCities(), ", ")),
			Err: ErrCityNotSupported,
		}
	}

	// The demo table is metric only; requested units are ignored.
	return &Reading{
		Temperature: entry.temp,
		FeelsLike:   entry.temp,
		Condition:   entry.condition,
		Humidity:    entry.humidity,
		WindSpeed:   entry.windSpeed,
		Units:       UnitsMetric,
		Demo:        true,
	}, nil
}

// Forecast always errors: there is no offline forecast fallback.
func (s *OfflineSource) Forecast(_ context.Context, _ string, _ Units, _ int) ([]ForecastEntry, error) {
	return nil, &Error{
		Provider: OfflineSourceName,
		Code:     "NO_API_KEY",
		Message: "Weather forecast requires an API key. Set the OPENWEATHER_API_KEY " +
			"environment variable to get forecasts, or request current weather for demo data.",
		Err: ErrNoAPIKey,
	}
}
