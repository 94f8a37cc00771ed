package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source is a weather data source. The live provider and the offline demo
// table are the two implementations; one is selected at construction time
// based on credential presence.
type Source interface {
	// CurrentWeather fetches current conditions for a city.
	CurrentWeather(ctx context.Context, city string, units Units) (*Reading, error)

	// Forecast fetches up to days daily entries for a city.
	Forecast(ctx context.Context, city string, units Units, days int) ([]ForecastEntry, error)

	// Name returns the source name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Source is the weather data source.
	Source Source

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service normalizes source data into human-readable reports.
type Service struct {
	source Source
	logger zerolog.Logger
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		source: cfg.Source,
		logger: cfg.Logger,
	}
}

// SourceName returns the active source name.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// CurrentReport is a formatted current-weather result.
type CurrentReport struct {
	Report  string
	Reading *Reading
}

// ForecastReport is a formatted forecast result.
type ForecastReport struct {
	Report  string
	Entries []ForecastEntry
	Units   Units
}

// CurrentWeather fetches and formats current conditions for a city.
func (s *Service) CurrentWeather(ctx context.Context, city string, units Units) (*CurrentReport, error) {
	reading, err := s.source.CurrentWeather(ctx, city, units)
	if err != nil {
		s.logError(err, city)
		return nil, err
	}

	return &CurrentReport{
		Report:  formatCurrentReport(city, reading),
		Reading: reading,
	}, nil
}

// Forecast fetches and formats a daily forecast for a city.
func (s *Service) Forecast(ctx context.Context, city string, units Units, days int) (*ForecastReport, error) {
	entries, err := s.source.Forecast(ctx, city, units, days)
	if err != nil {
		s.logError(err, city)
		return nil, err
	}

	return &ForecastReport{
		Report:  formatForecastReport(city, units, entries),
		Entries: entries,
		Units:   units,
	}, nil
}

// logError keeps the parse/provider distinction visible in logs; callers
// see a uniform error either way.
func (s *Service) logError(err error, city string) {
	event := s.logger.Error()
	if errors.Is(err, ErrMalformedPayload) {
		event = s.logger.Error().Str("kind", "parse")
	} else if errors.Is(err, ErrProviderUnavailable) {
		event = s.logger.Error().Str("kind", "provider")
	} else if errors.Is(err, ErrCityNotSupported) || errors.Is(err, ErrNoAPIKey) {
		event = s.logger.Debug()
	}
	event.Err(err).
		Str("city", city).
		Str("source", s.source.Name()).
		Msg("weather lookup failed")
}

func formatCurrentReport(city string, r *Reading) string {
	tempUnit := r.Units.TempSymbol()
	speedUnit := r.Units.SpeedUnit()

	if r.Demo {
		return fmt.Sprintf(`Current weather in %s (Demo Data):
Temperature: %.1f%s
Condition: %s
Humidity: %.0f%%
Wind: %.1f %s
Note: This is demo data. Set OPENWEATHER_API_KEY for real-time data.`,
			titleCase(city), r.Temperature, tempUnit, titleCase(r.Condition),
			r.Humidity, r.WindSpeed, speedUnit)
	}

	report := fmt.Sprintf(`Current weather in %s:
Temperature: %.1f%s (feels like %.1f%s)
Condition: %s
Humidity: %.0f%%
Wind: %.1f %s`,
		titleCase(city), r.Temperature, tempUnit, r.FeelsLike, tempUnit,
		titleCase(r.Condition), r.Humidity, r.WindSpeed, speedUnit)

	if r.Visibility > 0 {
		report += fmt.Sprintf("\nVisibility: %.1f km", r.Visibility/1000)
	}
	if r.Pressure > 0 {
		report += fmt.Sprintf("\nPressure: %.0f hPa", r.Pressure)
	}

	return report
}

func formatForecastReport(city string, units Units, entries []ForecastEntry) string {
	tempUnit := units.TempSymbol()

	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s:", titleCase(city))
	for i, entry := range entries {
		fmt.Fprintf(&b, "\nDay %d (%s): %.1f%s, %s",
			i+1, entry.Date, entry.Temperature, tempUnit, titleCase(entry.Condition))
	}

	return b.String()
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
