package location

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Geocoder resolves a city name to coordinates and a formatted address.
type Geocoder interface {
	// Geocode returns the best match for a city name, or ErrNotFound when
	// the provider has no match.
	Geocode(ctx context.Context, city string) (*Place, error)

	// Name returns the provider name for logging.
	Name() string
}

// TimezoneIndex maps coordinates to an IANA timezone identifier without any
// network call.
type TimezoneIndex interface {
	// TimezoneAt returns the zone id covering the point, or
	// ErrTimezoneNotFound for points with no zone (open ocean, poles).
	TimezoneAt(lat, lon float64) (string, error)
}

// ServiceConfig holds configuration for the location service.
type ServiceConfig struct {
	// Geocoder is the geocoding provider adapter.
	Geocoder Geocoder

	// Timezones is the geographic timezone index.
	Timezones TimezoneIndex

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service is the location facade: everything downstream resolves cities
// through it rather than through the raw adapters.
type Service struct {
	geocoder  Geocoder
	timezones TimezoneIndex
	logger    zerolog.Logger
}

// NewService creates a new location service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		geocoder:  cfg.Geocoder,
		timezones: cfg.Timezones,
		logger:    cfg.Logger,
	}
}

// ResolveCity resolves a city name into coordinates, timezone, and address
// details. Provider-unreachable and no-match both surface as ErrNotFound;
// the distinction exists only in the logs.
func (s *Service) ResolveCity(ctx context.Context, city string) (*ResolvedLocation, error) {
	place, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	tz, err := s.timezones.TimezoneAt(place.Coordinates.Lat, place.Coordinates.Lon)
	if err != nil {
		s.logger.Debug().
			Str("city", city).
			Float64("lat", place.Coordinates.Lat).
			Float64("lon", place.Coordinates.Lon).
			Msg("no timezone for coordinates")
		return nil, ErrTimezoneNotFound
	}

	fullAddress, country := parseAddress(place.DisplayName)

	return &ResolvedLocation{
		City:        city,
		Coordinates: place.Coordinates,
		Timezone:    tz,
		FullAddress: fullAddress,
		Country:     country,
	}, nil
}

// ResolveTimezone resolves a city name to its IANA timezone identifier.
func (s *Service) ResolveTimezone(ctx context.Context, city string) (string, error) {
	place, err := s.geocode(ctx, city)
	if err != nil {
		return "", err
	}

	tz, err := s.timezones.TimezoneAt(place.Coordinates.Lat, place.Coordinates.Lon)
	if err != nil {
		return "", ErrTimezoneNotFound
	}

	return tz, nil
}

// geocode calls the adapter once and folds transport failures into
// ErrNotFound toward the caller.
func (s *Service) geocode(ctx context.Context, city string) (*Place, error) {
	place, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			s.logger.Error().Err(err).
				Str("city", city).
				Str("provider", s.geocoder.Name()).
				Msg("geocoding provider failed")
		} else {
			s.logger.Debug().
				Str("city", city).
				Str("provider", s.geocoder.Name()).
				Msg("no geocoding match")
		}
		return nil, ErrNotFound
	}

	if !place.Coordinates.Valid() {
		s.logger.Error().
			Str("city", city).
			Float64("lat", place.Coordinates.Lat).
			Float64("lon", place.Coordinates.Lon).
			Msg("geocoder returned out-of-range coordinates")
		return nil, ErrNotFound
	}

	return place, nil
}

// parseAddress splits a formatted address and takes the last comma-separated
// segment as the country. A missing address is not an error.
func parseAddress(displayName string) (fullAddress, country string) {
	if displayName == "" {
		return "", "Unknown"
	}

	parts := strings.Split(displayName, ",")
	country = strings.TrimSpace(parts[len(parts)-1])
	if country == "" {
		country = "Unknown"
	}

	return displayName, country
}
