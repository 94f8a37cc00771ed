// Package location resolves free-text city names into coordinates, timezone
// identifiers, and address details.
package location

import "errors"

// Location errors.
var (
	ErrNotFound            = errors.New("location not found")
	ErrTimezoneNotFound    = errors.New("timezone not found for coordinates")
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Coordinates is a geographic point. Latitude is in [-90, 90], longitude in
// [-180, 180].
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinates are within range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Place is a geocoding result for a city query.
type Place struct {
	Coordinates Coordinates

	// DisplayName is the provider's formatted address, comma-separated with
	// the country as its last segment. May be empty.
	DisplayName string
}

// ResolvedLocation is the full resolution of a city name. Constructed fresh
// per request and never cached.
type ResolvedLocation struct {
	City        string
	Coordinates Coordinates

	// Timezone is an IANA identifier such as "Europe/Amsterdam".
	Timezone string

	FullAddress string
	Country     string
}
