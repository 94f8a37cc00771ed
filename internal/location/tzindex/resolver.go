// Package tzindex maps geographic coordinates to IANA timezone identifiers
// using an embedded dataset. Lookups are pure in-process computation.
package tzindex

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/happychuks/ai-weather-time-agent/internal/location"
)

// Resolver is a geographic timezone index.
type Resolver struct {
	finder tzf.F
}

// NewResolver builds the timezone index. Construction parses the embedded
// polygon dataset and should happen once at startup.
func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("building timezone index: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// TimezoneAt returns the IANA timezone identifier covering the point.
// Points with no zone (open ocean, polar regions) return
// location.ErrTimezoneNotFound.
func (r *Resolver) TimezoneAt(lat, lon float64) (string, error) {
	// tzf takes longitude first.
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", location.ErrTimezoneNotFound
	}
	return name, nil
}
