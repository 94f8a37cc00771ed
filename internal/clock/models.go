// Package clock computes city-local times, pairwise time differences and
// world-clock aggregations. Nothing is persisted; every call recomputes
// from the current instant.
package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Clock errors.
var (
	ErrUnknownTimezone = errors.New("unknown timezone identifier")
	ErrNoCities        = errors.New("no cities provided")
	ErrAllCitiesFailed = errors.New("no city could be resolved")
)

// CityError marks a failure attributable to a single city. Its message is
// safe to show to the caller.
type CityError struct {
	// City is the input city name.
	City string

	// Timezone is set when resolution succeeded but the identifier was
	// not loadable.
	Timezone string

	// Err is the underlying error.
	Err error
}

func (e *CityError) Error() string {
	if errors.Is(e.Err, ErrUnknownTimezone) {
		return fmt.Sprintf("Unknown timezone '%s' for city '%s'", e.Timezone, e.City)
	}
	return fmt.Sprintf("Could not determine timezone for '%s'. Please check the city name and try again.", e.City)
}

func (e *CityError) Unwrap() error {
	return e.Err
}

// AllFailedError reports a world-clock call in which every city failed.
type AllFailedError struct {
	// Errors holds one message per failed city.
	Errors []string
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("Could not get time for any cities. Errors: %s",
		strings.Join(e.Errors, "; "))
}

func (e *AllFailedError) Unwrap() error {
	return ErrAllCitiesFailed
}

// TimeResult is a resolved current-time answer for one city.
type TimeResult struct {
	Report string

	City     string
	Timezone string

	// LocalTime carries the city's zone; UTCTime is the same instant in UTC.
	LocalTime time.Time
	UTCTime   time.Time

	// FormattedTime is the local time as "2006-01-02 15:04:05".
	FormattedTime string

	// DayOfWeek is the local weekday name.
	DayOfWeek string

	// UTCOffset is the local offset as ±HHMM.
	UTCOffset string
}

// DifferenceResult is a pairwise time-difference answer.
type DifferenceResult struct {
	Report string

	City1 string
	City2 string

	Timezone1 string
	Timezone2 string

	// Time1 and Time2 are the same UTC instant rendered in each zone.
	Time1 time.Time
	Time2 time.Time

	// DifferenceHours is offset(city1) minus offset(city2) in fractional
	// hours; positive means city1 is ahead.
	DifferenceHours float64
}

// WorldClockEntry is one successfully resolved city in a world clock.
type WorldClockEntry struct {
	City     string
	Time     string
	Timezone string
	Day      string
}

// WorldClockResult aggregates per-city times and per-city failures.
type WorldClockResult struct {
	Report string

	// Results holds successes in input order.
	Results []WorldClockEntry

	// Errors holds one message per failed city.
	Errors []string

	TotalCities      int
	SuccessfulCities int
}
