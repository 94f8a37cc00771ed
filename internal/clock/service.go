package clock

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format selects the rendering of a current-time report.
type Format string

const (
	FormatStandard Format = "standard"
	FormatDetailed Format = "detailed"
	FormatUTC      Format = "utc"
)

// ParseFormat normalizes a format string. Unrecognized values silently fall
// back to standard; this is never a caller-facing error.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatDetailed:
		return FormatDetailed
	case FormatUTC:
		return FormatUTC
	default:
		return FormatStandard
	}
}

// TimezoneResolver maps a city name to an IANA timezone identifier.
type TimezoneResolver interface {
	ResolveTimezone(ctx context.Context, city string) (string, error)
}

// Clock supplies the current instant. The default reads the system clock;
// tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ServiceConfig holds configuration for the time service.
type ServiceConfig struct {
	// Resolver maps cities to timezones.
	Resolver TimezoneResolver

	// Clock is the time source (optional, defaults to the system clock).
	Clock Clock

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service answers time queries for cities worldwide.
type Service struct {
	resolver TimezoneResolver
	clock    Clock
	logger   zerolog.Logger
}

// NewService creates a new time service.
func NewService(cfg ServiceConfig) *Service {
	clk := cfg.Clock
	if clk == nil {
		clk = systemClock{}
	}
	return &Service{
		resolver: cfg.Resolver,
		clock:    clk,
		logger:   cfg.Logger,
	}
}

// CurrentTime reports the current time in a city. Local and UTC instants
// come from a single clock read.
func (s *Service) CurrentTime(ctx context.Context, city string, format Format) (*TimeResult, error) {
	loc, tz, err := s.loadCityZone(ctx, city)
	if err != nil {
		return nil, err
	}

	utcNow := s.clock.Now().UTC()
	now := utcNow.In(loc)

	var report string
	switch format {
	case FormatDetailed:
		report = formatDetailedTime(city, now, tz, utcNow)
	case FormatUTC:
		report = formatUTCTime(city, now, utcNow)
	default:
		report = formatStandardTime(city, now, tz)
	}

	return &TimeResult{
		Report:        report,
		City:          city,
		Timezone:      tz,
		LocalTime:     now,
		UTCTime:       utcNow,
		FormattedTime: now.Format("2006-01-02 15:04:05"),
		DayOfWeek:     now.Format("Monday"),
		UTCOffset:     now.Format("-0700"),
	}, nil
}

// TimeDifference reports the current offset between two cities. Identical
// city names short-circuit to a zero difference without resolving anything.
func (s *Service) TimeDifference(ctx context.Context, city1, city2 string) (*DifferenceResult, error) {
	if strings.EqualFold(strings.TrimSpace(city1), strings.TrimSpace(city2)) {
		now := s.clock.Now().UTC()
		return &DifferenceResult{
			Report: fmt.Sprintf("Both cities (%s) are the same, so there is no time difference.",
				titleCase(city1)),
			City1: city1,
			City2: city2,
			Time1: now,
			Time2: now,
		}, nil
	}

	loc1, tz1, err := s.loadCityZone(ctx, city1)
	if err != nil {
		return nil, err
	}
	loc2, tz2, err := s.loadCityZone(ctx, city2)
	if err != nil {
		return nil, err
	}

	// Both zones are evaluated at the same UTC instant so active DST
	// adjustments on either side are reflected in the offsets.
	utcNow := s.clock.Now().UTC()
	time1 := utcNow.In(loc1)
	time2 := utcNow.In(loc2)

	_, off1 := time1.Zone()
	_, off2 := time2.Zone()
	difference := float64(off1-off2) / 3600

	var report string
	if difference == 0 {
		report = fmt.Sprintf("%s and %s are in the same time zone.",
			titleCase(city1), titleCase(city2))
	} else {
		ahead, behind := titleCase(city1), titleCase(city2)
		if difference < 0 {
			ahead, behind = behind, ahead
		}
		report = fmt.Sprintf("%s is %s ahead of %s.",
			ahead, formatHourDelta(math.Abs(difference)), behind)
	}
	report += fmt.Sprintf("\nCurrent time in %s: %s",
		titleCase(city1), time1.Format("2006-01-02 15:04:05 MST"))
	report += fmt.Sprintf("\nCurrent time in %s: %s",
		titleCase(city2), time2.Format("2006-01-02 15:04:05 MST"))

	return &DifferenceResult{
		Report:          report,
		City1:           city1,
		City2:           city2,
		Timezone1:       tz1,
		Timezone2:       tz2,
		Time1:           time1,
		Time2:           time2,
		DifferenceHours: difference,
	}, nil
}

// WorldClock reports the current time for multiple cities. Cities resolve
// sequentially and independently; one city failing never affects another.
// The call errors only when no city resolved at all.
func (s *Service) WorldClock(ctx context.Context, cities []string) (*WorldClockResult, error) {
	if len(cities) == 0 {
		return nil, ErrNoCities
	}

	results := make([]WorldClockEntry, 0, len(cities))
	cityErrors := make([]string, 0)

	for _, city := range cities {
		timeInfo, err := s.CurrentTime(ctx, city, FormatStandard)
		if err != nil {
			cityErrors = append(cityErrors, fmt.Sprintf("%s: %s", city, err.Error()))
			continue
		}
		results = append(results, WorldClockEntry{
			City:     titleCase(city),
			Time:     timeInfo.FormattedTime,
			Timezone: timeInfo.Timezone,
			Day:      timeInfo.DayOfWeek,
		})
	}

	if len(results) == 0 {
		return nil, &AllFailedError{Errors: cityErrors}
	}

	var b strings.Builder
	b.WriteString("World Clock:")
	for _, r := range results {
		fmt.Fprintf(&b, "\n%s: %s (%s)", r.City, r.Time, r.Day)
	}
	if len(cityErrors) > 0 {
		fmt.Fprintf(&b, "\n\nErrors: %s", strings.Join(cityErrors, "; "))
	}

	return &WorldClockResult{
		Report:           b.String(),
		Results:          results,
		Errors:           cityErrors,
		TotalCities:      len(cities),
		SuccessfulCities: len(results),
	}, nil
}

// loadCityZone resolves a city to a loadable time.Location. Failures come
// back as a CityError naming the city.
func (s *Service) loadCityZone(ctx context.Context, city string) (*time.Location, string, error) {
	tz, err := s.resolver.ResolveTimezone(ctx, city)
	if err != nil {
		s.logger.Debug().Err(err).Str("city", city).Msg("timezone resolution failed")
		return nil, "", &CityError{City: city, Err: err}
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Error().Err(err).Str("city", city).Str("timezone", tz).
			Msg("resolved timezone is not loadable")
		return nil, "", &CityError{City: city, Timezone: tz, Err: ErrUnknownTimezone}
	}

	return loc, tz, nil
}

func formatStandardTime(city string, now time.Time, tz string) string {
	return fmt.Sprintf("The current time in %s is %s (%s)",
		titleCase(city), now.Format("2006-01-02 15:04:05"), tz)
}

func formatDetailedTime(city string, now time.Time, tz string, utcNow time.Time) string {
	return fmt.Sprintf(`Time information for %s:
Local time: %s
Timezone: %s
UTC offset: UTC%s
UTC time: %s`,
		titleCase(city),
		now.Format("Monday, January 02, 2006 at 15:04:05"),
		tz,
		now.Format("-07:00"),
		utcNow.Format("2006-01-02 15:04:05"))
}

func formatUTCTime(city string, now, utcNow time.Time) string {
	return fmt.Sprintf(`Time in %s:
Local: %s (%s)
UTC: %s`,
		titleCase(city),
		now.Format("2006-01-02 15:04:05"),
		now.Format("-0700"),
		utcNow.Format("2006-01-02 15:04:05"))
}

// formatHourDelta renders a positive offset difference as whole hours, or
// hours and minutes when fractional, with singular/plural wording.
func formatHourDelta(hours float64) string {
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}

	if minutes == 0 {
		return fmt.Sprintf("%d %s", whole, pluralize("hour", whole))
	}
	return fmt.Sprintf("%d %s and %d %s",
		whole, pluralize("hour", whole), minutes, pluralize("minute", minutes))
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
