package clock_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happychuks/ai-weather-time-agent/internal/clock"
)

// fakeResolver maps lowercase city names to timezone identifiers.
type fakeResolver struct {
	zones map[string]string
	calls int
}

func (f *fakeResolver) ResolveTimezone(_ context.Context, city string) (string, error) {
	f.calls++
	tz, ok := f.zones[strings.ToLower(city)]
	if !ok {
		return "", errors.New("no match")
	}
	return tz, nil
}

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

// 2026-08-25 12:00 UTC is a Tuesday with DST active in Europe and the US.
var testInstant = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func newTestService(resolver clock.TimezoneResolver) *clock.Service {
	return clock.NewService(clock.ServiceConfig{
		Resolver: resolver,
		Clock:    fixedClock{now: testInstant},
		Logger:   zerolog.Nop(),
	})
}

func worldResolver() *fakeResolver {
	return &fakeResolver{zones: map[string]string{
		"amsterdam": "Europe/Amsterdam",
		"london":    "Europe/London",
		"new york":  "America/New_York",
		"kolkata":   "Asia/Kolkata",
		"tokyo":     "Asia/Tokyo",
	}}
}

func TestService_CurrentTime_Standard(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.CurrentTime(context.Background(), "amsterdam", clock.FormatStandard)
	require.NoError(t, err)

	assert.Equal(t, "The current time in Amsterdam is 2026-08-25 14:00:00 (Europe/Amsterdam)", result.Report)
	assert.Equal(t, "Europe/Amsterdam", result.Timezone)
	assert.Equal(t, "2026-08-25 14:00:00", result.FormattedTime)
	assert.Equal(t, "Tuesday", result.DayOfWeek)
	assert.Equal(t, "+0200", result.UTCOffset)
	assert.True(t, result.LocalTime.Equal(result.UTCTime))
	assert.Equal(t, testInstant, result.UTCTime)
}

func TestService_CurrentTime_Detailed(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.CurrentTime(context.Background(), "new york", clock.FormatDetailed)
	require.NoError(t, err)

	assert.Contains(t, result.Report, "Time information for New York:")
	assert.Contains(t, result.Report, "Local time: Tuesday, August 25, 2026 at 08:00:00")
	assert.Contains(t, result.Report, "Timezone: America/New_York")
	assert.Contains(t, result.Report, "UTC offset: UTC-04:00")
	assert.Contains(t, result.Report, "UTC time: 2026-08-25 12:00:00")
}

func TestService_CurrentTime_UTC(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.CurrentTime(context.Background(), "amsterdam", clock.FormatUTC)
	require.NoError(t, err)

	assert.Contains(t, result.Report, "Time in Amsterdam:")
	assert.Contains(t, result.Report, "Local: 2026-08-25 14:00:00 (+0200)")
	assert.Contains(t, result.Report, "UTC: 2026-08-25 12:00:00")
}

func TestService_CurrentTime_UnresolvableCity(t *testing.T) {
	service := newTestService(worldResolver())

	_, err := service.CurrentTime(context.Background(), "Atlantis", clock.FormatStandard)
	require.Error(t, err)

	var cerr *clock.CityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Atlantis", cerr.City)
	assert.Contains(t, err.Error(), "Could not determine timezone for 'Atlantis'")
}

func TestService_CurrentTime_UnloadableTimezone(t *testing.T) {
	resolver := &fakeResolver{zones: map[string]string{"nowhere": "Not/AZone"}}
	service := newTestService(resolver)

	_, err := service.CurrentTime(context.Background(), "nowhere", clock.FormatStandard)
	require.Error(t, err)
	assert.ErrorIs(t, err, clock.ErrUnknownTimezone)
	assert.Contains(t, err.Error(), "Unknown timezone 'Not/AZone' for city 'nowhere'")
}

func TestService_TimeDifference(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.TimeDifference(context.Background(), "amsterdam", "new york")
	require.NoError(t, err)

	assert.Equal(t, 6.0, result.DifferenceHours)
	assert.Contains(t, result.Report, "Amsterdam is 6 hours ahead of New York.")
	assert.Contains(t, result.Report, "Current time in Amsterdam: 2026-08-25 14:00:00 CEST")
	assert.Contains(t, result.Report, "Current time in New York: 2026-08-25 08:00:00 EDT")
	assert.Equal(t, "Europe/Amsterdam", result.Timezone1)
	assert.Equal(t, "America/New_York", result.Timezone2)
}

func TestService_TimeDifference_Antisymmetric(t *testing.T) {
	service := newTestService(worldResolver())

	forward, err := service.TimeDifference(context.Background(), "amsterdam", "new york")
	require.NoError(t, err)
	backward, err := service.TimeDifference(context.Background(), "new york", "amsterdam")
	require.NoError(t, err)

	assert.Equal(t, forward.DifferenceHours, -backward.DifferenceHours)
	assert.Contains(t, backward.Report, "Amsterdam is 6 hours ahead of New York.")
}

func TestService_TimeDifference_FractionalOffset(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.TimeDifference(context.Background(), "kolkata", "amsterdam")
	require.NoError(t, err)

	assert.Equal(t, 3.5, result.DifferenceHours)
	assert.Contains(t, result.Report, "Kolkata is 3 hours and 30 minutes ahead of Amsterdam.")
}

func TestService_TimeDifference_SingularHour(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.TimeDifference(context.Background(), "amsterdam", "london")
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.DifferenceHours)
	assert.Contains(t, result.Report, "Amsterdam is 1 hour ahead of London.")
}

func TestService_TimeDifference_SameCityShortCircuits(t *testing.T) {
	resolver := &fakeResolver{zones: map[string]string{}}
	service := newTestService(resolver)

	result, err := service.TimeDifference(context.Background(), "Tokyo", "tokyo")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.DifferenceHours)
	assert.Contains(t, result.Report, "Both cities (Tokyo) are the same, so there is no time difference.")
	assert.Zero(t, resolver.calls)
}

func TestService_TimeDifference_FirstCityUnresolvable(t *testing.T) {
	service := newTestService(worldResolver())

	_, err := service.TimeDifference(context.Background(), "Atlantis", "london")
	require.Error(t, err)

	var cerr *clock.CityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Atlantis", cerr.City)
}

func TestService_WorldClock(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.WorldClock(context.Background(), []string{"amsterdam", "new york", "tokyo"})
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "Amsterdam", result.Results[0].City)
	assert.Equal(t, "2026-08-25 14:00:00", result.Results[0].Time)
	assert.Equal(t, "Tuesday", result.Results[0].Day)
	assert.Equal(t, "New York", result.Results[1].City)
	assert.Equal(t, "Tokyo", result.Results[2].City)
	assert.Equal(t, 3, result.TotalCities)
	assert.Equal(t, 3, result.SuccessfulCities)
	assert.Empty(t, result.Errors)

	assert.Contains(t, result.Report, "World Clock:")
	assert.Contains(t, result.Report, "Amsterdam: 2026-08-25 14:00:00 (Tuesday)")
	assert.NotContains(t, result.Report, "Errors:")
}

func TestService_WorldClock_PartialFailure(t *testing.T) {
	service := newTestService(worldResolver())

	result, err := service.WorldClock(context.Background(), []string{"new york", "NotACity123"})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "New York", result.Results[0].City)
	assert.Contains(t, result.Errors[0], "NotACity123")
	assert.Equal(t, 2, result.TotalCities)
	assert.Equal(t, 1, result.SuccessfulCities)
	assert.Contains(t, result.Report, "Errors: NotACity123:")
}

func TestService_WorldClock_AllFail(t *testing.T) {
	service := newTestService(worldResolver())

	_, err := service.WorldClock(context.Background(), []string{"Nowhere", "Neverland"})
	require.Error(t, err)
	assert.ErrorIs(t, err, clock.ErrAllCitiesFailed)
	assert.Contains(t, err.Error(), "Could not get time for any cities.")
	assert.Contains(t, err.Error(), "Nowhere")
	assert.Contains(t, err.Error(), "Neverland")
}

func TestService_WorldClock_Empty(t *testing.T) {
	service := newTestService(worldResolver())

	_, err := service.WorldClock(context.Background(), nil)
	assert.ErrorIs(t, err, clock.ErrNoCities)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected clock.Format
	}{
		{"standard", clock.FormatStandard},
		{"detailed", clock.FormatDetailed},
		{"utc", clock.FormatUTC},
		{"UTC", clock.FormatUTC},
		{" detailed ", clock.FormatDetailed},
		{"bogus", clock.FormatStandard},
		{"", clock.FormatStandard},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, clock.ParseFormat(tt.input))
		})
	}
}
