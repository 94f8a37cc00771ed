package weather_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happychuks/ai-weather-time-agent/internal/weather"
)

// fakeSource is a canned weather source for testing.
type fakeSource struct {
	reading *weather.Reading
	entries []weather.ForecastEntry
	err     error
}

func (f *fakeSource) CurrentWeather(_ context.Context, _ string, _ weather.Units) (*weather.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reading, nil
}

func (f *fakeSource) Forecast(_ context.Context, _ string, _ weather.Units, _ int) ([]weather.ForecastEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeSource) Name() string { return "fake" }

func newService(source weather.Source) *weather.Service {
	return weather.NewService(weather.ServiceConfig{
		Source: source,
		Logger: zerolog.Nop(),
	})
}

func TestService_CurrentWeather_Report(t *testing.T) {
	source := &fakeSource{reading: &weather.Reading{
		Temperature: 18.5,
		FeelsLike:   17.8,
		Condition:   "clear sky",
		Humidity:    72,
		WindSpeed:   4.5,
		Pressure:    1015,
		Visibility:  10000,
		Units:       weather.UnitsMetric,
	}}

	report, err := newService(source).CurrentWeather(context.Background(), "amsterdam", weather.UnitsMetric)
	require.NoError(t, err)

	assert.Contains(t, report.Report, "Current weather in Amsterdam:")
	assert.Contains(t, report.Report, "Temperature: 18.5°C (feels like 17.8°C)")
	assert.Contains(t, report.Report, "Condition: Clear Sky")
	assert.Contains(t, report.Report, "Humidity: 72%")
	assert.Contains(t, report.Report, "Wind: 4.5 m/s")
	assert.Contains(t, report.Report, "Visibility: 10.0 km")
	assert.Contains(t, report.Report, "Pressure: 1015 hPa")
	assert.NotContains(t, report.Report, "Demo Data")
}

func TestService_CurrentWeather_OmitsMissingOptionals(t *testing.T) {
	source := &fakeSource{reading: &weather.Reading{
		Temperature: 25,
		FeelsLike:   26,
		Condition:   "sunny",
		Humidity:    40,
		WindSpeed:   2,
		Units:       weather.UnitsImperial,
	}}

	report, err := newService(source).CurrentWeather(context.Background(), "phoenix", weather.UnitsImperial)
	require.NoError(t, err)

	assert.Contains(t, report.Report, "25.0°F")
	assert.Contains(t, report.Report, "mph")
	assert.NotContains(t, report.Report, "Visibility")
	assert.NotContains(t, report.Report, "Pressure")
}

func TestService_CurrentWeather_SourceError(t *testing.T) {
	source := &fakeSource{err: &weather.Error{
		Provider: "fake",
		Code:     "HTTP_404",
		Message:  "city not found",
		Err:      weather.ErrProviderUnavailable,
	}}

	_, err := newService(source).CurrentWeather(context.Background(), "nowhere", weather.UnitsMetric)
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestService_Forecast_Report(t *testing.T) {
	source := &fakeSource{entries: []weather.ForecastEntry{
		{Date: "2026-08-25", Temperature: 21.3, Condition: "scattered clouds"},
		{Date: "2026-08-26", Temperature: 19.8, Condition: "light rain"},
	}}

	report, err := newService(source).Forecast(context.Background(), "berlin", weather.UnitsMetric, 2)
	require.NoError(t, err)

	assert.Contains(t, report.Report, "Weather forecast for Berlin:")
	assert.Contains(t, report.Report, "Day 1 (2026-08-25): 21.3°C, Scattered Clouds")
	assert.Contains(t, report.Report, "Day 2 (2026-08-26): 19.8°C, Light Rain")
	assert.Len(t, report.Entries, 2)
}

func TestOfflineSource_CurrentWeather(t *testing.T) {
	source := weather.NewOfflineSource()

	tests := []string{"london", "London", "LONDON"}
	for _, city := range tests {
		t.Run(city, func(t *testing.T) {
			reading, err := source.CurrentWeather(context.Background(), city, weather.UnitsMetric)
			require.NoError(t, err)
			assert.Equal(t, 15.8, reading.Temperature)
			assert.Equal(t, "overcast", reading.Condition)
			assert.True(t, reading.Demo)
		})
	}
}

func TestOfflineSource_CurrentWeather_Unsupported(t *testing.T) {
	source := weather.NewOfflineSource()

	_, err := source.CurrentWeather(context.Background(), "Reykjavik", weather.UnitsMetric)
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrCityNotSupported)

	var werr *weather.Error
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, werr.Message, "Reykjavik")
	assert.Contains(t, werr.Message, "london")
}

func TestOfflineSource_Forecast_AlwaysErrors(t *testing.T) {
	source := weather.NewOfflineSource()

	_, err := source.Forecast(context.Background(), "london", weather.UnitsMetric, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrNoAPIKey)

	var werr *weather.Error
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, werr.Message, "OPENWEATHER_API_KEY")
}

func TestOfflineSource_DemoReport(t *testing.T) {
	service := newService(weather.NewOfflineSource())

	report, err := service.CurrentWeather(context.Background(), "Sydney", weather.UnitsMetric)
	require.NoError(t, err)

	assert.Contains(t, report.Report, "Current weather in Sydney (Demo Data):")
	assert.Contains(t, report.Report, "Note: This is demo data.")
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		input    string
		expected weather.Units
	}{
		{"metric", weather.UnitsMetric},
		{"imperial", weather.UnitsImperial},
		{"kelvin", weather.UnitsKelvin},
		{"IMPERIAL", weather.UnitsImperial},
		{" kelvin ", weather.UnitsKelvin},
		{"bogus", weather.UnitsMetric},
		{"", weather.UnitsMetric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, weather.ParseUnits(tt.input))
		})
	}
}

func TestUnits_Symbols(t *testing.T) {
	assert.Equal(t, "°C", weather.UnitsMetric.TempSymbol())
	assert.Equal(t, "°F", weather.UnitsImperial.TempSymbol())
	assert.Equal(t, "K", weather.UnitsKelvin.TempSymbol())
	assert.Equal(t, "m/s", weather.UnitsMetric.SpeedUnit())
	assert.Equal(t, "mph", weather.UnitsImperial.SpeedUnit())
	assert.Equal(t, "m/s", weather.UnitsKelvin.SpeedUnit())
}
