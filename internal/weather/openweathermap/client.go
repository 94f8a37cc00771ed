// Package openweathermap provides a client for the OpenWeatherMap API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/happychuks/ai-weather-time-agent/internal/provider/resilience"
	"github.com/happychuks/ai-weather-time-agent/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// forecastsPerDay is how many 3-hour entries the forecast endpoint
	// emits per day; one entry per day is sampled from it.
	forecastsPerDay = 8
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client keyed by city name.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentWeather fetches current conditions for a city.
func (c *Client) CurrentWeather(ctx context.Context, city string, units weather.Units) (*weather.Reading, error) {
	reqURL := fmt.Sprintf("%s/weather?q=%s&units=%s&lang=en&appid=%s",
		c.baseURL, url.QueryEscape(city), apiUnits(units), c.apiKey)

	body, err := c.get(ctx, reqURL, fmt.Sprintf(
		"Failed to fetch weather data for '%s'. Please check the city name and try again.", city))
	if err != nil {
		return nil, err
	}

	var owmResp currentWeatherResponse
	if err := json.Unmarshal(body, &owmResp); err != nil {
		return nil, c.parseError(err)
	}

	// The payload must carry main and weather blocks; wind is optional.
	if owmResp.Main == nil || len(owmResp.Weather) == 0 {
		return nil, c.parseError(fmt.Errorf("missing main/weather blocks"))
	}

	reading := &weather.Reading{
		Temperature: owmResp.Main.Temp,
		FeelsLike:   owmResp.Main.FeelsLike,
		Condition:   owmResp.Weather[0].Description,
		Humidity:    owmResp.Main.Humidity,
		Pressure:    owmResp.Main.Pressure,
		Visibility:  float64(owmResp.Visibility),
		Units:       units,
	}
	if owmResp.Wind != nil {
		reading.WindSpeed = owmResp.Wind.Speed
	}

	c.recordSuccess()
	return reading, nil
}

// Forecast fetches a daily forecast for a city by sampling the provider's
// 3-hour series, one entry per day.
func (c *Client) Forecast(ctx context.Context, city string, units weather.Units, days int) ([]weather.ForecastEntry, error) {
	cnt := days * forecastsPerDay
	if cnt > 40 {
		cnt = 40 // free tier maximum
	}

	reqURL := fmt.Sprintf("%s/forecast?q=%s&units=%s&lang=en&cnt=%d&appid=%s",
		c.baseURL, url.QueryEscape(city), apiUnits(units), cnt, c.apiKey)

	body, err := c.get(ctx, reqURL, fmt.Sprintf("Failed to fetch forecast data for '%s'", city))
	if err != nil {
		return nil, err
	}

	var owmResp forecastResponse
	if err := json.Unmarshal(body, &owmResp); err != nil {
		return nil, c.parseError(err)
	}

	if len(owmResp.List) == 0 {
		return nil, c.parseError(fmt.Errorf("missing forecast list"))
	}

	entries := make([]weather.ForecastEntry, 0, days)
	for i := 0; i < len(owmResp.List) && len(entries) < days; i += forecastsPerDay {
		item := owmResp.List[i]
		if item.Main == nil || len(item.Weather) == 0 {
			return nil, c.parseError(fmt.Errorf("missing main/weather blocks in forecast entry"))
		}

		date := item.DtTxt
		if idx := strings.IndexByte(date, ' '); idx > 0 {
			date = date[:idx]
		}

		entries = append(entries, weather.ForecastEntry{
			Date:        date,
			Temperature: item.Main.Temp,
			Condition:   item.Weather[0].Description,
		})
	}

	c.recordSuccess()
	return entries, nil
}

// get executes the request and returns the body, mapping transport and
// status failures to weather errors with a caller-safe fallback message.
func (c *Client) get(ctx context.Context, reqURL, fallbackMessage string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		c.logger.Error().Err(err).Msg("weather request failed")
		return nil, &weather.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  fallbackMessage,
			Err:      weather.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure(err)
		return nil, &weather.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  fallbackMessage,
			Err:      weather.ErrProviderUnavailable,
		}
	}

	if resp.StatusCode != http.StatusOK {
		// The provider returns a message field on errors; pass it through
		// when present.
		message := fallbackMessage
		var apiErr apiErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			message = apiErr.Message
		}

		werr := &weather.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  message,
			Err:      weather.ErrProviderUnavailable,
		}
		c.recordFailure(werr)
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("weather provider returned error status")
		return nil, werr
	}

	return body, nil
}

// parseError wraps a structurally invalid payload; this is a parse failure,
// not a transport failure, and is logged as such.
func (c *Client) parseError(err error) error {
	c.logger.Error().Err(err).Msg("failed to parse weather payload")
	return &weather.Error{
		Provider: ProviderName,
		Code:     "PARSE_FAILED",
		Message:  "Failed to parse weather data",
		Err:      weather.ErrMalformedPayload,
	}
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

// apiUnits maps the units enum to the provider's query parameter.
// OpenWeatherMap calls Kelvin "standard".
func apiUnits(units weather.Units) string {
	if units == weather.UnitsKelvin {
		return "standard"
	}
	return string(units)
}

// OpenWeatherMap API response structures. Required blocks are pointers so
// missing structure is detectable as a parse error.

type currentWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  *struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}
