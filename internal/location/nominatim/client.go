// Package nominatim provides a client for the Nominatim geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/happychuks/ai-weather-time-agent/internal/location"
	"github.com/happychuks/ai-weather-time-agent/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// defaultUserAgent identifies the service; Nominatim rejects requests
	// without a meaningful User-Agent.
	defaultUserAgent = "ai-weather-time-agent/1.0"
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public instance).
	BaseURL string

	// UserAgent overrides the default User-Agent header (optional).
	UserAgent string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Nominatim geocoding client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPDoer
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Geocode resolves a city name to coordinates and a display address.
// Returns location.ErrNotFound when the provider has no match and
// location.ErrProviderUnavailable on transport or decode failures.
func (c *Client) Geocode(ctx context.Context, city string) (*location.Place, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("city", city).
		Msg("geocoding city")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("%w: %v", location.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: unexpected status code %d", location.ErrProviderUnavailable, resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("%w: decoding response: %v", location.ErrProviderUnavailable, err)
	}

	if len(results) == 0 {
		c.recordSuccess()
		return nil, location.ErrNotFound
	}

	place, err := results[0].toPlace()
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("%w: %v", location.ErrProviderUnavailable, err)
	}

	c.recordSuccess()
	c.logger.Debug().
		Str("city", city).
		Float64("lat", place.Coordinates.Lat).
		Float64("lon", place.Coordinates.Lon).
		Msg("geocoded city")

	return place, nil
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

// searchResult is a single entry of the Nominatim search response.
// Coordinates arrive as JSON strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r searchResult) toPlace() (*location.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", r.Lat, err)
	}

	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", r.Lon, err)
	}

	return &location.Place{
		Coordinates: location.Coordinates{Lat: lat, Lon: lon},
		DisplayName: r.DisplayName,
	}, nil
}
