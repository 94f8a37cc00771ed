package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/happychuks/ai-weather-time-agent/internal/api/response"
	"github.com/happychuks/ai-weather-time-agent/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version       string
	buildTime     string
	registry      *resilience.Registry
	weatherSource string
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, weatherSource string) *OpsHandler {
	return &OpsHandler{
		version:       version,
		buildTime:     buildTime,
		registry:      registry,
		weatherSource: weatherSource,
	}
}

type healthResponse struct {
	Status  string         `json:"status"`
	Time    time.Time      `json:"time"`
	Details map[string]any `json:"details,omitempty"`
}

type providerStatus struct {
	Provider      string     `json:"provider"`
	Status        string     `json:"status"`
	CircuitState  string     `json:"circuit_state"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

type systemStatusResponse struct {
	Status        string           `json:"status"`
	Time          time.Time        `json:"time"`
	WeatherSource string           `json:"weather_source"`
	Providers     []providerStatus `json:"providers"`
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. All providers
// are reachable lazily per request, so readiness matches liveness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	})
}

// SystemStatus handles GET /v1/ops/status - provider health and the active
// weather source.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	overall := "ok"
	providers := make([]providerStatus, 0)

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			status := "ok"
			if !ph.IsHealthy() {
				status = "degraded"
				overall = "degraded"
			}
			providers = append(providers, providerStatus{
				Provider:      ph.Name,
				Status:        status,
				CircuitState:  circuitStateName(ph.CircuitState),
				LastSuccessAt: ph.LastSuccessAt,
				LastFailureAt: ph.LastFailureAt,
				LastError:     ph.LastError,
			})
		}
	}

	response.JSON(w, r, http.StatusOK, systemStatusResponse{
		Status:        overall,
		Time:          time.Now().UTC(),
		WeatherSource: h.weatherSource,
		Providers:     providers,
	})
}

func circuitStateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}
