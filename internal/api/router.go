// Package api provides the HTTP API for the weather and time tool service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/happychuks/ai-weather-time-agent/internal/api/handler"
	"github.com/happychuks/ai-weather-time-agent/internal/api/middleware"
	"github.com/happychuks/ai-weather-time-agent/internal/provider/resilience"
	"github.com/happychuks/ai-weather-time-agent/internal/tools"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	BuildTime     string
	Logger        zerolog.Logger
	ServiceName   string
	Metrics       *middleware.Metrics
	Toolbox       *tools.Toolbox
	Registry      *resilience.Registry
	WeatherSource string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weather-time-agent"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction

	toolsHandler := handler.NewToolsHandler(cfg.Toolbox)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.WeatherSource)

	toolRateLimit := middleware.RateLimitByIP(middleware.ToolRateLimit)         // 60 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Tool invocations - every call may fan out to external providers
		r.Route("/tools", func(r chi.Router) {
			r.Use(toolRateLimit)
			r.Post("/{tool}", toolsHandler.Invoke)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})
	})

	return r
}
