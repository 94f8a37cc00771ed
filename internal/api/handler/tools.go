// Package handler provides HTTP handlers for the tool service API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/happychuks/ai-weather-time-agent/internal/api/response"
	"github.com/happychuks/ai-weather-time-agent/internal/tools"
)

// toolRequest is the union of all tool arguments. Each tool reads the
// fields it needs; absent fields take their zero value and are validated
// or defaulted by the toolbox.
type toolRequest struct {
	City   string   `json:"city"`
	City1  string   `json:"city1"`
	City2  string   `json:"city2"`
	Cities []string `json:"cities"`
	Units  string   `json:"units"`
	Format string   `json:"format"`

	// Days is deliberately untyped; non-integer values fall back to the
	// default day count instead of erroring.
	Days any `json:"days"`
}

// ToolsHandler dispatches tool invocations to the toolbox.
type ToolsHandler struct {
	toolbox *tools.Toolbox
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(toolbox *tools.Toolbox) *ToolsHandler {
	return &ToolsHandler{toolbox: toolbox}
}

// Invoke handles POST /v1/tools/{tool}. Tool-level failures are reported
// inside the envelope with HTTP 200; only transport-level problems (unknown
// tool, unreadable body) change the status code.
func (h *ToolsHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	tool := chi.URLParam(r, "tool")

	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.JSON(w, r, http.StatusBadRequest, &tools.Result{
			Status:       tools.StatusError,
			ErrorMessage: "Request body must be a JSON object.",
		})
		return
	}

	ctx := r.Context()

	var result *tools.Result
	switch tool {
	case "get_weather":
		result = h.toolbox.GetWeather(ctx, req.City, req.Units)
	case "get_weather_forecast":
		result = h.toolbox.GetWeatherForecast(ctx, req.City, req.Days, req.Units)
	case "get_current_time":
		result = h.toolbox.GetCurrentTime(ctx, req.City, req.Format)
	case "get_time_difference":
		result = h.toolbox.GetTimeDifference(ctx, req.City1, req.City2)
	case "get_world_clock":
		result = h.toolbox.GetWorldClock(ctx, req.Cities)
	case "get_city_info":
		result = h.toolbox.GetCityInfo(ctx, req.City)
	default:
		response.JSON(w, r, http.StatusNotFound, &tools.Result{
			Status:       tools.StatusError,
			ErrorMessage: fmt.Sprintf("Unknown tool '%s'.", tool),
		})
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}
