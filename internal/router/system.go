package router

import (
	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// business surface.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint, used by load balancers and monitors.
	e.GET("/status", h.Health.CheckHealth)
}
