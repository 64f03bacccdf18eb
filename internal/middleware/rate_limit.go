package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/forkpoint/forkpoint-service/internal/server"
)

// RateLimitMiddleware throttles abuse-prone endpoints (credential
// endpoints, mainly) and records limit hits as custom telemetry
// events.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns an in-memory, per-IP rate limiter allowing the given
// number of requests per second with a matching burst.
func (r *RateLimitMiddleware) Limit(perSecond float64) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(perSecond),
			Burst: int(perSecond),
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}

// RecordRateLimitHit emits a custom event so limit pressure is visible
// in APM.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
