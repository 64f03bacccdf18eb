package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/server"
)

// HealthHandler exposes the endpoint load balancers and uptime
// monitors use to verify the service is alive and its dependencies
// are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

func (h *HealthHandler) recordCheckError(check, errType string, elapsed time.Duration, message string) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       errType,
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    message,
		},
	)
}

// CheckHealth reports overall status plus per-dependency checks for
// the database and redis.
//
// The database is a hard dependency: a failed ping yields 503. Redis
// only backs background jobs, so a redis failure is reported in the
// body but the service still answers 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	log := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		log.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")
		h.recordCheckError("database", "database_unhealthy", time.Since(dbStart), err.Error())
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	if h.server.Redis != nil {
		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			log.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")
			h.recordCheckError("redis", "redis_unhealthy", time.Since(redisStart), err.Error())
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		log.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		h.recordCheckError("overall", "overall_unhealthy", time.Since(start), "")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	log.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
