package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/sqlerr"
)

// GlobalMiddlewares groups middleware applied to every route plus the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// statusForKind maps the transport-free error taxonomy onto HTTP
// status codes. This is the only place that mapping lives.
func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindAuth:
		return http.StatusUnauthorized
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the JSON error envelope every failed request gets.
type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger emits one structured log line per request, with
// severity based on status.
//
// When a handler returns an error the final status has not been
// written yet, so it is derived from the error the same way the global
// error handler will.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			if v.Error != nil {
				var appErr *errs.Error
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &appErr) {
					statusCode = statusForKind(appErr.Kind)
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			log := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = log.Error().Err(v.Error)
			case statusCode >= 400:
				e = log.Warn()
			default:
				e = log.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware, turning panics
// into 500 responses instead of crashing the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the HTTP server.
// Every error a handler or middleware returns ends up here and is
// translated into the JSON error envelope.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var appErr *errs.Error
	if !errors.As(err, &appErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			// The main echo error worth translating is the route 404;
			// everything else keeps echo's status with our envelope.
			switch echoErr.Code {
			case http.StatusNotFound:
				err = errs.NotFound("route not found")
			case http.StatusMethodNotAllowed:
				err = errs.NotFound("route not found").WithCode("METHOD_NOT_ALLOWED")
			case http.StatusTooManyRequests:
				err = errs.Validation("too many requests").WithCode("RATE_LIMITED")
			default:
				err = errs.Internal()
			}
		} else {
			// Anything unclassified is most likely a driver error that
			// escaped a repository.
			err = sqlerr.HandleError(err)
		}
		errors.As(err, &appErr)
	}

	status := statusForKind(appErr.Kind)
	// Rate limiting keeps its true status even though the taxonomy has
	// no dedicated kind for it.
	if appErr.Code == "RATE_LIMITED" {
		status = http.StatusTooManyRequests
	}

	log := GetLogger(c)
	var e *zerolog.Event
	if status >= 500 {
		e = log.Error().Stack().Err(originalErr)
	} else {
		e = log.Warn()
	}
	e.
		Int("status", status).
		Str("error_code", appErr.Code).
		Msg(appErr.Message)

	if !c.Response().Committed {
		_ = c.JSON(status, errorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Status:  status,
			Errors:  appErr.Errors,
		})
	}
}
