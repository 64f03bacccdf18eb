package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/logger"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
)

const (
	// UserKey stores the authenticated model.User in Echo context.
	UserKey = "user"

	// TokenKey stores the raw bearer token the user presented, needed
	// by logout to know which token to revoke.
	TokenKey = "token"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request id,
// method, path, client ip, and trace correlation, and stores it in
// both the Echo context and the Go request context.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. RequestID middleware
// must run before it; auth middleware runs after, so user fields are
// attached at log time instead (see GetUserID usage in global.go).
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

type loggerCtxKey struct{}

// GetUser returns the authenticated user stored by auth middleware.
func GetUser(c echo.Context) (model.User, bool) {
	user, ok := c.Get(UserKey).(model.User)
	return user, ok
}

// GetToken returns the raw bearer token stored by auth middleware.
func GetToken(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}

// GetUserID returns the authenticated user's id as a string for log
// correlation, or "" for anonymous requests.
func GetUserID(c echo.Context) string {
	if user, ok := GetUser(c); ok {
		return strconv.FormatInt(user.ID, 10)
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context,
// falling back to a no-op logger when EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if log, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return log
	}

	log := zerolog.Nop()
	return &log
}

// LoggerFromContext retrieves the request-scoped logger from a Go
// context, for code below the handler layer that only sees
// context.Context.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if log, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return log
	}

	log := zerolog.Nop()
	return &log
}
