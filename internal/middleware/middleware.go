// Package middleware contains the HTTP middleware stack: request id
// generation, request-scoped logging, tracing, rate limiting, CORS,
// bearer token authentication, and the global error handler that maps
// the error taxonomy onto HTTP responses.
package middleware

import (
	"github.com/forkpoint/forkpoint-service/internal/server"
)

// Middlewares bundles every middleware group for the router to wire.
type Middlewares struct {
	Global    *GlobalMiddlewares
	Auth      *AuthMiddleware
	Tracing   *TracingMiddleware
	RateLimit *RateLimitMiddleware
	Context   *ContextEnhancer
}

// NewMiddlewares constructs the middleware bundle.
func NewMiddlewares(s *server.Server, authn Authenticator) *Middlewares {
	return &Middlewares{
		Global:    NewGlobalMiddlewares(s),
		Auth:      NewAuthMiddleware(authn),
		Tracing:   NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit: NewRateLimitMiddleware(s),
		Context:   NewContextEnhancer(s),
	}
}
