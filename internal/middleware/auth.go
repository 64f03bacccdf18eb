package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

// Authenticator resolves a bearer token to a user. Implemented by the
// auth service.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// AuthMiddleware enforces bearer token authentication on routes.
type AuthMiddleware struct {
	authn Authenticator
}

func NewAuthMiddleware(authn Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authn: authn,
	}
}

// bearerToken extracts the token from the Authorization header.
// Returns "" when the header is missing or not a bearer scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return header[len(prefix):]
}

// RequireAuth rejects requests without a valid, still registered
// token. On success the resolved user and the raw token are stored in
// the Echo context for handlers.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return errs.Auth("missing or invalid authorization header")
		}

		user, err := auth.authn.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(UserKey, user)
		c.Set(TokenKey, token)
		return next(c)
	}
}

// OptionalAuth resolves the caller when a valid token is presented but
// lets anonymous requests through. Used on public listings that show
// extra detail to admins.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if user, err := auth.authn.Authenticate(c.Request().Context(), token); err == nil {
				c.Set(UserKey, user)
				c.Set(TokenKey, token)
			}
		}
		return next(c)
	}
}
