package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

type fakeAuthenticator struct {
	users map[string]model.User
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (model.User, error) {
	user, ok := f.users[token]
	if !ok {
		return model.User{}, errs.Auth("invalid token")
	}
	return user, nil
}

func newAuthContext(authorization string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer ", ""},
		{"bare token", "abc.def.ghi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(newAuthContext(tt.header)))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	user := model.User{ID: 7, Email: "kai@example.com"}
	authn := &fakeAuthenticator{users: map[string]model.User{"valid-token": user}}
	mw := NewAuthMiddleware(authn)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("valid token passes and populates context", func(t *testing.T) {
		c := newAuthContext("Bearer valid-token")
		require.NoError(t, mw.RequireAuth(next)(c))

		got, ok := GetUser(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "valid-token", GetToken(c))
		assert.Equal(t, "7", GetUserID(c))
	})

	t.Run("missing header rejected", func(t *testing.T) {
		err := mw.RequireAuth(next)(newAuthContext(""))
		assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		err := mw.RequireAuth(next)(newAuthContext("Bearer forged"))
		assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	})
}

func TestOptionalAuth(t *testing.T) {
	user := model.User{ID: 7}
	authn := &fakeAuthenticator{users: map[string]model.User{"valid-token": user}}
	mw := NewAuthMiddleware(authn)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("anonymous passes through", func(t *testing.T) {
		c := newAuthContext("")
		require.NoError(t, mw.OptionalAuth(next)(c))

		_, ok := GetUser(c)
		assert.False(t, ok)
		assert.Equal(t, "", GetUserID(c))
	})

	t.Run("bad token treated as anonymous", func(t *testing.T) {
		c := newAuthContext("Bearer forged")
		require.NoError(t, mw.OptionalAuth(next)(c))

		_, ok := GetUser(c)
		assert.False(t, ok)
	})

	t.Run("valid token resolved", func(t *testing.T) {
		c := newAuthContext("Bearer valid-token")
		require.NoError(t, mw.OptionalAuth(next)(c))

		got, ok := GetUser(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, got.ID)
	})
}
