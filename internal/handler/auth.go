package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// sessionResponse pairs a user with a freshly issued token.
type sessionResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *registerRequest) Validate() error {
	return validate.Struct(r)
}

// Register creates a diner account and logs it in.
func (h *AuthHandler) Register(c echo.Context, req *registerRequest) (sessionResponse, error) {
	user, token, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{User: user, Token: token}, nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) Validate() error {
	return validate.Struct(r)
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c echo.Context, req *loginRequest) (sessionResponse, error) {
	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{User: user, Token: token}, nil
}

type logoutRequest struct{}

func (r *logoutRequest) Validate() error { return nil }

type messageResponse struct {
	Message string `json:"message"`
}

// Logout revokes the presented token. Requires auth middleware, which
// stores the raw token in context.
func (h *AuthHandler) Logout(c echo.Context, _ *logoutRequest) (messageResponse, error) {
	if err := h.auth.Logout(c.Request().Context(), middleware.GetToken(c)); err != nil {
		return messageResponse{}, err
	}
	return messageResponse{Message: "logout successful"}, nil
}
