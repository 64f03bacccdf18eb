package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
)

// UserHandler serves account endpoints. All of them require auth.
type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// authedUser pulls the authenticated user the auth middleware stored.
func authedUser(c echo.Context) (model.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return model.User{}, errs.Auth("unauthorized")
	}
	return user, nil
}

type getMeRequest struct{}

func (r *getMeRequest) Validate() error { return nil }

// Me returns the caller's own account.
func (h *UserHandler) Me(c echo.Context, _ *getMeRequest) (model.User, error) {
	return authedUser(c)
}

type listUsersRequest struct {
	Page    int    `query:"page"`
	PerPage int    `query:"limit"`
	Name    string `query:"name"`
}

func (r *listUsersRequest) Validate() error { return nil }

// List returns one page of users. Admin only, enforced by the service.
func (h *UserHandler) List(c echo.Context, req *listUsersRequest) (service.UserList, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return service.UserList{}, err
	}
	return h.users.List(c.Request().Context(), authUser, req.Page, req.PerPage, req.Name)
}

type getUserRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

func (r *getUserRequest) Validate() error {
	return validate.Struct(r)
}

// Get returns a user by id, restricted to self or admin.
func (h *UserHandler) Get(c echo.Context, req *getUserRequest) (model.User, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return model.User{}, err
	}
	return h.users.Get(c.Request().Context(), authUser, req.UserID)
}

type updateUserRequest struct {
	UserID   int64  `param:"userId" validate:"required,gt=0"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func (r *updateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Update changes a user's profile fields and returns the updated user
// with a fresh token.
func (h *UserHandler) Update(c echo.Context, req *updateUserRequest) (sessionResponse, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return sessionResponse{}, err
	}

	user, token, err := h.users.Update(c.Request().Context(), authUser, req.UserID, req.Name, req.Email, req.Password)
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{User: user, Token: token}, nil
}

type deleteUserRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

func (r *deleteUserRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes a user account.
func (h *UserHandler) Delete(c echo.Context, req *deleteUserRequest) (messageResponse, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return messageResponse{}, err
	}

	if err := h.users.Delete(c.Request().Context(), authUser, req.UserID); err != nil {
		return messageResponse{}, err
	}
	return messageResponse{Message: "user deleted"}, nil
}
