package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
)

// FranchiseHandler serves franchise and store management.
type FranchiseHandler struct {
	Handler
	franchises *service.FranchiseService
}

func NewFranchiseHandler(s *server.Server, franchises *service.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{
		Handler:    NewHandler(s),
		franchises: franchises,
	}
}

type listFranchisesRequest struct {
	Page    int    `query:"page"`
	PerPage int    `query:"limit"`
	Name    string `query:"name"`
}

func (r *listFranchisesRequest) Validate() error { return nil }

// List returns one page of franchises. Public; an authenticated admin
// additionally sees each franchise's admins.
func (h *FranchiseHandler) List(c echo.Context, req *listFranchisesRequest) (service.FranchiseList, error) {
	// Anonymous callers are the zero user.
	authUser, _ := middleware.GetUser(c)
	return h.franchises.List(c.Request().Context(), authUser, req.Page, req.PerPage, req.Name)
}

type userFranchisesRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

func (r *userFranchisesRequest) Validate() error {
	return validate.Struct(r)
}

// ListForUser returns the franchises a user administers.
func (h *FranchiseHandler) ListForUser(c echo.Context, req *userFranchisesRequest) ([]model.Franchise, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return nil, err
	}
	return h.franchises.ListForUser(c.Request().Context(), authUser, req.UserID)
}

type createFranchiseRequest struct {
	Name   string `json:"name" validate:"required"`
	Admins []struct {
		Email string `json:"email" validate:"required,email"`
	} `json:"admins" validate:"dive"`
}

func (r *createFranchiseRequest) Validate() error {
	return validate.Struct(r)
}

// Create registers a franchise. Admin only, enforced by the service.
func (h *FranchiseHandler) Create(c echo.Context, req *createFranchiseRequest) (model.Franchise, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return model.Franchise{}, err
	}

	emails := make([]string, len(req.Admins))
	for i, admin := range req.Admins {
		emails[i] = admin.Email
	}
	return h.franchises.Create(c.Request().Context(), authUser, req.Name, emails)
}

type deleteFranchiseRequest struct {
	FranchiseID int64 `param:"franchiseId" validate:"required,gt=0"`
}

func (r *deleteFranchiseRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes a franchise along with its stores and role grants.
func (h *FranchiseHandler) Delete(c echo.Context, req *deleteFranchiseRequest) (messageResponse, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return messageResponse{}, err
	}

	if err := h.franchises.Delete(c.Request().Context(), authUser, req.FranchiseID); err != nil {
		return messageResponse{}, err
	}
	return messageResponse{Message: "franchise deleted"}, nil
}

type createStoreRequest struct {
	FranchiseID int64  `param:"franchiseId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
}

func (r *createStoreRequest) Validate() error {
	return validate.Struct(r)
}

// CreateStore opens a store under a franchise.
func (h *FranchiseHandler) CreateStore(c echo.Context, req *createStoreRequest) (model.Store, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return model.Store{}, err
	}
	return h.franchises.CreateStore(c.Request().Context(), authUser, req.FranchiseID, req.Name)
}

type deleteStoreRequest struct {
	FranchiseID int64 `param:"franchiseId" validate:"required,gt=0"`
	StoreID     int64 `param:"storeId" validate:"required,gt=0"`
}

func (r *deleteStoreRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteStore closes a store. Idempotent.
func (h *FranchiseHandler) DeleteStore(c echo.Context, req *deleteStoreRequest) (messageResponse, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return messageResponse{}, err
	}

	if err := h.franchises.DeleteStore(c.Request().Context(), authUser, req.FranchiseID, req.StoreID); err != nil {
		return messageResponse{}, err
	}
	return messageResponse{Message: "store deleted"}, nil
}
