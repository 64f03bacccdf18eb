package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
	"github.com/forkpoint/forkpoint-service/internal/validation"
)

// MenuHandler serves the menu catalog.
type MenuHandler struct {
	Handler
	menu *service.MenuService
}

func NewMenuHandler(s *server.Server, menu *service.MenuService) *MenuHandler {
	return &MenuHandler{
		Handler: NewHandler(s),
		menu:    menu,
	}
}

type listMenuRequest struct{}

func (r *listMenuRequest) Validate() error { return nil }

// List returns the full menu. Public.
func (h *MenuHandler) List(c echo.Context, _ *listMenuRequest) ([]model.MenuItem, error) {
	return h.menu.List(c.Request().Context())
}

type addMenuItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

func (r *addMenuItemRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	// decimal.Decimal is opaque to struct tags, so the price range is
	// checked by hand.
	if r.Price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not be negative"},
		}
	}
	return nil
}

// Add inserts a menu item and returns the updated menu. Admin only,
// enforced by the service.
func (h *MenuHandler) Add(c echo.Context, req *addMenuItemRequest) ([]model.MenuItem, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return nil, err
	}

	item := model.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	return h.menu.Add(c.Request().Context(), authUser, item)
}
