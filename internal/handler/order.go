package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
	"github.com/forkpoint/forkpoint-service/internal/validation"
)

// OrderHandler serves order placement and history. All endpoints
// require auth; orders always belong to the caller.
type OrderHandler struct {
	Handler
	orders *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
	}
}

type orderHistoryRequest struct {
	Page int `query:"page"`
}

func (r *orderHistoryRequest) Validate() error { return nil }

// History returns one page of the caller's orders. Page numbering is
// one-based; missing or bad pages fall back to the first.
func (h *OrderHandler) History(c echo.Context, req *orderHistoryRequest) (service.OrderHistory, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return service.OrderHistory{}, err
	}
	return h.orders.History(c.Request().Context(), authUser, req.Page)
}

type orderLineRequest struct {
	MenuKey     string          `json:"menuKey" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	FranchiseID int64              `json:"franchiseId" validate:"required,gt=0"`
	StoreID     int64              `json:"storeId" validate:"required,gt=0"`
	Items       []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

func (r *createOrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	// decimal.Decimal is opaque to struct tags, so the price range is
	// checked by hand.
	for _, item := range r.Items {
		if item.Price.IsNegative() {
			return validation.CustomValidationErrors{
				{Field: "price", Message: "must not be negative"},
			}
		}
	}
	return nil
}

type createOrderResponse struct {
	Order model.Order `json:"order"`
}

// Create places an order. Items reference menu entries by key (the
// item title); an unknown key fails the whole order. The description
// and price are the caller's snapshots and are persisted as sent.
func (h *OrderHandler) Create(c echo.Context, req *createOrderRequest) (createOrderResponse, error) {
	authUser, err := authedUser(c)
	if err != nil {
		return createOrderResponse{}, err
	}

	lines := make([]model.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = model.OrderLine{
			MenuKey:     item.MenuKey,
			Description: item.Description,
			Price:       item.Price,
		}
	}

	order, err := h.orders.Create(c.Request().Context(), authUser, req.FranchiseID, req.StoreID, lines)
	if err != nil {
		return createOrderResponse{}, err
	}
	return createOrderResponse{Order: order}, nil
}
