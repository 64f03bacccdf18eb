package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/lib/job"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/repository"
)

type orderStore interface {
	Create(ctx context.Context, dinerID, franchiseID, storeID int64, lines []model.OrderLine) (model.Order, error)
	ListForDiner(ctx context.Context, dinerID int64, page, perPage int) ([]model.Order, error)
}

// OrderHistory is one page of a diner's orders.
type OrderHistory struct {
	DinerID int64         `json:"dinerId"`
	Orders  []model.Order `json:"orders"`
	Page    int           `json:"page"`
}

// OrderService manages order placement and history. Orders always
// belong to the authenticated diner; there is no ordering on behalf of
// someone else.
type OrderService struct {
	orders orderStore
	jobs   taskEnqueuer
	logger *zerolog.Logger
}

func NewOrderService(orders orderStore, jobs taskEnqueuer, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		jobs:   jobs,
		logger: logger,
	}
}

// Create places an order for the authenticated diner. The receipt
// email is enqueued best-effort after the order is committed; a queue
// failure never fails the order.
func (s *OrderService) Create(ctx context.Context, authUser model.User, franchiseID, storeID int64, lines []model.OrderLine) (model.Order, error) {
	order, err := s.orders.Create(ctx, authUser.ID, franchiseID, storeID, lines)
	if err != nil {
		return model.Order{}, err
	}

	if task, err := job.NewOrderReceiptTask(authUser.Email, authUser.Name, order.ID, order.Total().StringFixed(2)); err == nil {
		if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
			s.logger.Warn().Err(err).Int64("order_id", order.ID).Msg("failed to enqueue order receipt")
		}
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("diner_id", authUser.ID).
		Int("items", len(order.Items)).
		Msg("created order")
	return order, nil
}

// History returns one page of the caller's own orders.
func (s *OrderService) History(ctx context.Context, authUser model.User, page int) (OrderHistory, error) {
	if page < 1 {
		page = 1
	}

	orders, err := s.orders.ListForDiner(ctx, authUser.ID, page, repository.DefaultPerPage)
	if err != nil {
		return OrderHistory{}, err
	}

	return OrderHistory{
		DinerID: authUser.ID,
		Orders:  orders,
		Page:    page,
	}, nil
}
