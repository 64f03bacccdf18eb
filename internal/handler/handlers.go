package handler

import (
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one object.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Menu      *MenuHandler
	Franchise *FranchiseHandler
	Order     *OrderHandler
	Health    *HealthHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(s, services.Auth),
		User:      NewUserHandler(s, services.User),
		Menu:      NewMenuHandler(s, services.Menu),
		Franchise: NewFranchiseHandler(s, services.Franchise),
		Order:     NewOrderHandler(s, services.Order),
		Health:    NewHealthHandler(s),
	}
}
