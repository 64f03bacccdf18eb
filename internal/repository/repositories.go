package repository

import (
	"github.com/forkpoint/forkpoint-service/internal/server"
)

// Repositories is a container for all repository instances. It is
// built once at startup and injected into the service layer.
type Repositories struct {
	Menu      *MenuRepository
	User      *UserRepository
	Auth      *AuthRepository
	Franchise *FranchiseRepository
	Order     *OrderRepository
}

// NewRepositories constructs the repository container from the shared
// server resources.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Menu:      NewMenuRepository(s.DB.Pool),
		User:      NewUserRepository(s.DB.Pool),
		Auth:      NewAuthRepository(s.DB.Pool),
		Franchise: NewFranchiseRepository(s.DB.Pool),
		Order:     NewOrderRepository(s.DB.Pool),
	}
}
