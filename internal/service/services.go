package service

import (
	"github.com/forkpoint/forkpoint-service/internal/auth"
	"github.com/forkpoint/forkpoint-service/internal/lib/job"
	"github.com/forkpoint/forkpoint-service/internal/repository"
	"github.com/forkpoint/forkpoint-service/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Auth      *AuthService
	User      *UserService
	Menu      *MenuService
	Franchise *FranchiseService
	Order     *OrderService
	Job       *job.JobService
}

// NewService wires services to repositories and shared resources.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	codec := auth.NewTokenCodec(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL)

	authService := NewAuthService(repos.User, repos.Auth, codec, s.Job.Client, s.Logger)

	return &Services{
		Auth:      authService,
		User:      NewUserService(repos.User, authService, s.Logger),
		Menu:      NewMenuService(repos.Menu, s.Logger),
		Franchise: NewFranchiseService(repos.Franchise, s.Logger),
		Order:     NewOrderService(repos.Order, s.Job.Client, s.Logger),
		Job:       s.Job,
	}, nil
}
