package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

type menuStore interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	Add(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
}

// MenuService manages the shared menu catalog. Reading is public;
// adding items is admin-only.
type MenuService struct {
	menu   menuStore
	logger *zerolog.Logger
}

func NewMenuService(menu menuStore, logger *zerolog.Logger) *MenuService {
	return &MenuService{
		menu:   menu,
		logger: logger,
	}
}

// List returns the full menu.
func (s *MenuService) List(ctx context.Context) ([]model.MenuItem, error) {
	return s.menu.List(ctx)
}

// Add inserts a menu item and returns the updated menu.
func (s *MenuService) Add(ctx context.Context, authUser model.User, item model.MenuItem) ([]model.MenuItem, error) {
	if !authUser.IsRole(model.RoleAdmin) {
		return nil, errs.Auth("unable to add menu item")
	}

	added, err := s.menu.Add(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("menu_id", added.ID).Str("title", added.Title).Msg("added menu item")
	return s.menu.List(ctx)
}
