package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/repository"
)

type franchiseStore interface {
	List(ctx context.Context, page, perPage int, name string, includeAdmins bool) ([]model.Franchise, bool, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Franchise, error)
	GetByID(ctx context.Context, id int64) (model.Franchise, error)
	Create(ctx context.Context, name string, adminEmails []string) (model.Franchise, error)
	Delete(ctx context.Context, id int64) error
	CreateStore(ctx context.Context, franchiseID int64, name string) (model.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}

// FranchiseList is one page of franchises plus a flag for whether
// further pages exist.
type FranchiseList struct {
	Franchises []model.Franchise `json:"franchises"`
	More       bool              `json:"more"`
}

// FranchiseService manages franchises and their stores. Creating and
// deleting franchises is admin-only; store management extends to the
// franchise's own franchisees.
type FranchiseService struct {
	franchises franchiseStore
	logger     *zerolog.Logger
}

func NewFranchiseService(franchises franchiseStore, logger *zerolog.Logger) *FranchiseService {
	return &FranchiseService{
		franchises: franchises,
		logger:     logger,
	}
}

// List returns one page of franchises. Admin callers get the full
// picture including franchise admins; everyone else sees names and
// stores only. The anonymous caller is the zero user.
func (s *FranchiseService) List(ctx context.Context, authUser model.User, page, perPage int, name string) (FranchiseList, error) {
	if perPage <= 0 {
		perPage = repository.DefaultPerPage
	}

	franchises, more, err := s.franchises.List(ctx, page, perPage, name, authUser.IsRole(model.RoleAdmin))
	if err != nil {
		return FranchiseList{}, err
	}
	return FranchiseList{Franchises: franchises, More: more}, nil
}

// ListForUser returns the franchises a user administers. Restricted to
// self or admin; others get an empty list rather than an error, so the
// endpoint does not leak which user ids exist.
func (s *FranchiseService) ListForUser(ctx context.Context, authUser model.User, userID int64) ([]model.Franchise, error) {
	if authUser.ID != userID && !authUser.IsRole(model.RoleAdmin) {
		return []model.Franchise{}, nil
	}
	return s.franchises.ListForUser(ctx, userID)
}

// Create registers a new franchise and grants its admins the
// franchisee role. Admin-only.
func (s *FranchiseService) Create(ctx context.Context, authUser model.User, name string, adminEmails []string) (model.Franchise, error) {
	if !authUser.IsRole(model.RoleAdmin) {
		return model.Franchise{}, errs.Auth("unable to create a franchise")
	}

	fr, err := s.franchises.Create(ctx, name, adminEmails)
	if err != nil {
		return model.Franchise{}, err
	}

	s.logger.Info().Int64("franchise_id", fr.ID).Str("name", fr.Name).Msg("created franchise")
	return fr, nil
}

// Delete removes a franchise with its stores and role grants.
// Admin-only.
func (s *FranchiseService) Delete(ctx context.Context, authUser model.User, franchiseID int64) error {
	if !authUser.IsRole(model.RoleAdmin) {
		return errs.Auth("unable to delete a franchise")
	}

	if err := s.franchises.Delete(ctx, franchiseID); err != nil {
		return err
	}

	s.logger.Info().Int64("franchise_id", franchiseID).Msg("deleted franchise")
	return nil
}

func canManageFranchise(authUser model.User, franchiseID int64) bool {
	return authUser.IsRole(model.RoleAdmin) || authUser.HasScopedRole(model.RoleFranchisee, franchiseID)
}

// CreateStore opens a store under a franchise. Allowed for admins and
// that franchise's franchisees.
func (s *FranchiseService) CreateStore(ctx context.Context, authUser model.User, franchiseID int64, name string) (model.Store, error) {
	if !canManageFranchise(authUser, franchiseID) {
		return model.Store{}, errs.Auth("unable to create a store")
	}

	store, err := s.franchises.CreateStore(ctx, franchiseID, name)
	if err != nil {
		return model.Store{}, err
	}

	s.logger.Info().Int64("franchise_id", franchiseID).Int64("store_id", store.ID).Msg("created store")
	return store, nil
}

// DeleteStore closes a store. Same permissions as CreateStore; the
// operation is idempotent.
func (s *FranchiseService) DeleteStore(ctx context.Context, authUser model.User, franchiseID, storeID int64) error {
	if !canManageFranchise(authUser, franchiseID) {
		return errs.Auth("unable to delete a store")
	}
	return s.franchises.DeleteStore(ctx, franchiseID, storeID)
}
