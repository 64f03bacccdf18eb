package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
	"github.com/forkpoint/forkpoint-service/internal/repository"
)

type userStore interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context, page, perPage int, name string) ([]model.User, bool, error)
	Update(ctx context.Context, id int64, name, email, password string) (model.User, error)
	Delete(ctx context.Context, id int64) error
}

type tokenIssuer interface {
	IssueToken(ctx context.Context, user model.User) (string, error)
}

// UserService manages user accounts. A user may read and update their
// own account; admins may touch anyone.
type UserService struct {
	users  userStore
	issuer tokenIssuer
	logger *zerolog.Logger
}

func NewUserService(users userStore, issuer tokenIssuer, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

func canTouchUser(authUser model.User, userID int64) bool {
	return authUser.ID == userID || authUser.IsRole(model.RoleAdmin)
}

// Get returns a user by id, restricted to self or admin.
func (s *UserService) Get(ctx context.Context, authUser model.User, userID int64) (model.User, error) {
	if !canTouchUser(authUser, userID) {
		return model.User{}, errs.Auth("unable to get user")
	}
	return s.users.GetByID(ctx, userID)
}

// UserList is one page of users plus a flag for whether further pages
// exist.
type UserList struct {
	Users []model.User `json:"users"`
	More  bool         `json:"more"`
}

// List returns one page of users. Admin-only.
func (s *UserService) List(ctx context.Context, authUser model.User, page, perPage int, name string) (UserList, error) {
	if !authUser.IsRole(model.RoleAdmin) {
		return UserList{}, errs.Auth("unable to list users")
	}

	if perPage <= 0 {
		perPage = repository.DefaultPerPage
	}

	users, more, err := s.users.List(ctx, page, perPage, name)
	if err != nil {
		return UserList{}, err
	}
	return UserList{Users: users, More: more}, nil
}

// Update changes name, email, or password (empty fields are left
// alone) and issues a fresh token reflecting the updated identity.
func (s *UserService) Update(ctx context.Context, authUser model.User, userID int64, name, email, password string) (model.User, string, error) {
	if !canTouchUser(authUser, userID) {
		return model.User{}, "", errs.Auth("unable to update user")
	}

	user, err := s.users.Update(ctx, userID, name, email, password)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.issuer.IssueToken(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("updated user")
	return user, token, nil
}

// Delete removes a user account. Self-deletion is allowed; deleting
// another user requires admin.
func (s *UserService) Delete(ctx context.Context, authUser model.User, userID int64) error {
	if !canTouchUser(authUser, userID) {
		return errs.Auth("unable to delete user")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Msg("deleted user")
	return nil
}
