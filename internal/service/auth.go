package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/auth"
	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/lib/job"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

// authUserStore is the slice of the user repository the auth service
// needs.
type authUserStore interface {
	Add(ctx context.Context, name, email, password string, roles []model.RoleAssignment) (model.User, error)
	GetByCredentials(ctx context.Context, email, password string) (model.User, error)
}

// tokenStore is the server-side token registry. A token is valid only
// while its signature is registered.
type tokenStore interface {
	InsertToken(ctx context.Context, signature string, userID int64) error
	DeleteToken(ctx context.Context, signature string) error
	TokenExists(ctx context.Context, signature string) (bool, error)
}

// taskEnqueuer pushes background tasks. Satisfied by *asynq.Client.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AuthService implements registration, login, logout, and bearer token
// authentication.
//
// Issued tokens are double-checked: the JWT signature must verify AND
// the token must still be registered server-side. Logout deletes the
// registration, which revokes the token immediately even though the
// JWT itself has not expired.
type AuthService struct {
	users  authUserStore
	tokens tokenStore
	codec  *auth.TokenCodec
	jobs   taskEnqueuer
	logger *zerolog.Logger
}

func NewAuthService(users authUserStore, tokens tokenStore, codec *auth.TokenCodec, jobs taskEnqueuer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		codec:  codec,
		jobs:   jobs,
		logger: logger,
	}
}

// IssueToken signs a JWT for the user and registers its signature.
// Also used by the user service to refresh a session after a profile
// update.
func (s *AuthService) IssueToken(ctx context.Context, user model.User) (string, error) {
	token, err := s.codec.Sign(user)
	if err != nil {
		return "", err
	}

	signature, err := auth.SignatureFragment(token)
	if err != nil {
		return "", err
	}

	if err := s.tokens.InsertToken(ctx, signature, user.ID); err != nil {
		return "", err
	}
	return token, nil
}

// Register creates a diner account and logs it in. The welcome email
// is enqueued best-effort; a queue failure never fails registration.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.User, string, error) {
	user, err := s.users.Add(ctx, name, email, password, []model.RoleAssignment{{Role: model.RoleDiner}})
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}

	if task, err := job.NewWelcomeEmailTask(user.Email, user.Name); err == nil {
		if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to enqueue welcome email")
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("registered new diner")
	return user, token, nil
}

// Login verifies credentials and issues a fresh token. Each login
// issues its own token; concurrent sessions stay independent.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := s.users.GetByCredentials(ctx, email, password)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// Logout revokes the presented token. Revoking an already revoked
// token succeeds; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	signature, err := auth.SignatureFragment(token)
	if err != nil {
		return errs.Auth("invalid token")
	}
	return s.tokens.DeleteToken(ctx, signature)
}

// Authenticate resolves a bearer token to its user. The token must
// both verify cryptographically and still be registered; a revoked or
// tampered token gets the same rejection.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.User, error) {
	claims, err := s.codec.Parse(token)
	if err != nil {
		return model.User{}, err
	}

	signature, err := auth.SignatureFragment(token)
	if err != nil {
		return model.User{}, errs.Auth("invalid token")
	}

	exists, err := s.tokens.TokenExists(ctx, signature)
	if err != nil {
		return model.User{}, err
	}
	if !exists {
		return model.User{}, errs.Auth("invalid token")
	}

	return claims.User(), nil
}
