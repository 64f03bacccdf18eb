package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/auth"
	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/lib/job"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserStore, *fakeTokenStore, *fakeEnqueuer) {
	t.Helper()
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jobs := &fakeEnqueuer{}
	codec := auth.NewTokenCodec("test-secret", time.Hour)
	return NewAuthService(users, tokens, codec, jobs, nopLogger()), users, tokens, jobs
}

func TestRegister(t *testing.T) {
	svc, _, tokens, jobs := newAuthService(t)

	user, token, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	assert.True(t, user.IsRole(model.RoleDiner))
	assert.NotEmpty(t, token)
	assert.Len(t, tokens.tokens, 1, "token should be registered server-side")

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskWelcome, jobs.tasks[0].Type())
}

func TestRegisterSurvivesEnqueueFailure(t *testing.T) {
	svc, _, _, jobs := newAuthService(t)
	jobs.enqueueErr = errors.New("redis down")

	_, token, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, _, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "kai@example.com", "different")
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestLogin(t *testing.T) {
	svc, _, tokens, _ := newAuthService(t)

	_, _, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "kai@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "kai@example.com", user.Email)
	assert.NotEmpty(t, token)

	// Each login registers its own token.
	assert.Len(t, tokens.tokens, 2)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, _, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "kai@example.com", "wrong")
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "supersecret")
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestAuthenticate(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	registered, token, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, registered.Email, user.Email)
	assert.True(t, user.IsRole(model.RoleDiner))
}

func TestAuthenticateRevokedToken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, token, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Authenticate(context.Background(), token)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Authenticate(context.Background(), token)
		assert.Equal(t, errs.KindAuth, errs.KindOf(err), "token %q", token)
	}
}

func TestAuthenticateForeignSignature(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	// A structurally valid token signed with a different secret.
	other := auth.NewTokenCodec("other-secret", time.Hour)
	token, err := other.Sign(model.User{ID: 1, Email: "kai@example.com"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, token, err := svc.Register(context.Background(), "Kai", "kai@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	require.NoError(t, svc.Logout(context.Background(), token))
}

func TestLogoutMalformedToken(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	err := svc.Logout(context.Background(), "not-a-jwt")
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}
