package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:    42,
		Name:  "pizza diner",
		Email: "diner@example.com",
		Roles: []model.RoleAssignment{
			{Role: model.RoleDiner},
			{Role: model.RoleFranchisee, ObjectID: 7},
		},
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Sign(testUser())
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Parse(token)
	require.NoError(t, err)

	user := claims.User()
	assert.Equal(t, testUser(), user)
	assert.True(t, user.HasScopedRole(model.RoleFranchisee, 7))
}

func TestTokenCodecRejectsWrongSecret(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	other := NewTokenCodec("other-secret", time.Hour)

	token, err := codec.Sign(testUser())
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestTokenCodecRejectsExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret", -time.Minute)

	token, err := codec.Sign(testUser())
	require.NoError(t, err)

	_, err = codec.Parse(token)
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestTokenCodecRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := codec.Parse(token)
		assert.Error(t, err, "token %q should not parse", token)
	}
}

func TestSignatureFragment(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Sign(testUser())
	require.NoError(t, err)

	frag, err := SignatureFragment(token)
	require.NoError(t, err)
	assert.Len(t, frag, 64)

	// Deterministic for the same token.
	frag2, err := SignatureFragment(token)
	require.NoError(t, err)
	assert.Equal(t, frag, frag2)

	// Different tokens (different iat/exp) yield different fragments.
	codec2 := NewTokenCodec("test-secret", 2*time.Hour)
	token2, err := codec2.Sign(testUser())
	require.NoError(t, err)
	frag3, err := SignatureFragment(token2)
	require.NoError(t, err)
	assert.NotEqual(t, frag, frag3)
}

func TestSignatureFragmentRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "a.b", "a.b.", "nodots"} {
		_, err := SignatureFragment(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}
