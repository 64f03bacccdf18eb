package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

// Role assignments are rejected before any database work, so these run
// against a nil pool.

func TestUserAddRejectsUnknownRole(t *testing.T) {
	users := NewUserRepository(nil)

	_, err := users.Add(context.Background(), "Mallory", "mallory@example.com", "supersecret",
		[]model.RoleAssignment{{Role: model.Role("superuser")}})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Contains(t, err.Error(), "unknown role")
}

func TestUserAddRejectsScopedRoleWithoutObject(t *testing.T) {
	users := NewUserRepository(nil)

	_, err := users.Add(context.Background(), "Frank", "frank@example.com", "supersecret",
		[]model.RoleAssignment{{Role: model.RoleFranchisee}})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Contains(t, err.Error(), "requires an object id")
}
