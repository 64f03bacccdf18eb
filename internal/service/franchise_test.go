package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

var (
	adminUser = model.User{ID: 1, Roles: []model.RoleAssignment{{Role: model.RoleAdmin}}}
	plainUser = model.User{ID: 2, Roles: []model.RoleAssignment{{Role: model.RoleDiner}}}
)

func franchiseeOf(franchiseID int64) model.User {
	return model.User{ID: 3, Roles: []model.RoleAssignment{
		{Role: model.RoleDiner},
		{Role: model.RoleFranchisee, ObjectID: franchiseID},
	}}
}

func TestFranchiseListAdminVisibility(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	_, err := svc.List(context.Background(), adminUser, 1, 10, "*")
	require.NoError(t, err)
	assert.True(t, store.listIncludeAdmins)

	_, err = svc.List(context.Background(), model.User{}, 1, 10, "*")
	require.NoError(t, err)
	assert.False(t, store.listIncludeAdmins, "anonymous callers never see franchise admins")
}

func TestFranchiseListDefaultsPerPage(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	_, err := svc.List(context.Background(), model.User{}, 1, 0, "*")
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)
}

func TestFranchiseListForUser(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	_, err := svc.ListForUser(context.Background(), plainUser, plainUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listForUserCalls)

	// A stranger gets an empty list without the store being consulted.
	franchises, err := svc.ListForUser(context.Background(), plainUser, 99)
	require.NoError(t, err)
	assert.Empty(t, franchises)
	assert.Equal(t, 1, store.listForUserCalls)

	_, err = svc.ListForUser(context.Background(), adminUser, plainUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listForUserCalls)
}

func TestFranchiseCreateAdminOnly(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	_, err := svc.Create(context.Background(), plainUser, "pizzaPocket", []string{"f@example.com"})
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	assert.Empty(t, store.franchises)

	fr, err := svc.Create(context.Background(), adminUser, "pizzaPocket", []string{"f@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "pizzaPocket", fr.Name)
	assert.NotNil(t, fr.Stores)
}

func TestFranchiseDeleteAdminOnly(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	fr, err := svc.Create(context.Background(), adminUser, "pizzaPocket", nil)
	require.NoError(t, err)

	assert.Equal(t, errs.KindAuth, errs.KindOf(svc.Delete(context.Background(), franchiseeOf(fr.ID), fr.ID)))

	require.NoError(t, svc.Delete(context.Background(), adminUser, fr.ID))
	assert.Empty(t, store.franchises)
}

func TestStoreManagementPermissions(t *testing.T) {
	store := newFakeFranchiseStore()
	svc := NewFranchiseService(store, nopLogger())

	fr, err := svc.Create(context.Background(), adminUser, "pizzaPocket", nil)
	require.NoError(t, err)

	_, err = svc.CreateStore(context.Background(), plainUser, fr.ID, "SLC")
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))

	// The franchisee of a different franchise is just as unauthorized.
	_, err = svc.CreateStore(context.Background(), franchiseeOf(fr.ID+1), fr.ID, "SLC")
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))

	created, err := svc.CreateStore(context.Background(), franchiseeOf(fr.ID), fr.ID, "SLC")
	require.NoError(t, err)
	assert.Equal(t, "SLC", created.Name)

	assert.Equal(t, errs.KindAuth, errs.KindOf(svc.DeleteStore(context.Background(), plainUser, fr.ID, created.ID)))
	require.NoError(t, svc.DeleteStore(context.Background(), franchiseeOf(fr.ID), fr.ID, created.ID))
}
