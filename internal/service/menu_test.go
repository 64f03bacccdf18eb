package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

func TestMenuListIsPublic(t *testing.T) {
	store := newFakeMenuStore()
	store.items = []model.MenuItem{{ID: 1, Title: "veggie"}}
	svc := NewMenuService(store, nopLogger())

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMenuAddAdminOnly(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store, nopLogger())

	item := model.MenuItem{
		Title:       "student",
		Description: "no topping, no sauce, just carbs",
		Image:       "pizza9.png",
		Price:       decimal.RequireFromString("0.0001"),
	}

	_, err := svc.Add(context.Background(), plainUser, item)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	assert.Empty(t, store.items)

	menu, err := svc.Add(context.Background(), adminUser, item)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "student", menu[0].Title)
	assert.NotZero(t, menu[0].ID)
}
