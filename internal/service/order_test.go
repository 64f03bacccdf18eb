package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkpoint/forkpoint-service/internal/errs"
	"github.com/forkpoint/forkpoint-service/internal/lib/job"
	"github.com/forkpoint/forkpoint-service/internal/model"
)

var diner = model.User{
	ID:    7,
	Name:  "Kai",
	Email: "kai@example.com",
	Roles: []model.RoleAssignment{{Role: model.RoleDiner}},
}

func orderLines(keys ...string) []model.OrderLine {
	lines := make([]model.OrderLine, len(keys))
	for i, key := range keys {
		lines[i] = model.OrderLine{
			MenuKey:     key,
			Description: key,
			Price:       decimal.RequireFromString("0.05"),
		}
	}
	return lines
}

func TestOrderCreate(t *testing.T) {
	orders := newFakeOrderStore()
	jobs := &fakeEnqueuer{}
	svc := NewOrderService(orders, jobs, nopLogger())

	order, err := svc.Create(context.Background(), diner, 1, 2, orderLines("veggie", "pepperoni"))
	require.NoError(t, err)

	assert.Equal(t, diner.ID, order.DinerID)
	assert.Len(t, order.Items, 2)

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskOrderReceipt, jobs.tasks[0].Type())
}

func TestOrderCreateKeepsCallerSnapshots(t *testing.T) {
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, &fakeEnqueuer{}, nopLogger())

	order, err := svc.Create(context.Background(), diner, 1, 2, []model.OrderLine{{
		MenuKey:     "veggie",
		Description: "Green",
		Price:       decimal.RequireFromString("8.49"),
	}})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Green", order.Items[0].Description)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("8.49")))
}

func TestOrderCreateStoreFailure(t *testing.T) {
	orders := newFakeOrderStore()
	orders.createErr = errs.NotFoundf("unknown menu item: %s", "anchovy")
	jobs := &fakeEnqueuer{}
	svc := NewOrderService(orders, jobs, nopLogger())

	_, err := svc.Create(context.Background(), diner, 1, 2, orderLines("anchovy"))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Empty(t, jobs.tasks, "no receipt for a failed order")
}

func TestOrderCreateSurvivesEnqueueFailure(t *testing.T) {
	orders := newFakeOrderStore()
	jobs := &fakeEnqueuer{enqueueErr: errors.New("redis down")}
	svc := NewOrderService(orders, jobs, nopLogger())

	order, err := svc.Create(context.Background(), diner, 1, 2, orderLines("veggie"))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderHistory(t *testing.T) {
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, &fakeEnqueuer{}, nopLogger())

	_, err := svc.Create(context.Background(), diner, 1, 2, orderLines("veggie"))
	require.NoError(t, err)

	history, err := svc.History(context.Background(), diner, 0)
	require.NoError(t, err)
	assert.Equal(t, diner.ID, history.DinerID)
	assert.Equal(t, 1, history.Page, "page below one clamps to one")
	assert.Len(t, history.Orders, 1)
}
