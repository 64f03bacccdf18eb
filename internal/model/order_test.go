package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Price: decimal.RequireFromString("0.05")},
			{Price: decimal.RequireFromString("0.04")},
			{Price: decimal.RequireFromString("0.05")},
		},
	}

	assert.True(t, order.Total().Equal(decimal.RequireFromString("0.14")),
		"got %s", order.Total())
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.True(t, Order{}.Total().IsZero())
}
