package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable purchase record. Ids are assigned by storage,
// never by the caller.
type Order struct {
	ID          int64       `json:"id"`
	DinerID     int64       `json:"dinerId"`
	FranchiseID int64       `json:"franchiseId"`
	StoreID     int64       `json:"storeId"`
	CreatedAt   time.Time   `json:"date"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is a line item owned exclusively by its order.
// Description and price are snapshots taken at order time so later
// menu edits never rewrite history.
type OrderItem struct {
	ID          int64           `json:"id"`
	MenuID      int64           `json:"menuId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// OrderLine is one requested line of a new order: the menu key naming
// the item plus the caller's snapshot of description and price. The
// snapshots are persisted as sent; the key only has to resolve to an
// existing menu item.
type OrderLine struct {
	MenuKey     string
	Description string
	Price       decimal.Decimal
}

// Total sums the item price snapshots.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	return total
}
