package model

import "github.com/shopspring/decimal"

// MenuItem is a shared catalog entry. Items are created and updated by
// admins and are never deleted: historical orders snapshot their
// description and price instead of referencing them mutably.
type MenuItem struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}
