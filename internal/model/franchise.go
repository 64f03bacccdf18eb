package model

// Franchise owns stores and is administered by users holding a
// franchisee role scoped to its id. Admins are resolved by email at
// creation time and returned by reference (id/name/email only).
type Franchise struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Admins []User  `json:"admins"`
	Stores []Store `json:"stores"`
}

// Store belongs to exactly one franchise and is destroyed with it.
type Store struct {
	ID          int64  `json:"id"`
	FranchiseID int64  `json:"franchiseId,omitempty"`
	Name        string `json:"name"`
}
