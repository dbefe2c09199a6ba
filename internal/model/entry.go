package model

// Kind tells whether an entry brings money in or takes it out
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is one of the kinds storage accepts
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Entry is one record of expenses or income
type Entry struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"` // caller-supplied, stored as is
	Amount int64  `json:"amount"`
	Kind   Kind   `json:"kind"`
}

// EntryInput is the body of a create request. Zero values count as missing.
type EntryInput struct {
	Name   string `json:"name" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Amount int64  `json:"amount" validate:"required"`
	Kind   Kind   `json:"kind" validate:"required,oneof=income expense"`
}

// Summary aggregates all entries by kind
type Summary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
	Count   int64 `json:"count"`
}
