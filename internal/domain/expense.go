package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a user's bookkeeping note. Expenses never touch account
// balances; they exist purely for budgeting display.
type Expense struct {
	ID        string
	UserID    string
	Name      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
