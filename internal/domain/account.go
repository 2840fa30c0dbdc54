package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies one of a user's accounts.
type AccountType string

const (
	AccountTypeChequing AccountType = "chequing"
	AccountTypeSavings  AccountType = "savings"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeChequing: true,
	AccountTypeSavings:  true,
}

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// Account holds a non-negative balance for exactly one user.
// Balances are only ever mutated through the account repository's
// guarded delta operation, never by direct field assignment.
type Account struct {
	ID        string
	UserID    string
	Type      AccountType
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit checks if the account can be debited by amount without
// going negative. The authoritative check happens in the store; this
// is the advisory pre-check used before a unit is opened.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return !a.Balance.Sub(amount).IsNegative()
}
