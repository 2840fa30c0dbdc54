package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a completed money movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeSent     TransactionType = "SENT"
	TransactionTypeReceived TransactionType = "RECEIVED"
)

// CounterpartUnknown is the display label used when a transaction's
// counterpart user cannot be resolved.
const CounterpartUnknown = "Unknown"

// Transaction is an immutable record explaining one balance mutation on
// one account. A settled send-money transfer produces two rows: SENT on
// the debited account and RECEIVED on the credited account.
type Transaction struct {
	ID         string
	AccountID  string
	Amount     decimal.Decimal
	Type       TransactionType
	SenderID   *string
	ReceiverID *string
	CreatedAt  time.Time
}

// TransactionRecord is a transaction joined with the display names of
// its counterpart users, for history rendering.
type TransactionRecord struct {
	Transaction

	SenderName   string
	ReceiverName string
}

// CounterpartLabel resolves the human-facing counterpart of the record:
// the receiver's name for SENT, the sender's name for RECEIVED, the
// transaction type itself for DEPOSIT/WITHDRAW.
func (r *TransactionRecord) CounterpartLabel() string {
	switch r.Type {
	case TransactionTypeSent:
		if r.ReceiverName == "" {
			return CounterpartUnknown
		}
		return r.ReceiverName
	case TransactionTypeReceived:
		if r.SenderName == "" {
			return CounterpartUnknown
		}
		return r.SenderName
	case TransactionTypeDeposit, TransactionTypeWithdraw:
		return string(r.Type)
	default:
		return CounterpartUnknown
	}
}
