package domain

import "time"

// Event types
const (
	EventTypeDepositCompleted    = "deposit.completed"
	EventTypeWithdrawalCompleted = "withdrawal.completed"
	EventTypeTransferInitiated   = "transfer.initiated"
	EventTypeTransferSettled     = "transfer.settled"
	EventTypeTransferDeclined    = "transfer.declined"
	EventTypeUserRegistered      = "user.registered"
)

// Aggregate types
const (
	AggregateTypeAccount  = "account"
	AggregateTypeTransfer = "transfer"
	AggregateTypeUser     = "user"
)

// OutboxEvent represents an event written in the same atomic unit as
// the money movement it describes, to be published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
