package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingTransfer is a sender-initiated, receiver-confirmed money
// movement that has not yet affected any balance. Its lifecycle is
// Created -> {Settled, Declined}; both terminal states delete the row,
// so a transfer that still exists is by definition unresolved.
type PendingTransfer struct {
	ID         string
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// Validate validates a pending transfer request.
func (p *PendingTransfer) Validate() error {
	if p.SenderID == p.ReceiverID {
		return ErrSameAccount
	}

	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// PendingTransferView is a pending transfer annotated with the sender's
// display name for the recipient's inbox.
type PendingTransferView struct {
	PendingTransfer

	SenderName string
}
