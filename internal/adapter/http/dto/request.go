package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number,omitempty"`
	Password      string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:         r.Email,
		Name:          r.Name,
		ContactNumber: r.ContactNumber,
		Password:      r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AmountRequest carries a single money amount, used by deposits and
// withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InternalTransferRequest represents a transfer between the user's own
// accounts.
type InternalTransferRequest struct {
	SourceType string          `json:"source_type"`
	TargetType string          `json:"target_type"`
	Amount     decimal.Decimal `json:"amount"`
}

// SendMoneyRequest represents a request to initiate a transfer to
// another user, addressed by email.
type SendMoneyRequest struct {
	ReceiverEmail string          `json:"receiver_email"`
	Amount        decimal.Decimal `json:"amount"`
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// UpdateNameRequest changes the user's display name.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// UpdateEmailRequest changes the user's email.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest changes the user's password.
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// UpdateContactNumberRequest changes the user's contact number.
type UpdateContactNumberRequest struct {
	ContactNumber string `json:"contact_number"`
}
