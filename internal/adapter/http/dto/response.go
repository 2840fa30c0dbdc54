package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		ContactNumber: u.ContactNumber,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// AuthResponse carries a token and the authenticated user.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// RegisterResponse carries the new user and their accounts.
type RegisterResponse struct {
	User     *UserResponse      `json:"user"`
	Accounts []*AccountResponse `json:"accounts"`
}

// ProfileResponse carries a user and their accounts.
type ProfileResponse struct {
	User     *UserResponse      `json:"user"`
	Accounts []*AccountResponse `json:"accounts"`
}

// TransactionResponse represents a statement line in API responses.
// Counterpart carries the other party's display name for transfers and
// the movement type for deposits and withdrawals.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Counterpart string          `json:"counterpart"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a transaction record to a response.
func TransactionFromDomain(t *domain.TransactionRecord) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Counterpart: t.CounterpartLabel(),
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts transaction records to responses.
func TransactionsFromDomain(records []*domain.TransactionRecord) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PendingTransferResponse represents an unresolved incoming transfer.
type PendingTransferResponse struct {
	ID         string          `json:"id"`
	SenderName string          `json:"sender_name"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PendingTransferFromDomain converts a pending transfer view to a response.
func PendingTransferFromDomain(v *domain.PendingTransferView) *PendingTransferResponse {
	name := v.SenderName
	if name == "" {
		name = domain.CounterpartUnknown
	}

	return &PendingTransferResponse{
		ID:         v.ID,
		SenderName: name,
		Amount:     v.Amount,
		CreatedAt:  v.CreatedAt,
	}
}

// PendingTransfersFromDomain converts pending transfer views to responses.
func PendingTransfersFromDomain(views []*domain.PendingTransferView) []*PendingTransferResponse {
	result := make([]*PendingTransferResponse, len(views))
	for i, v := range views {
		result[i] = PendingTransferFromDomain(v)
	}
	return result
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
