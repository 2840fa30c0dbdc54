package domain

import "errors"

var (
	// Lookup errors
	ErrUserNotFound     = errors.New("user not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrTransferNotFound = errors.New("pending transfer not found")
	ErrExpenseNotFound  = errors.New("expense not found")

	// Ledger errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrConflict          = errors.New("concurrent modification, retries exhausted")

	// Authorization errors
	ErrNotTransferRecipient = errors.New("transfer does not belong to this recipient")
	ErrEmailTaken           = errors.New("user with this email already exists")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
