package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
	ErrInvalidName          = errors.New("invalid display name")
	ErrInvalidContactNumber = errors.New("invalid contact number")
	ErrInvalidAccountType   = errors.New("invalid account type")
)

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 255
)

// Business-rule ceilings. Deposits and withdrawals above these limits
// are rejected regardless of balance.
var (
	MaxDepositAmount    = decimal.NewFromInt(10000)
	MaxWithdrawalAmount = decimal.NewFromInt(2000)
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	contactRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidateName validates a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateContactNumber validates a phone number.
func ValidateContactNumber(contact string) error {
	contact = strings.TrimSpace(contact)

	if !contactRegex.MatchString(contact) {
		return ErrInvalidContactNumber
	}

	return nil
}

// ValidateDepositAmount validates a deposit against the business-rule
// ceiling of 10000 per transaction.
func ValidateDepositAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(MaxDepositAmount) {
		return fmt.Errorf("%w: deposit amount cannot exceed %s", ErrInvalidAmount, MaxDepositAmount)
	}

	return nil
}

// ValidateWithdrawalAmount validates a withdrawal against the
// business-rule ceiling of 2000 per transaction.
func ValidateWithdrawalAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(MaxWithdrawalAmount) {
		return fmt.Errorf("%w: withdrawal amount cannot exceed %s", ErrInvalidAmount, MaxWithdrawalAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
