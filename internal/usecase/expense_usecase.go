package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
)

// ExpenseUseCase handles a user's expense notes. Expenses are display
// bookkeeping only and never touch account balances.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	idGen       IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenseRepo ExpenseRepository, idGen IDGenerator) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		idGen:       idGen,
	}
}

// CreateExpense records an expense for the user.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, userID, name string, amount decimal.Decimal) (*domain.Expense, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	expense := &domain.Expense{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense deletes an expense owned by the user.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}

	if expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}

	return uc.expenseRepo.Delete(ctx, expenseID)
}

// ListExpenses returns the user's expenses.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, userID string) ([]*domain.Expense, error) {
	return uc.expenseRepo.ListByUser(ctx, userID)
}
