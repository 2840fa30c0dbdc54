package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennybank/pennybank/internal/domain"
)

// ExpenseRepository implements expense persistence.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts an expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, name, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Name,
		decimalToNumeric(expense.Amount),
		timeToPgTimestamptz(expense.CreatedAt),
	)

	return err
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `
		SELECT id, user_id, name, amount, created_at
		FROM expenses
		WHERE id = $1
	`

	var (
		expense   domain.Expense
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Name,
		&amount,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.CreatedAt = createdAt.Time

	return &expense, nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByUser retrieves a user's expenses, newest first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, name, amount, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var (
			expense   domain.Expense
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&expense.ID,
			&expense.UserID,
			&expense.Name,
			&amount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		expense.Amount = numericToDecimal(amount)
		expense.CreatedAt = createdAt.Time

		expenses = append(expenses, &expense)
	}

	return expenses, rows.Err()
}
