package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// AccountRepository defines data access for accounts. All balance
// mutations go through ApplyDelta; there is no unguarded update.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByUserAndType(ctx context.Context, userID string, accountType domain.AccountType) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	// LockByIDs acquires FOR UPDATE row locks on the given accounts,
	// always in sorted ID order to prevent lock-order deadlocks.
	LockByIDs(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// ApplyDelta atomically adjusts a balance by delta (negative for a
	// debit) as a single guarded statement. Returns
	// domain.ErrInsufficientFunds if the resulting balance would be
	// negative.
	ApplyDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines append-only data access for
// transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	// ListByAccount returns transactions newest first, joined with the
	// counterpart users' display names.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error)
}

// PendingTransferRepository defines data access for unsettled
// send-money transfers.
type PendingTransferRepository interface {
	Create(ctx context.Context, transfer *domain.PendingTransfer) error
	ListByReceiver(ctx context.Context, receiverID string) ([]*domain.PendingTransferView, error)
	// GetForUpdate locks the pending row for the duration of the unit
	// so that concurrent resolutions serialize; the loser observes the
	// deleted row and fails.
	GetForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PendingTransfer, error)
	Delete(ctx context.Context, tx Transaction, id string) error
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an atomic unit when the store reports a
// serialization conflict, surfacing domain.ErrConflict once the
// bounded retries are exhausted.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
