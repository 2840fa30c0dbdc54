package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/infrastructure/metrics"
)

// LedgerUseCase exposes the single-user money movements: deposits and
// withdrawals on the chequing account, transfers between a user's own
// accounts, and the derived transaction history. Each mutating
// operation runs as one atomic unit; conflicting units on the same
// account serialize on row locks and are retried on conflict.
type LedgerUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// Deposit credits the user's chequing account and records a DEPOSIT
// transaction in the same atomic unit.
func (uc *LedgerUseCase) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateDepositAmount(amount); err != nil {
		return nil, err
	}

	account, err := uc.mutateChequing(ctx, userID, amount, domain.TransactionTypeDeposit, domain.EventTypeDepositCompleted)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsTotal.Inc()
		uc.metrics.MovementAmount.Observe(amount.InexactFloat64())
	}

	return account, nil
}

// Withdraw debits the user's chequing account and records a WITHDRAW
// transaction in the same atomic unit. The sufficiency check runs as
// part of the guarded balance update, never as a separate read.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateWithdrawalAmount(amount); err != nil {
		return nil, err
	}

	account, err := uc.mutateChequing(ctx, userID, amount.Neg(), domain.TransactionTypeWithdraw, domain.EventTypeWithdrawalCompleted)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsTotal.Inc()
		uc.metrics.MovementAmount.Observe(amount.InexactFloat64())
	}

	return account, nil
}

func (uc *LedgerUseCase) mutateChequing(
	ctx context.Context,
	userID string,
	delta decimal.Decimal,
	txnType domain.TransactionType,
	eventType string,
) (*domain.Account, error) {
	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		acct, err := uc.accountRepo.GetByUserAndType(txCtx, userID, domain.AccountTypeChequing)
		if err != nil {
			return err
		}

		if _, err := uc.accountRepo.LockByIDs(txCtx, tx, []string{acct.ID}); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.accountRepo.ApplyDelta(txCtx, tx, acct.ID, delta, now); err != nil {
			return err
		}

		txn := &domain.Transaction{
			ID:        uc.idGen.Generate(),
			AccountID: acct.ID,
			Amount:    delta.Abs(),
			Type:      txnType,
			CreatedAt: now,
		}
		if err := uc.txnRepo.Create(txCtx, tx, txn); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   acct.ID,
			AggregateType: domain.AggregateTypeAccount,
			EventType:     eventType,
			Payload: map[string]any{
				"account_id":     acct.ID,
				"transaction_id": txn.ID,
				"amount":         delta.Abs().String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		acct.Balance = acct.Balance.Add(delta)
		acct.Version++
		acct.UpdatedAt = now
		account = acct

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// InternalTransferInput represents input for a transfer between two
// accounts of the same user.
type InternalTransferInput struct {
	UserID     string
	SourceType domain.AccountType
	TargetType domain.AccountType
	Amount     decimal.Decimal
}

// InternalTransfer moves funds between two accounts of the same user
// in one atomic unit. No transaction rows are written for this path;
// the statement history is defined against the chequing account's
// external movements.
func (uc *LedgerUseCase) InternalTransfer(ctx context.Context, input InternalTransferInput) (source, target *domain.Account, err error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, domain.ErrInvalidAmount
	}

	if input.SourceType == input.TargetType {
		return nil, nil, domain.ErrSameAccount
	}

	err = uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		src, err := uc.accountRepo.GetByUserAndType(txCtx, input.UserID, input.SourceType)
		if err != nil {
			return err
		}

		dst, err := uc.accountRepo.GetByUserAndType(txCtx, input.UserID, input.TargetType)
		if err != nil {
			return err
		}

		ids := []string{src.ID, dst.ID}
		sort.Strings(ids)
		if _, err := uc.accountRepo.LockByIDs(txCtx, tx, ids); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.accountRepo.ApplyDelta(txCtx, tx, src.ID, input.Amount.Neg(), now); err != nil {
			return err
		}

		if err := uc.accountRepo.ApplyDelta(txCtx, tx, dst.ID, input.Amount, now); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		src.Balance = src.Balance.Sub(input.Amount)
		src.Version++
		dst.Balance = dst.Balance.Add(input.Amount)
		dst.Version++
		source, target = src, dst

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InternalTransfersTotal.Inc()
		uc.metrics.MovementAmount.Observe(input.Amount.InexactFloat64())
	}

	return source, target, nil
}

// TransactionHistoryInput represents input for listing history.
type TransactionHistoryInput struct {
	UserID string
	Limit  int
	Offset int
}

// TransactionHistory returns the chequing account's transactions,
// newest first, enriched with counterpart display names.
func (uc *LedgerUseCase) TransactionHistory(ctx context.Context, input TransactionHistoryInput) ([]*domain.TransactionRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	account, err := uc.accountRepo.GetByUserAndType(ctx, input.UserID, domain.AccountTypeChequing)
	if err != nil {
		return nil, err
	}

	return uc.txnRepo.ListByAccount(ctx, account.ID, limit, offset)
}
