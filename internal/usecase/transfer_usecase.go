package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/infrastructure/metrics"
)

// TransferUseCase handles the two-phase send-money protocol: a sender
// initiates a pending transfer, and only the recipient's accept moves
// funds. The initiation-time balance check is advisory; the real
// enforcement is the guarded debit inside the settlement unit.
type TransferUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	pendingRepo PendingTransferRepository
	userRepo    UserRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	pendingRepo PendingTransferRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// Initiate validates the request against the sender's current chequing
// balance and creates a pending transfer. No funds move and nothing is
// reserved; the balance may still change before settlement.
func (uc *TransferUseCase) Initiate(ctx context.Context, senderID, receiverEmail string, amount decimal.Decimal) (*domain.PendingTransfer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	receiver, err := uc.userRepo.GetByEmail(ctx, receiverEmail)
	if err != nil {
		return nil, err
	}

	transfer := &domain.PendingTransfer{
		ID:         uc.idGen.Generate(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	senderAccount, err := uc.accountRepo.GetByUserAndType(ctx, senderID, domain.AccountTypeChequing)
	if err != nil {
		return nil, err
	}

	if !senderAccount.CanDebit(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if err := uc.pendingRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersInitiated.Inc()
	}

	return transfer, nil
}

// ListPending returns the unresolved transfers addressed to the user,
// each annotated with the sender's display name.
func (uc *TransferUseCase) ListPending(ctx context.Context, receiverID string) ([]*domain.PendingTransferView, error) {
	return uc.pendingRepo.ListByReceiver(ctx, receiverID)
}

// Accept settles a pending transfer addressed to actingUserID: inside
// one atomic unit it re-validates the sender's balance via the guarded
// debit, credits the receiver, writes the SENT and RECEIVED rows, and
// deletes the pending record. A transfer already resolved by a
// concurrent call no longer exists and fails ErrTransferNotFound.
func (uc *TransferUseCase) Accept(ctx context.Context, actingUserID, transferID string) error {
	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		pending, err := uc.pendingRepo.GetForUpdate(txCtx, tx, transferID)
		if err != nil {
			return err
		}

		if pending.ReceiverID != actingUserID {
			return domain.ErrNotTransferRecipient
		}

		senderAccount, err := uc.accountRepo.GetByUserAndType(txCtx, pending.SenderID, domain.AccountTypeChequing)
		if err != nil {
			return err
		}

		receiverAccount, err := uc.accountRepo.GetByUserAndType(txCtx, pending.ReceiverID, domain.AccountTypeChequing)
		if err != nil {
			return err
		}

		ids := []string{senderAccount.ID, receiverAccount.ID}
		sort.Strings(ids)
		if _, err := uc.accountRepo.LockByIDs(txCtx, tx, ids); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := uc.accountRepo.ApplyDelta(txCtx, tx, senderAccount.ID, pending.Amount.Neg(), now); err != nil {
			return err
		}

		if err := uc.accountRepo.ApplyDelta(txCtx, tx, receiverAccount.ID, pending.Amount, now); err != nil {
			return err
		}

		sent := &domain.Transaction{
			ID:         uc.idGen.Generate(),
			AccountID:  senderAccount.ID,
			Amount:     pending.Amount,
			Type:       domain.TransactionTypeSent,
			SenderID:   &pending.SenderID,
			ReceiverID: &pending.ReceiverID,
			CreatedAt:  now,
		}
		if err := uc.txnRepo.Create(txCtx, tx, sent); err != nil {
			return err
		}

		received := &domain.Transaction{
			ID:         uc.idGen.Generate(),
			AccountID:  receiverAccount.ID,
			Amount:     pending.Amount,
			Type:       domain.TransactionTypeReceived,
			SenderID:   &pending.SenderID,
			ReceiverID: &pending.ReceiverID,
			CreatedAt:  now,
		}
		if err := uc.txnRepo.Create(txCtx, tx, received); err != nil {
			return err
		}

		if err := uc.pendingRepo.Delete(txCtx, tx, pending.ID); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   pending.ID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferSettled,
			Payload: map[string]any{
				"transfer_id": pending.ID,
				"sender_id":   pending.SenderID,
				"receiver_id": pending.ReceiverID,
				"amount":      pending.Amount.String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersSettled.Inc()
	}

	return nil
}

// Decline deletes a pending transfer addressed to actingUserID with no
// balance effect.
func (uc *TransferUseCase) Decline(ctx context.Context, actingUserID, transferID string) error {
	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		pending, err := uc.pendingRepo.GetForUpdate(txCtx, tx, transferID)
		if err != nil {
			return err
		}

		if pending.ReceiverID != actingUserID {
			return domain.ErrNotTransferRecipient
		}

		if err := uc.pendingRepo.Delete(txCtx, tx, pending.ID); err != nil {
			return err
		}

		now := time.Now().UTC()
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   pending.ID,
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferDeclined,
			Payload: map[string]any{
				"transfer_id": pending.ID,
				"sender_id":   pending.SenderID,
				"receiver_id": pending.ReceiverID,
				"amount":      pending.Amount.String(),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersDeclined.Inc()
	}

	return nil
}
