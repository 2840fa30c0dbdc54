package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/usecase"
	"github.com/pennybank/pennybank/internal/usecase/mocks"
)

type transferFixture struct {
	uc          *usecase.TransferUseCase
	accountRepo *mocks.MockAccountRepository
	txnRepo     *mocks.MockTransactionRepository
	pendingRepo *mocks.MockPendingTransferRepository
	userRepo    *mocks.MockUserRepository
	outboxRepo  *mocks.MockOutboxRepository
}

func newTransferFixture() *transferFixture {
	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	pendingRepo := mocks.NewMockPendingTransferRepository()
	userRepo := mocks.NewMockUserRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	uc := usecase.NewTransferUseCase(
		&mocks.MockTransactionManager{},
		&mocks.MockRetrier{},
		accountRepo,
		txnRepo,
		pendingRepo,
		userRepo,
		outboxRepo,
		&mocks.MockIDGenerator{},
		nil,
	)

	return &transferFixture{
		uc:          uc,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
	}
}

func (f *transferFixture) seedUser(id, email, name string, chequingBalance decimal.Decimal) (chequingID string) {
	now := time.Now().UTC()
	f.userRepo.Seed(&domain.User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	f.accountRepo.Seed(&domain.Account{
		ID:        id + "-chq",
		UserID:    id,
		Type:      domain.AccountTypeChequing,
		Balance:   chequingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return id + "-chq"
}

func TestTransferUseCase_Initiate(t *testing.T) {
	t.Run("creates a pending transfer without moving funds", func(t *testing.T) {
		f := newTransferFixture()
		senderChq := f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)

		transfer, err := f.uc.Initiate(context.Background(), "alice", "bob@example.com", decimal.NewFromInt(200))

		require.NoError(t, err)
		assert.Equal(t, "alice", transfer.SenderID)
		assert.Equal(t, "bob", transfer.ReceiverID)
		assert.Equal(t, 1, f.pendingRepo.Count())
		assert.True(t, f.accountRepo.Balance(senderChq).Equal(decimal.NewFromInt(500)))
		assert.Empty(t, f.txnRepo.Transactions)
	})

	t.Run("insufficient balance creates no pending row", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(100))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)

		_, err := f.uc.Initiate(context.Background(), "alice", "bob@example.com", decimal.NewFromInt(200))

		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, 0, f.pendingRepo.Count())
	})

	t.Run("unknown recipient email", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))

		_, err := f.uc.Initiate(context.Background(), "alice", "nobody@example.com", decimal.NewFromInt(50))

		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("rejects sending to self", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))

		_, err := f.uc.Initiate(context.Background(), "alice", "alice@example.com", decimal.NewFromInt(50))

		require.ErrorIs(t, err, domain.ErrSameAccount)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)

		_, err := f.uc.Initiate(context.Background(), "alice", "bob@example.com", decimal.Zero)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = f.uc.Initiate(context.Background(), "alice", "bob@example.com", decimal.NewFromInt(-10))
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestTransferUseCase_Accept(t *testing.T) {
	seedPending := func(f *transferFixture, amount decimal.Decimal) *domain.PendingTransfer {
		pending := &domain.PendingTransfer{
			ID:         "pt-1",
			SenderID:   "alice",
			ReceiverID: "bob",
			Amount:     amount,
			CreatedAt:  time.Now().UTC(),
		}
		f.pendingRepo.Seed(pending)
		return pending
	}

	t.Run("moves funds and writes one SENT and one RECEIVED row", func(t *testing.T) {
		f := newTransferFixture()
		senderChq := f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		receiverChq := f.seedUser("bob", "bob@example.com", "Bob", decimal.NewFromInt(100))
		seedPending(f, decimal.NewFromInt(200))

		err := f.uc.Accept(context.Background(), "bob", "pt-1")

		require.NoError(t, err)
		assert.True(t, f.accountRepo.Balance(senderChq).Equal(decimal.NewFromInt(300)))
		assert.True(t, f.accountRepo.Balance(receiverChq).Equal(decimal.NewFromInt(300)))

		sent := f.txnRepo.ByType(domain.TransactionTypeSent)
		received := f.txnRepo.ByType(domain.TransactionTypeReceived)
		require.Len(t, sent, 1)
		require.Len(t, received, 1)
		assert.Equal(t, senderChq, sent[0].AccountID)
		assert.Equal(t, receiverChq, received[0].AccountID)
		assert.True(t, sent[0].Amount.Equal(received[0].Amount))
		require.NotNil(t, sent[0].SenderID)
		require.NotNil(t, received[0].ReceiverID)
		assert.Equal(t, "alice", *sent[0].SenderID)
		assert.Equal(t, "bob", *received[0].ReceiverID)

		assert.Equal(t, 0, f.pendingRepo.Count())
		assert.Equal(t, []string{domain.EventTypeTransferSettled}, f.outboxRepo.EventTypes())
	})

	t.Run("resolving twice fails the second call", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)
		seedPending(f, decimal.NewFromInt(100))

		require.NoError(t, f.uc.Accept(context.Background(), "bob", "pt-1"))
		err := f.uc.Accept(context.Background(), "bob", "pt-1")

		require.ErrorIs(t, err, domain.ErrTransferNotFound)
	})

	t.Run("only the recipient may accept", func(t *testing.T) {
		f := newTransferFixture()
		senderChq := f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)
		f.seedUser("carol", "carol@example.com", "Carol", decimal.Zero)
		seedPending(f, decimal.NewFromInt(100))

		err := f.uc.Accept(context.Background(), "carol", "pt-1")

		require.ErrorIs(t, err, domain.ErrNotTransferRecipient)
		assert.Equal(t, 1, f.pendingRepo.Count())
		assert.True(t, f.accountRepo.Balance(senderChq).Equal(decimal.NewFromInt(500)))
	})

	t.Run("sender balance re-validated at settlement", func(t *testing.T) {
		f := newTransferFixture()
		senderChq := f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		receiverChq := f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)
		seedPending(f, decimal.NewFromInt(200))

		// Balance drained between initiation and settlement.
		f.accountRepo.Seed(&domain.Account{
			ID:      senderChq,
			UserID:  "alice",
			Type:    domain.AccountTypeChequing,
			Balance: decimal.NewFromInt(50),
		})

		err := f.uc.Accept(context.Background(), "bob", "pt-1")

		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.accountRepo.Balance(receiverChq).IsZero())
		assert.Equal(t, 1, f.pendingRepo.Count())
		assert.Empty(t, f.txnRepo.Transactions)
	})

	t.Run("locks both accounts in sorted order", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("zed", "zed@example.com", "Zed", decimal.NewFromInt(500))
		f.seedUser("amy", "amy@example.com", "Amy", decimal.Zero)
		f.pendingRepo.Seed(&domain.PendingTransfer{
			ID:         "pt-2",
			SenderID:   "zed",
			ReceiverID: "amy",
			Amount:     decimal.NewFromInt(10),
			CreatedAt:  time.Now().UTC(),
		})

		require.NoError(t, f.uc.Accept(context.Background(), "amy", "pt-2"))

		require.Len(t, f.accountRepo.LockedIDs, 1)
		assert.Equal(t, []string{"amy-chq", "zed-chq"}, f.accountRepo.LockedIDs[0])
	})
}

func TestTransferUseCase_Decline(t *testing.T) {
	t.Run("deletes the pending row with no balance effect", func(t *testing.T) {
		f := newTransferFixture()
		senderChq := f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		receiverChq := f.seedUser("bob", "bob@example.com", "Bob", decimal.NewFromInt(100))
		f.pendingRepo.Seed(&domain.PendingTransfer{
			ID:         "pt-1",
			SenderID:   "alice",
			ReceiverID: "bob",
			Amount:     decimal.NewFromInt(200),
			CreatedAt:  time.Now().UTC(),
		})

		err := f.uc.Decline(context.Background(), "bob", "pt-1")

		require.NoError(t, err)
		assert.Equal(t, 0, f.pendingRepo.Count())
		assert.True(t, f.accountRepo.Balance(senderChq).Equal(decimal.NewFromInt(500)))
		assert.True(t, f.accountRepo.Balance(receiverChq).Equal(decimal.NewFromInt(100)))
		assert.Empty(t, f.txnRepo.Transactions)
		assert.Equal(t, []string{domain.EventTypeTransferDeclined}, f.outboxRepo.EventTypes())
	})

	t.Run("only the recipient may decline", func(t *testing.T) {
		f := newTransferFixture()
		f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
		f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)
		f.pendingRepo.Seed(&domain.PendingTransfer{
			ID:         "pt-1",
			SenderID:   "alice",
			ReceiverID: "bob",
			Amount:     decimal.NewFromInt(50),
			CreatedAt:  time.Now().UTC(),
		})

		err := f.uc.Decline(context.Background(), "alice", "pt-1")

		require.ErrorIs(t, err, domain.ErrNotTransferRecipient)
		assert.Equal(t, 1, f.pendingRepo.Count())
	})

	t.Run("unknown transfer", func(t *testing.T) {
		f := newTransferFixture()

		err := f.uc.Decline(context.Background(), "bob", "missing")

		require.ErrorIs(t, err, domain.ErrTransferNotFound)
	})
}

func TestTransferUseCase_ListPending(t *testing.T) {
	f := newTransferFixture()
	f.seedUser("alice", "alice@example.com", "Alice", decimal.NewFromInt(500))
	f.seedUser("bob", "bob@example.com", "Bob", decimal.Zero)

	f.pendingRepo.Seed(&domain.PendingTransfer{
		ID:         "pt-1",
		SenderID:   "alice",
		ReceiverID: "bob",
		Amount:     decimal.NewFromInt(25),
		CreatedAt:  time.Now().UTC(),
	})
	f.pendingRepo.Seed(&domain.PendingTransfer{
		ID:         "pt-2",
		SenderID:   "alice",
		ReceiverID: "carol",
		Amount:     decimal.NewFromInt(75),
		CreatedAt:  time.Now().UTC(),
	})

	views, err := f.uc.ListPending(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "pt-1", views[0].ID)
}
