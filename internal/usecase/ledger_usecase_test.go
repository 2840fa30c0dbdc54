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

type ledgerFixture struct {
	uc          *usecase.LedgerUseCase
	accountRepo *mocks.MockAccountRepository
	txnRepo     *mocks.MockTransactionRepository
	outboxRepo  *mocks.MockOutboxRepository
}

func newLedgerFixture() *ledgerFixture {
	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	uc := usecase.NewLedgerUseCase(
		&mocks.MockTransactionManager{},
		&mocks.MockRetrier{},
		accountRepo,
		txnRepo,
		outboxRepo,
		&mocks.MockIDGenerator{},
		nil,
	)

	return &ledgerFixture{
		uc:          uc,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		outboxRepo:  outboxRepo,
	}
}

func (f *ledgerFixture) seedAccounts(userID string, chequing, savings decimal.Decimal) (chequingID, savingsID string) {
	now := time.Now().UTC()
	f.accountRepo.Seed(&domain.Account{
		ID:        userID + "-chq",
		UserID:    userID,
		Type:      domain.AccountTypeChequing,
		Balance:   chequing,
		CreatedAt: now,
		UpdatedAt: now,
	})
	f.accountRepo.Seed(&domain.Account{
		ID:        userID + "-sav",
		UserID:    userID,
		Type:      domain.AccountTypeSavings,
		Balance:   savings,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return userID + "-chq", userID + "-sav"
}

func TestLedgerUseCase_Deposit(t *testing.T) {
	t.Run("credits chequing and records a deposit transaction", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, _ := f.seedAccounts("user-1", decimal.NewFromInt(100), decimal.Zero)

		account, err := f.uc.Deposit(context.Background(), "user-1", decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(600)))
		assert.True(t, f.accountRepo.Balance(chequingID).Equal(decimal.NewFromInt(600)))

		deposits := f.txnRepo.ByType(domain.TransactionTypeDeposit)
		require.Len(t, deposits, 1)
		assert.Equal(t, chequingID, deposits[0].AccountID)
		assert.True(t, deposits[0].Amount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, []string{domain.EventTypeDepositCompleted}, f.outboxRepo.EventTypes())
	})

	t.Run("accepts the ceiling exactly", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.Zero, decimal.Zero)

		account, err := f.uc.Deposit(context.Background(), "user-1", decimal.NewFromInt(10000))

		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("rejects amounts above the ceiling", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, _ := f.seedAccounts("user-1", decimal.NewFromInt(100), decimal.Zero)

		_, err := f.uc.Deposit(context.Background(), "user-1", decimal.NewFromFloat(10000.01))

		require.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.True(t, f.accountRepo.Balance(chequingID).Equal(decimal.NewFromInt(100)))
		assert.Empty(t, f.txnRepo.Transactions)
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(100), decimal.Zero)

		_, err := f.uc.Deposit(context.Background(), "user-1", decimal.Zero)
		require.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = f.uc.Deposit(context.Background(), "user-1", decimal.NewFromInt(-5))
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.uc.Deposit(context.Background(), "ghost", decimal.NewFromInt(50))

		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	t.Run("debits chequing and records a withdraw transaction", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, _ := f.seedAccounts("user-1", decimal.NewFromInt(1000), decimal.Zero)

		account, err := f.uc.Withdraw(context.Background(), "user-1", decimal.NewFromInt(300))

		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(700)))

		withdrawals := f.txnRepo.ByType(domain.TransactionTypeWithdraw)
		require.Len(t, withdrawals, 1)
		assert.Equal(t, chequingID, withdrawals[0].AccountID)
		assert.True(t, withdrawals[0].Amount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("rejects amounts above the ceiling", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(5000), decimal.Zero)

		_, err := f.uc.Withdraw(context.Background(), "user-1", decimal.NewFromInt(2001))

		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("insufficient funds leaves balance and history untouched", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, _ := f.seedAccounts("user-1", decimal.NewFromInt(100), decimal.Zero)

		_, err := f.uc.Withdraw(context.Background(), "user-1", decimal.NewFromInt(200))

		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.accountRepo.Balance(chequingID).Equal(decimal.NewFromInt(100)))
		assert.Empty(t, f.txnRepo.Transactions)
		assert.Empty(t, f.outboxRepo.Events)
	})

	t.Run("can drain the balance to exactly zero", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, _ := f.seedAccounts("user-1", decimal.NewFromInt(150), decimal.Zero)

		_, err := f.uc.Withdraw(context.Background(), "user-1", decimal.NewFromInt(150))

		require.NoError(t, err)
		assert.True(t, f.accountRepo.Balance(chequingID).IsZero())
	})
}

func TestLedgerUseCase_InternalTransfer(t *testing.T) {
	t.Run("moves funds and conserves the total", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, savingsID := f.seedAccounts("user-1", decimal.NewFromInt(800), decimal.NewFromInt(200))

		source, target, err := f.uc.InternalTransfer(context.Background(), usecase.InternalTransferInput{
			UserID:     "user-1",
			SourceType: domain.AccountTypeChequing,
			TargetType: domain.AccountTypeSavings,
			Amount:     decimal.NewFromInt(300),
		})

		require.NoError(t, err)
		assert.True(t, source.Balance.Equal(decimal.NewFromInt(500)))
		assert.True(t, target.Balance.Equal(decimal.NewFromInt(500)))

		total := f.accountRepo.Balance(chequingID).Add(f.accountRepo.Balance(savingsID))
		assert.True(t, total.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("writes no transaction rows", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(800), decimal.Zero)

		_, _, err := f.uc.InternalTransfer(context.Background(), usecase.InternalTransferInput{
			UserID:     "user-1",
			SourceType: domain.AccountTypeChequing,
			TargetType: domain.AccountTypeSavings,
			Amount:     decimal.NewFromInt(100),
		})

		require.NoError(t, err)
		assert.Empty(t, f.txnRepo.Transactions)
	})

	t.Run("locks accounts in sorted order", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(800), decimal.NewFromInt(50))

		_, _, err := f.uc.InternalTransfer(context.Background(), usecase.InternalTransferInput{
			UserID:     "user-1",
			SourceType: domain.AccountTypeSavings,
			TargetType: domain.AccountTypeChequing,
			Amount:     decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		require.Len(t, f.accountRepo.LockedIDs, 1)
		assert.Equal(t, []string{"user-1-chq", "user-1-sav"}, f.accountRepo.LockedIDs[0])
	})

	t.Run("rejects same source and target", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(800), decimal.Zero)

		_, _, err := f.uc.InternalTransfer(context.Background(), usecase.InternalTransferInput{
			UserID:     "user-1",
			SourceType: domain.AccountTypeChequing,
			TargetType: domain.AccountTypeChequing,
			Amount:     decimal.NewFromInt(10),
		})

		require.ErrorIs(t, err, domain.ErrSameAccount)
	})

	t.Run("insufficient source balance", func(t *testing.T) {
		f := newLedgerFixture()
		chequingID, savingsID := f.seedAccounts("user-1", decimal.NewFromInt(100), decimal.NewFromInt(50))

		_, _, err := f.uc.InternalTransfer(context.Background(), usecase.InternalTransferInput{
			UserID:     "user-1",
			SourceType: domain.AccountTypeChequing,
			TargetType: domain.AccountTypeSavings,
			Amount:     decimal.NewFromInt(101),
		})

		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.accountRepo.Balance(chequingID).Equal(decimal.NewFromInt(100)))
		assert.True(t, f.accountRepo.Balance(savingsID).Equal(decimal.NewFromInt(50)))
	})
}

func TestLedgerUseCase_TransactionHistory(t *testing.T) {
	t.Run("returns newest first for the chequing account", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(1000), decimal.Zero)

		_, err := f.uc.Deposit(context.Background(), "user-1", decimal.NewFromInt(500))
		require.NoError(t, err)
		_, err = f.uc.Withdraw(context.Background(), "user-1", decimal.NewFromInt(200))
		require.NoError(t, err)

		records, err := f.uc.TransactionHistory(context.Background(), usecase.TransactionHistoryInput{UserID: "user-1"})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, domain.TransactionTypeWithdraw, records[0].Type)
		assert.Equal(t, domain.TransactionTypeDeposit, records[1].Type)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccounts("user-1", decimal.NewFromInt(1000), decimal.Zero)

		for i := 0; i < 3; i++ {
			_, err := f.uc.Deposit(context.Background(), "user-1", decimal.NewFromInt(10))
			require.NoError(t, err)
		}

		records, err := f.uc.TransactionHistory(context.Background(), usecase.TransactionHistoryInput{
			UserID: "user-1",
			Limit:  2,
			Offset: 2,
		})

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.uc.TransactionHistory(context.Background(), usecase.TransactionHistoryInput{UserID: "ghost"})

		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}
