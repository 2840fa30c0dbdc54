// Package mocks provides hand-rolled in-memory test doubles for the
// usecase repository interfaces. Each mock keeps a map-backed default
// implementation and exposes function fields to override behavior per
// test.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/usecase"
)

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	BeginCalls int
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.BeginCalls++
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockRetrier runs the operation once with no retry.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// MockUserRepository is a map-backed user store.
type MockUserRepository struct {
	CreateTxFunc   func(ctx context.Context, tx usecase.Transaction, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc     func(ctx context.Context, user *domain.User) error

	mu    sync.Mutex
	users map[string]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Seed stores a user directly, bypassing any override.
func (m *MockUserRepository) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
}

func (m *MockUserRepository) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

// MockAccountRepository is a map-backed account store. The default
// ApplyDelta enforces the non-negative balance guard so that
// conservation and insufficiency scenarios behave like the real store.
type MockAccountRepository struct {
	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByUserAndTypeFunc func(ctx context.Context, userID string, accountType domain.AccountType) (*domain.Account, error)
	ListByUserFunc       func(ctx context.Context, userID string) ([]*domain.Account, error)
	LockByIDsFunc        func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	ApplyDeltaFunc       func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error

	mu       sync.Mutex
	accounts map[string]*domain.Account

	LockedIDs [][]string
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly, bypassing any override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := *account
	m.accounts[account.ID] = &a
}

// Balance returns the current stored balance for an account ID.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account, ok := m.accounts[id]; ok {
		return account.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a := *account
	m.accounts[account.ID] = &a
	return nil
}

func (m *MockAccountRepository) GetByUserAndType(ctx context.Context, userID string, accountType domain.AccountType) (*domain.Account, error) {
	if m.GetByUserAndTypeFunc != nil {
		return m.GetByUserAndTypeFunc(ctx, userID, accountType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if account.UserID == userID && account.Type == accountType {
			a := *account
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Account
	for _, account := range m.accounts {
		if account.UserID == userID {
			a := *account
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result, nil
}

func (m *MockAccountRepository) LockByIDs(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.LockByIDsFunc != nil {
		return m.LockByIDsFunc(ctx, tx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockedIDs = append(m.LockedIDs, append([]string(nil), ids...))
	var result []*domain.Account
	for _, id := range ids {
		account, ok := m.accounts[id]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		a := *account
		result = append(result, &a)
	}
	return result, nil
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	next := account.Balance.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientFunds
	}
	account.Balance = next
	account.Version++
	account.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is an append-only slice-backed store.
type MockTransactionRepository struct {
	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error)

	mu           sync.Mutex
	Transactions []*domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *txn
	m.Transactions = append(m.Transactions, &t)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*domain.TransactionRecord
	for i := len(m.Transactions) - 1; i >= 0; i-- {
		if m.Transactions[i].AccountID == accountID {
			matched = append(matched, &domain.TransactionRecord{Transaction: *m.Transactions[i]})
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// ByType returns the stored transactions of one type.
func (m *MockTransactionRepository) ByType(txnType domain.TransactionType) []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Transaction
	for _, txn := range m.Transactions {
		if txn.Type == txnType {
			result = append(result, txn)
		}
	}
	return result
}

// MockPendingTransferRepository is a map-backed pending transfer store.
type MockPendingTransferRepository struct {
	CreateFunc         func(ctx context.Context, transfer *domain.PendingTransfer) error
	ListByReceiverFunc func(ctx context.Context, receiverID string) ([]*domain.PendingTransferView, error)
	GetForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.PendingTransfer, error)
	DeleteFunc         func(ctx context.Context, tx usecase.Transaction, id string) error

	mu        sync.Mutex
	transfers map[string]*domain.PendingTransfer
}

func NewMockPendingTransferRepository() *MockPendingTransferRepository {
	return &MockPendingTransferRepository{transfers: make(map[string]*domain.PendingTransfer)}
}

// Seed stores a pending transfer directly, bypassing any override.
func (m *MockPendingTransferRepository) Seed(transfer *domain.PendingTransfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *transfer
	m.transfers[transfer.ID] = &t
}

// Count returns how many pending transfers are stored.
func (m *MockPendingTransferRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transfers)
}

func (m *MockPendingTransferRepository) Create(ctx context.Context, transfer *domain.PendingTransfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *transfer
	m.transfers[transfer.ID] = &t
	return nil
}

func (m *MockPendingTransferRepository) ListByReceiver(ctx context.Context, receiverID string) ([]*domain.PendingTransferView, error) {
	if m.ListByReceiverFunc != nil {
		return m.ListByReceiverFunc(ctx, receiverID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.PendingTransferView
	for _, transfer := range m.transfers {
		if transfer.ReceiverID == receiverID {
			result = append(result, &domain.PendingTransferView{PendingTransfer: *transfer})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *MockPendingTransferRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PendingTransfer, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	transfer, ok := m.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	t := *transfer
	return &t, nil
}

func (m *MockPendingTransferRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transfers[id]; !ok {
		return domain.ErrTransferNotFound
	}
	delete(m.transfers, id)
	return nil
}

// MockExpenseRepository is a map-backed expense store.
type MockExpenseRepository struct {
	CreateFunc     func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Expense, error)
	DeleteFunc     func(ctx context.Context, id string) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Expense, error)

	mu       sync.Mutex
	expenses map[string]*domain.Expense
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{expenses: make(map[string]*domain.Expense)}
}

// Seed stores an expense directly, bypassing any override.
func (m *MockExpenseRepository) Seed(expense *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := *expense
	m.expenses[expense.ID] = &e
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := *expense
	m.expenses[expense.ID] = &e
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expense, ok := m.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	e := *expense
	return &e, nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Expense
	for _, expense := range m.expenses {
		if expense.UserID == userID {
			e := *expense
			result = append(result, &e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// MockOutboxRepository is a slice-backed outbox store.
type MockOutboxRepository struct {
	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error

	mu     sync.Mutex
	Events []*domain.OutboxEvent
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e := *event
	m.Events = append(m.Events, &e)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.OutboxEvent
	for _, event := range m.Events {
		if !event.Published {
			e := *event
			result = append(result, &e)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.Events {
		if event.ID == id {
			event.Published = true
			t := publishedAt
			event.PublishedAt = &t
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

// EventTypes returns the stored event types in creation order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, event := range m.Events {
		types = append(types, event.EventType)
	}
	return types
}
