package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennybank/pennybank/internal/adapter/http/handler"
	apimiddleware "github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/infrastructure/auth"
	"github.com/pennybank/pennybank/internal/usecase"
	"github.com/pennybank/pennybank/internal/usecase/mocks"
)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	txManager := &mocks.MockTransactionManager{}
	retrier := &mocks.MockRetrier{}
	idGen := &mocks.MockIDGenerator{}
	userRepo := mocks.NewMockUserRepository()
	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	pendingRepo := mocks.NewMockPendingTransferRepository()
	expenseRepo := mocks.NewMockExpenseRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, outboxRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, accountRepo, txnRepo, outboxRepo, idGen, nil)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, txnRepo, pendingRepo, userRepo, outboxRepo, idGen, nil)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, idGen)

	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)
	logger := zerolog.Nop()

	cfg := RouterConfig{
		UserHandler:     handler.NewUserHandler(userUC, jwtManager, logger),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC, logger),
		TransferHandler: handler.NewTransferHandler(transferUC, logger),
		ExpenseHandler:  handler.NewExpenseHandler(expenseUC, logger),
		HealthHandler:   &handler.HealthHandler{},
		JWTManager:      jwtManager,
		Logger:          logger,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouterHealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouterRateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestNewRouterRejectsMissingToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewRouterRegisterCreatesUser(t *testing.T) {
	router := NewRouter(newRouterConfig())

	body := `{"email":"amy@example.com","name":"Amy","contact_number":"+14165550100","password":"sup3rSecret!"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "amy@example.com")
}

func TestNewRouterIdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.JWTManager = jwtManager
	}))

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "amy@example.com"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/deposit", strings.NewReader(`{"amount":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	router.ServeHTTP(rec, req)

	assert.True(t, store.checkCalled)
}

func TestNewRouterRegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRouter, ok := router.(chi.Router)
	require.True(t, ok, "router does not implement chi.Router")

	seen := map[string]bool{}
	err := chi.Walk(chiRouter, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/me/",
		"PATCH /api/v1/me/name",
		"POST /api/v1/accounts/deposit",
		"POST /api/v1/accounts/withdraw",
		"POST /api/v1/accounts/transfer",
		"GET /api/v1/transactions",
		"POST /api/v1/transfers/",
		"GET /api/v1/transfers/pending",
		"POST /api/v1/transfers/{id}/accept",
		"POST /api/v1/transfers/{id}/decline",
		"POST /api/v1/expenses/",
		"DELETE /api/v1/expenses/{id}",
	}

	for _, route := range expected {
		assert.True(t, seen[route], "expected route %s to be registered", route)
	}
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
