package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pennybank/pennybank/internal/adapter/http/dto"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/domain"
	"github.com/pennybank/pennybank/internal/usecase"
)

// LedgerHandler handles deposit, withdrawal, internal transfer and
// history endpoints.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
	logger   zerolog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, logger: logger}
}

// Deposit credits the user's chequing account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.ledgerUC.Deposit(r.Context(), user.ID, req.Amount)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to deposit")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Withdraw debits the user's chequing account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.ledgerUC.Withdraw(r.Context(), user.ID, req.Amount)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to withdraw")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// InternalTransfer moves funds between the user's own accounts.
func (h *LedgerHandler) InternalTransfer(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.InternalTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sourceType := domain.AccountType(req.SourceType)
	targetType := domain.AccountType(req.TargetType)
	if !sourceType.IsValid() || !targetType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid account type", "account types are chequing and savings")
		return
	}

	source, target, err := h.ledgerUC.InternalTransfer(r.Context(), usecase.InternalTransferInput{
		UserID:     user.ID,
		SourceType: sourceType,
		TargetType: targetType,
		Amount:     req.Amount,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to transfer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*dto.AccountResponse{
		"source": dto.AccountFromDomain(source),
		"target": dto.AccountFromDomain(target),
	})
}

// History returns the user's statement, newest first.
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.ledgerUC.TransactionHistory(r.Context(), usecase.TransactionHistoryInput{
		UserID: user.ID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}
