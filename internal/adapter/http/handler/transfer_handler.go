package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pennybank/pennybank/internal/adapter/http/dto"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/usecase"
)

// TransferHandler handles the send-money endpoints.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	logger     zerolog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, logger zerolog.Logger) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, logger: logger}
}

// Send initiates a pending transfer to another user.
func (h *TransferHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SendMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.Initiate(r.Context(), user.ID, req.ReceiverEmail, req.Amount)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to send money")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         transfer.ID,
		"amount":     transfer.Amount,
		"created_at": transfer.CreatedAt,
	})
}

// ListPending lists the unresolved transfers addressed to the user.
func (h *TransferHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	views, err := h.transferUC.ListPending(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to list pending transfers")
		return
	}

	writeJSON(w, http.StatusOK, dto.PendingTransfersFromDomain(views))
}

// Accept settles a pending transfer addressed to the user.
func (h *TransferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	if err := h.transferUC.Accept(r.Context(), user.ID, id); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to accept transfer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// Decline rejects a pending transfer addressed to the user.
func (h *TransferHandler) Decline(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	if err := h.transferUC.Decline(r.Context(), user.ID, id); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to decline transfer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}
