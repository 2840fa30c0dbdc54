package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pennybank/pennybank/internal/adapter/http/dto"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/infrastructure/auth"
	"github.com/pennybank/pennybank/internal/usecase"
)

// UserHandler handles registration, login and profile endpoints.
type UserHandler struct {
	userUC     *usecase.UserUseCase
	jwtManager *auth.JWTManager
	logger     zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC *usecase.UserUseCase, jwtManager *auth.JWTManager, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a new user with their chequing and savings accounts.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, accounts, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		User:     dto.UserFromDomain(user),
		Accounts: dto.AccountsFromDomain(accounts),
	})
}

// Login authenticates a user and returns a token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "invalid credentials")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Profile returns the authenticated user and their accounts.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	profile, accounts, err := h.userUC.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		User:     dto.UserFromDomain(profile),
		Accounts: dto.AccountsFromDomain(accounts),
	})
}

// UpdateName changes the user's display name.
func (h *UserHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.userUC.Rename(r.Context(), user.ID, req.Name)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update name")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(updated))
}

// UpdateEmail changes the user's email.
func (h *UserHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.userUC.ChangeEmail(r.Context(), user.ID, req.Email)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update email")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(updated))
}

// UpdatePassword changes the user's password.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.userUC.ChangePassword(r.Context(), user.ID, req.Password); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// UpdateContactNumber changes the user's contact number.
func (h *UserHandler) UpdateContactNumber(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateContactNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.userUC.ChangeContactNumber(r.Context(), user.ID, req.ContactNumber)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to update contact number")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(updated))
}
