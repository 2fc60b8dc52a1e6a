package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// AccountHandler handles HTTP requests for account endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the accountService.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts handles GET requests to retrieve all accounts.
//
// Endpoint: GET /api/account
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.GetAccounts(r.Context())
	if err != nil {
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToRetrieveAccounts.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests to retrieve a single account by ID.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 OK with Account
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.GetAccount(r.Context(), accountID)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrAccountNotFound, "failed to retrieve account")
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount handles POST requests to create a new account.
// Mortgage accounts must include mortgageDetails.
//
// Endpoint: POST /api/account
// Request Body: CreateAccountRequest
// Response: 201 Created with Account
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil, "failed to create account")
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// UpdateAccount handles PUT requests to update an existing account.
//
// Endpoint: PUT /api/account/{uuid}
// Request Body: UpdateAccountRequest (all fields optional)
// Response: 200 OK with updated Account
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if update fails
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAccount(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), accountID, req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrAccountNotFound, "failed to update account")
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE requests to remove an account.
// Accounts still referenced by paychecks, bills, buckets or transactions cannot be deleted.
//
// Endpoint: DELETE /api/account/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if account not found
// Error: 409 Conflict if the account is in use
// Error: 500 Internal Server Error if deletion fails
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	err := h.accountService.DeleteAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountInUse) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrAccountInUse.Error(), err.Error())
			return
		}
		respondServiceError(w, r, err, apperrors.ErrAccountNotFound, "failed to delete account")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AmortizationSchedule handles GET requests for the repayment schedule of a mortgage.
//
// Endpoint: GET /api/account/{uuid}/amortization
// Response: 200 OK with array of AmortizationRow
// Error: 400 Bad Request if the account is not a mortgage with loan terms
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) AmortizationSchedule(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	schedule, err := h.accountService.GetAmortizationSchedule(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotMortgage) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrNotMortgage.Error(), "")
			return
		}
		respondServiceError(w, r, err, apperrors.ErrAccountNotFound, "failed to build amortization schedule")
		return
	}

	response.RespondJSON(w, http.StatusOK, schedule)
}
