package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// BillHandler handles HTTP requests for bill and transfer endpoints.
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new BillHandler with the provided service dependency.
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// Bills handles GET requests to retrieve bills. Inactive bills are only included
// when include_inactive=true.
//
// Endpoint: GET /api/bill
// Query: include_inactive (optional, boolean)
// Response: 200 OK with array of Bill
// Error: 400 Bad Request if include_inactive is not a boolean
// Error: 500 Internal Server Error if retrieval fails
func (h *BillHandler) Bills(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if v := r.URL.Query().Get("include_inactive"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid include_inactive", err.Error())
			return
		}
		includeInactive = parsed
	}

	bills, err := h.billService.GetBills(r.Context(), includeInactive)
	if err != nil {
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToRetrieveBills.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bills)
}

// GetBill handles GET requests to retrieve a single bill by ID.
//
// Endpoint: GET /api/bill/{uuid}
// Response: 200 OK with Bill
// Error: 404 Not Found if bill not found
// Error: 500 Internal Server Error if retrieval fails
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.billService.GetBill(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBillNotFound, "failed to retrieve bill")
		return
	}

	response.RespondJSON(w, http.StatusOK, bill)
}

// CreateBill handles POST requests to create a new bill. A bill with a
// toAccountId is a transfer between accounts.
//
// Endpoint: POST /api/bill
// Request Body: CreateBillRequest
// Response: 201 Created with Bill
// Error: 400 Bad Request if validation fails or a referenced account does not exist
// Error: 500 Internal Server Error if creation fails
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBillRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBill(req); err != nil {
		respondValidationError(w, err)
		return
	}

	bill, err := h.billService.CreateBill(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil, "failed to create bill")
		return
	}

	response.RespondJSON(w, http.StatusCreated, bill)
}

// UpdateBill handles PUT requests to update an existing bill.
//
// Endpoint: PUT /api/bill/{uuid}
// Request Body: UpdateBillRequest (all fields optional)
// Response: 200 OK with updated Bill
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if bill not found
// Error: 500 Internal Server Error if update fails
func (h *BillHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateBillRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateBill(req); err != nil {
		respondValidationError(w, err)
		return
	}

	bill, err := h.billService.UpdateBill(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBillNotFound, "failed to update bill")
		return
	}

	response.RespondJSON(w, http.StatusOK, bill)
}

// DeleteBill handles DELETE requests to remove a bill and its period overrides.
//
// Endpoint: DELETE /api/bill/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if bill not found
// Error: 500 Internal Server Error if deletion fails
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := h.billService.DeleteBill(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, r, err, apperrors.ErrBillNotFound, "failed to delete bill")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SetPeriodBill handles PUT requests that override one occurrence of a bill.
// Setting the same due date again replaces the earlier override.
//
// Endpoint: PUT /api/bill/{uuid}/period
// Request Body: PeriodBillRequest
// Response: 200 OK with PeriodBill
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if bill not found
// Error: 500 Internal Server Error if the override cannot be stored
func (h *BillHandler) SetPeriodBill(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PeriodBillRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePeriodBill(req); err != nil {
		respondValidationError(w, err)
		return
	}

	override, err := h.billService.SetPeriodBill(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBillNotFound, "failed to set bill override")
		return
	}

	response.RespondJSON(w, http.StatusOK, override)
}
