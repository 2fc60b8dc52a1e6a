package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// PaycheckHandler handles HTTP requests for paycheck endpoints.
type PaycheckHandler struct {
	paycheckService *service.PaycheckService
}

// NewPaycheckHandler creates a new PaycheckHandler with the provided service dependency.
func NewPaycheckHandler(paycheckService *service.PaycheckService) *PaycheckHandler {
	return &PaycheckHandler{
		paycheckService: paycheckService,
	}
}

// Paychecks handles GET requests to retrieve all paychecks.
//
// Endpoint: GET /api/paycheck
// Response: 200 OK with array of Paycheck
// Error: 500 Internal Server Error if retrieval fails
func (h *PaycheckHandler) Paychecks(w http.ResponseWriter, r *http.Request) {
	paychecks, err := h.paycheckService.GetPaychecks(r.Context())
	if err != nil {
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToRetrievePaychecks.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, paychecks)
}

// GetPaycheck handles GET requests to retrieve a single paycheck by ID.
//
// Endpoint: GET /api/paycheck/{uuid}
// Response: 200 OK with Paycheck
// Error: 404 Not Found if paycheck not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PaycheckHandler) GetPaycheck(w http.ResponseWriter, r *http.Request) {
	paycheck, err := h.paycheckService.GetPaycheck(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrPaycheckNotFound, "failed to retrieve paycheck")
		return
	}

	response.RespondJSON(w, http.StatusOK, paycheck)
}

// CreatePaycheck handles POST requests to create a new paycheck. The frequency
// defaults to biweekly when omitted.
//
// Endpoint: POST /api/paycheck
// Request Body: CreatePaycheckRequest
// Response: 201 Created with Paycheck
// Error: 400 Bad Request if validation fails or the deposit account does not exist
// Error: 500 Internal Server Error if creation fails
func (h *PaycheckHandler) CreatePaycheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePaycheckRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePaycheck(req); err != nil {
		respondValidationError(w, err)
		return
	}

	paycheck, err := h.paycheckService.CreatePaycheck(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil, "failed to create paycheck")
		return
	}

	response.RespondJSON(w, http.StatusCreated, paycheck)
}

// UpdatePaycheck handles PUT requests to update an existing paycheck.
//
// Endpoint: PUT /api/paycheck/{uuid}
// Request Body: UpdatePaycheckRequest (all fields optional)
// Response: 200 OK with updated Paycheck
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if paycheck not found
// Error: 500 Internal Server Error if update fails
func (h *PaycheckHandler) UpdatePaycheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePaycheckRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePaycheck(req); err != nil {
		respondValidationError(w, err)
		return
	}

	paycheck, err := h.paycheckService.UpdatePaycheck(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrPaycheckNotFound, "failed to update paycheck")
		return
	}

	response.RespondJSON(w, http.StatusOK, paycheck)
}

// DeletePaycheck handles DELETE requests to remove a paycheck. Recorded
// transactions linked to the paycheck are kept and unlinked.
//
// Endpoint: DELETE /api/paycheck/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if paycheck not found
// Error: 500 Internal Server Error if deletion fails
func (h *PaycheckHandler) DeletePaycheck(w http.ResponseWriter, r *http.Request) {
	if err := h.paycheckService.DeletePaycheck(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, r, err, apperrors.ErrPaycheckNotFound, "failed to delete paycheck")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
