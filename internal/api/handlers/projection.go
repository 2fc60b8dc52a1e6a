package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// ProjectionHandler handles HTTP requests for projection endpoints.
// Reads go through the materialized service, which serves the stored projection
// when it matches the request and calculates on demand otherwise.
type ProjectionHandler struct {
	materializedService *service.MaterializedService
	projectionService   *service.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler with the provided service dependencies.
func NewProjectionHandler(materializedService *service.MaterializedService, projectionService *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		materializedService: materializedService,
		projectionService:   projectionService,
	}
}

// Projection handles GET requests for the projected ledger.
//
// Endpoint: GET /api/projection
// Query: start_date (optional, defaults to today), end_date (optional, exclusive,
// defaults to start_date plus the configured horizon)
// Response: 200 OK with Projection
// Error: 400 Bad Request if the date range is invalid
// Error: 500 Internal Server Error if calculation fails
func (h *ProjectionHandler) Projection(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := validation.ValidateDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	result, err := h.materializedService.GetProjectionWithFallback(r.Context(), startDate, endDate)
	if err != nil {
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToCalculateProjection.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RefreshInfo handles GET requests for metadata of the stored projection.
//
// Endpoint: GET /api/projection/refresh
// Response: 200 OK with ProjectionRefresh
// Error: 404 Not Found if nothing is stored or the stored projection was invalidated
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectionHandler) RefreshInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.materializedService.GetRefreshInfo(r.Context())
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrProjectionNotMaterialized, "failed to read projection refresh info")
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// Refresh handles POST requests that recalculate and store the default projection window.
//
// Endpoint: POST /api/projection/refresh
// Response: 200 OK with ProjectionRefresh
// Error: 409 Conflict if a refresh is already running
// Error: 429 Too Many Requests if the route's rate limit is exceeded (middleware)
// Error: 500 Internal Server Error if the refresh fails
func (h *ProjectionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	info, err := h.materializedService.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshInProgress) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrRefreshInProgress.Error(), "")
			return
		}
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToRefreshProjection.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// EditLine handles PUT requests that record the actual amount of a projected paycheck line.
// The line is identified by the lineToken returned with it; only paycheck lines dated
// today or earlier carry one.
//
// Endpoint: PUT /api/projection/line
// Request Body: EditProjectionLineRequest
// Response: 204 No Content when the override was stored
// Error: 400 Bad Request if the token is invalid or expired, or the line is not editable
// Error: 404 Not Found if the paycheck no longer exists
// Error: 500 Internal Server Error if the override cannot be stored
func (h *ProjectionHandler) EditLine(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.EditProjectionLineRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEditProjectionLine(req); err != nil {
		respondValidationError(w, err)
		return
	}

	err = h.projectionService.EditLine(r.Context(), req.LineToken, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidLineToken):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidLineToken.Error(), "")
		case errors.Is(err, apperrors.ErrLineNotEditable):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrLineNotEditable.Error(), "")
		default:
			respondServiceError(w, r, err, apperrors.ErrPaycheckNotFound, apperrors.ErrFailedToEditProjectionLine.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
