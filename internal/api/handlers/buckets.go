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

// BucketHandler handles HTTP requests for budget bucket endpoints.
type BucketHandler struct {
	bucketService *service.BucketService
}

// NewBucketHandler creates a new BucketHandler with the provided service dependency.
func NewBucketHandler(bucketService *service.BucketService) *BucketHandler {
	return &BucketHandler{
		bucketService: bucketService,
	}
}

// Buckets handles GET requests to retrieve all budget buckets.
//
// Endpoint: GET /api/bucket
// Response: 200 OK with array of BudgetBucket
// Error: 500 Internal Server Error if retrieval fails
func (h *BucketHandler) Buckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.bucketService.GetBuckets(r.Context())
	if err != nil {
		respondServiceError(w, r, err, nil, apperrors.ErrFailedToRetrieveBuckets.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, buckets)
}

// GetBucket handles GET requests to retrieve a single bucket by ID.
//
// Endpoint: GET /api/bucket/{uuid}
// Response: 200 OK with BudgetBucket
// Error: 404 Not Found if bucket not found
func (h *BucketHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	bucket, err := h.bucketService.GetBucket(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBucketNotFound, "failed to retrieve bucket")
		return
	}

	response.RespondJSON(w, http.StatusOK, bucket)
}

// CreateBucket handles POST requests to create a new budget bucket.
//
// Endpoint: POST /api/bucket
// Request Body: CreateBucketRequest
// Response: 201 Created with BudgetBucket
// Error: 400 Bad Request if validation fails
func (h *BucketHandler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBucketRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBucket(req); err != nil {
		respondValidationError(w, err)
		return
	}

	bucket, err := h.bucketService.CreateBucket(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil, "failed to create bucket")
		return
	}

	response.RespondJSON(w, http.StatusCreated, bucket)
}

// UpdateBucket handles PUT requests to update an existing bucket.
//
// Endpoint: PUT /api/bucket/{uuid}
// Request Body: UpdateBucketRequest (all fields optional)
// Response: 200 OK with updated BudgetBucket
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if bucket not found
func (h *BucketHandler) UpdateBucket(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateBucketRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateBucket(req); err != nil {
		respondValidationError(w, err)
		return
	}

	bucket, err := h.bucketService.UpdateBucket(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBucketNotFound, "failed to update bucket")
		return
	}

	response.RespondJSON(w, http.StatusOK, bucket)
}

// DeleteBucket handles DELETE requests to remove a bucket. Transactions that
// were categorized under it keep their amount and lose the category.
//
// Endpoint: DELETE /api/bucket/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if bucket not found
func (h *BucketHandler) DeleteBucket(w http.ResponseWriter, r *http.Request) {
	if err := h.bucketService.DeleteBucket(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, r, err, apperrors.ErrBucketNotFound, "failed to delete bucket")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// SetPeriodBucket handles PUT requests that override a bucket for one pay period.
//
// Endpoint: PUT /api/bucket/{uuid}/period
// Request Body: PeriodBucketRequest
// Response: 200 OK with PeriodBucket
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if bucket not found
func (h *BucketHandler) SetPeriodBucket(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PeriodBucketRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePeriodBucket(req); err != nil {
		respondValidationError(w, err)
		return
	}

	override, err := h.bucketService.SetPeriodBucket(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrBucketNotFound, "failed to set bucket override")
		return
	}

	response.RespondJSON(w, http.StatusOK, override)
}
