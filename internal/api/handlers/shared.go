package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/response"
	"github.com/ndewijer/Budget-Projection-Backend/internal/logger"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// respondServiceError maps an error returned by a service to a response.
// Validation failures become 400 with per-field details, notFound becomes 404
// and anything else is logged and returned as 500 with the given message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFound error, message string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case notFound != nil && errors.Is(err, notFound):
		response.RespondError(w, http.StatusNotFound, notFound.Error(), err.Error())
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg(message)
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

// respondValidationError writes a 400 for a request that failed validation.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
