package validation

import (
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// ValidateCreateTransaction validates an ad-hoc transaction creation request.
//
// Required fields:
//   - description: 1-200 characters
//   - date: YYYY-MM-DD
//
// A paycheckOccurrenceDate is only meaningful together with a paycheckId.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	fields := validateStruct(req)

	if req.PaycheckOccurrenceDate != "" && req.PaycheckID == "" {
		fields["paycheckOccurrenceDate"] = "paycheckOccurrenceDate requires paycheckId"
	}
	if req.ToAccountID != "" && req.ToAccountID == req.AccountID {
		fields["toAccountId"] = "toAccountId must differ from accountId"
	}

	return result(fields)
}

// ValidateUpdateTransaction validates an ad-hoc transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	return result(validateStruct(req))
}

// ValidateTransaction checks rules that span several fields of a fully merged transaction.
func ValidateTransaction(t model.AdHocTransaction) error {
	fields := make(map[string]string)
	if t.PaycheckOccurrenceDate != nil && t.PaycheckID == "" {
		fields["paycheckOccurrenceDate"] = "paycheckOccurrenceDate requires paycheckId"
	}
	if t.ToAccountID != "" && t.ToAccountID == t.AccountID {
		fields["toAccountId"] = "toAccountId must differ from accountId"
	}
	return result(fields)
}
