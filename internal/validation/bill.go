package validation

import (
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// ValidateCreateBill validates a bill creation request.
//
// Required fields:
//   - name: 1-100 characters
//   - frequency: one of weekly, biweekly, monthly, yearly, once
//
// Either dueDay (1-31) or nextDueDate must locate the first occurrence, and a
// transfer target must differ from the paying account.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateBill(req request.CreateBillRequest) error {
	fields := validateStruct(req)

	if req.DueDay == 0 && req.NextDueDate == "" {
		fields["dueDay"] = "dueDay or nextDueDate is required"
	}
	if req.ToAccountID != "" && req.ToAccountID == req.AccountID {
		fields["toAccountId"] = "toAccountId must differ from accountId"
	}

	return result(fields)
}

// ValidateUpdateBill validates a bill update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateBill(req request.UpdateBillRequest) error {
	return result(validateStruct(req))
}

// ValidateBill checks rules that span several fields of a fully merged bill.
func ValidateBill(b model.Bill) error {
	fields := make(map[string]string)
	if b.DueDay == 0 && b.NextDueDate == nil {
		fields["dueDay"] = "dueDay or nextDueDate is required"
	}
	if b.ToAccountID != "" && b.ToAccountID == b.AccountID {
		fields["toAccountId"] = "toAccountId must differ from accountId"
	}
	return result(fields)
}

// ValidatePeriodBill validates a per-occurrence bill override.
func ValidatePeriodBill(req request.PeriodBillRequest) error {
	return result(validateStruct(req))
}
