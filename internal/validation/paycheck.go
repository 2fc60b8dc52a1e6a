package validation

import (
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// ValidateCreatePaycheck validates a paycheck creation request.
//
// Required fields:
//   - name: 1-100 characters
//   - expectedAmount: positive
//   - startDate: YYYY-MM-DD
//
// Frequency defaults to biweekly when omitted. An endDate must not precede startDate.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePaycheck(req request.CreatePaycheckRequest) error {
	fields := validateStruct(req)
	checkEndDate(fields, req.StartDate, req.EndDate)
	return result(fields)
}

// ValidateUpdatePaycheck validates a paycheck update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdatePaycheck(req request.UpdatePaycheckRequest) error {
	return result(validateStruct(req))
}

// ValidatePaycheck checks rules that span several fields of a fully merged paycheck.
func ValidatePaycheck(p model.Paycheck) error {
	fields := make(map[string]string)
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		fields["endDate"] = "endDate must not be before startDate"
	}
	return result(fields)
}

func checkEndDate(fields map[string]string, startStr, endStr string) {
	if endStr == "" {
		return
	}
	if _, bad := fields["startDate"]; bad {
		return
	}
	if _, bad := fields["endDate"]; bad {
		return
	}
	start, err := ParseDate(startStr)
	if err != nil {
		return
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return
	}
	if end.Before(start) {
		fields["endDate"] = "endDate must not be before startDate"
	}
}
