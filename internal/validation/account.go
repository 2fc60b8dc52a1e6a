package validation

import (
	"github.com/ndewijer/Budget-Projection-Backend/internal/api/request"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// ValidateCreateAccount validates an account creation request.
//
// Required fields:
//   - name: 1-100 characters
//   - balanceAsOf: YYYY-MM-DD
//   - type: one of the supported account types
//
// Mortgage accounts must carry mortgageDetails and no other type may.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	fields := validateStruct(req)

	if _, bad := fields["type"]; !bad && req.Type != "" {
		checkMortgageDetails(fields, model.AccountType(req.Type), req.MortgageDetails != nil)
	}

	return result(fields)
}

// ValidateUpdateAccount validates an account update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
// The mortgage rule is checked against the merged account by the service.
func ValidateUpdateAccount(req request.UpdateAccountRequest) error {
	return result(validateStruct(req))
}

// ValidateAccount checks rules that span several fields of a fully merged account.
func ValidateAccount(a model.Account) error {
	fields := make(map[string]string)
	checkMortgageDetails(fields, a.Type, a.MortgageDetails != nil)
	return result(fields)
}

func checkMortgageDetails(fields map[string]string, t model.AccountType, hasDetails bool) {
	switch {
	case t == model.AccountTypeMortgage && !hasDetails:
		fields["mortgageDetails"] = "mortgageDetails is required for mortgage accounts"
	case t != model.AccountTypeMortgage && hasDetails:
		fields["mortgageDetails"] = "mortgageDetails is only allowed for mortgage accounts"
	}
}
