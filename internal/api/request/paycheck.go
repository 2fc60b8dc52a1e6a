package request

import "github.com/shopspring/decimal"

type CreatePaycheckRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount" validate:"gt=0"`
	Frequency      string          `json:"frequency" validate:"omitempty,frequency"`
	StartDate      string          `json:"startDate" validate:"required,date"`
	EndDate        string          `json:"endDate,omitempty" validate:"omitempty,date"`
	AccountID      string          `json:"accountId,omitempty" validate:"omitempty,uuid"`
	IsBalanced     bool            `json:"isBalanced"`
}

type UpdatePaycheckRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty" validate:"omitempty,gt=0"`
	Frequency      *string          `json:"frequency,omitempty" validate:"omitempty,frequency"`
	StartDate      *string          `json:"startDate,omitempty" validate:"omitempty,date"`
	EndDate        *string          `json:"endDate,omitempty" validate:"omitempty,date"`
	AccountID      *string          `json:"accountId,omitempty" validate:"omitempty,ref"`
	IsBalanced     *bool            `json:"isBalanced,omitempty"`
}
