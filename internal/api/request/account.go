package request

import "github.com/shopspring/decimal"

type MortgageDetailsRequest struct {
	InterestRate      decimal.Decimal `json:"interestRate" validate:"gte=0,lte=100"`
	Escrow            decimal.Decimal `json:"escrow" validate:"gte=0"`
	MortgageInsurance decimal.Decimal `json:"mortgageInsurance" validate:"gte=0"`
	LoanPayment       decimal.Decimal `json:"loanPayment" validate:"gte=0"`
	PaymentDate       string          `json:"paymentDate" validate:"required,date"`
}

type CreateAccountRequest struct {
	Name             string                  `json:"name" validate:"required,max=100"`
	BankName         string                  `json:"bankName" validate:"max=100"`
	Balance          decimal.Decimal         `json:"balance"`
	BalanceAsOf      string                  `json:"balanceAsOf" validate:"required,date"`
	AnnualGrowthRate decimal.Decimal         `json:"annualGrowthRate" validate:"gte=-100,lte=100"`
	IncludeInTotal   *bool                   `json:"includeInTotal,omitempty"`
	Type             string                  `json:"type" validate:"required,accounttype"`
	MortgageDetails  *MortgageDetailsRequest `json:"mortgageDetails,omitempty" validate:"omitempty"`
}

type UpdateAccountRequest struct {
	Name             *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	BankName         *string                 `json:"bankName,omitempty" validate:"omitempty,max=100"`
	Balance          *decimal.Decimal        `json:"balance,omitempty"`
	BalanceAsOf      *string                 `json:"balanceAsOf,omitempty" validate:"omitempty,date"`
	AnnualGrowthRate *decimal.Decimal        `json:"annualGrowthRate,omitempty" validate:"omitempty,gte=-100,lte=100"`
	IncludeInTotal   *bool                   `json:"includeInTotal,omitempty"`
	Type             *string                 `json:"type,omitempty" validate:"omitempty,accounttype"`
	MortgageDetails  *MortgageDetailsRequest `json:"mortgageDetails,omitempty" validate:"omitempty"`
}
