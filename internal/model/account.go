package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies how an account behaves in a projection.
type AccountType string

// Supported account types. Mortgage and PersonalLoan are debt accounts: their
// balance is the amount owed and counts negatively towards the aggregate total.
const (
	AccountTypeChecking       AccountType = "checking"
	AccountTypeSavings        AccountType = "savings"
	AccountTypeInvestment     AccountType = "investment"
	AccountTypeCD             AccountType = "cd"
	AccountTypeRetirement401k AccountType = "retirement401k"
	AccountTypeBrokerage      AccountType = "brokerage"
	AccountTypeMortgage       AccountType = "mortgage"
	AccountTypePersonalLoan   AccountType = "personalLoan"
)

// AccountTypes lists every valid account type in display order.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeInvestment,
	AccountTypeCD,
	AccountTypeRetirement401k,
	AccountTypeBrokerage,
	AccountTypeMortgage,
	AccountTypePersonalLoan,
}

// IsDebt reports whether balances of this type represent an amount owed.
func (t AccountType) IsDebt() bool {
	return t == AccountTypeMortgage || t == AccountTypePersonalLoan
}

// Account represents a bank, investment or debt account from the database.
// Balance is the known balance on BalanceAsOf; the projection rolls it forward from there.
type Account struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	BankName         string           `json:"bankName"`
	Balance          decimal.Decimal  `json:"balance"`
	BalanceAsOf      time.Time        `json:"balanceAsOf"`
	AnnualGrowthRate decimal.Decimal  `json:"annualGrowthRate"` // Annual percentage, e.g. 3.65
	IncludeInTotal   bool             `json:"includeInTotal"`
	Type             AccountType      `json:"type"`
	MortgageDetails  *MortgageDetails `json:"mortgageDetails,omitempty"`
}

// MortgageDetails holds the loan terms of a mortgage account.
type MortgageDetails struct {
	InterestRate      decimal.Decimal `json:"interestRate"` // Annual percentage
	Escrow            decimal.Decimal `json:"escrow"`
	MortgageInsurance decimal.Decimal `json:"mortgageInsurance"`
	LoanPayment       decimal.Decimal `json:"loanPayment"`
	PaymentDate       time.Time       `json:"paymentDate"` // Anchor for the monthly interest cadence
}
