package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paycheck represents a recurring income definition.
// IsBalanced marks that past occurrences have been reconciled against real deposits;
// an unbalanced paycheck pulls the projection start back to its StartDate.
type Paycheck struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	Frequency      Frequency       `json:"frequency"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	AccountID      string          `json:"accountId,omitempty"`
	IsBalanced     bool            `json:"isBalanced"`
}
