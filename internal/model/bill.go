package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a recurring expense. A bill with a ToAccountID is a transfer
// between two accounts rather than money leaving the household.
type Bill struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	Frequency      Frequency       `json:"frequency"`
	DueDay         int             `json:"dueDay"`
	NextDueDate    *time.Time      `json:"nextDueDate,omitempty"`
	AccountID      string          `json:"accountId,omitempty"`
	ToAccountID    string          `json:"toAccountId,omitempty"`
	Category       string          `json:"category"`
	IsActive       bool            `json:"isActive"`
}

// PeriodBill overrides a single bill occurrence, matched on BillID and DueDate.
type PeriodBill struct {
	ID           string          `json:"id"`
	BillID       string          `json:"billId"`
	PeriodDate   time.Time       `json:"periodDate"`
	DueDate      time.Time       `json:"dueDate"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	IsPaid       bool            `json:"isPaid"`
}
