package request

import "github.com/shopspring/decimal"

type CreateBillRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount" validate:"gte=0"`
	Frequency      string          `json:"frequency" validate:"required,frequency"`
	DueDay         int             `json:"dueDay" validate:"gte=0,lte=31"`
	NextDueDate    string          `json:"nextDueDate,omitempty" validate:"omitempty,date"`
	AccountID      string          `json:"accountId,omitempty" validate:"omitempty,uuid"`
	ToAccountID    string          `json:"toAccountId,omitempty" validate:"omitempty,uuid"`
	Category       string          `json:"category" validate:"max=50"`
	IsActive       *bool           `json:"isActive,omitempty"`
}

type UpdateBillRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty" validate:"omitempty,gte=0"`
	Frequency      *string          `json:"frequency,omitempty" validate:"omitempty,frequency"`
	DueDay         *int             `json:"dueDay,omitempty" validate:"omitempty,gte=0,lte=31"`
	NextDueDate    *string          `json:"nextDueDate,omitempty" validate:"omitempty,date"`
	AccountID      *string          `json:"accountId,omitempty" validate:"omitempty,ref"`
	ToAccountID    *string          `json:"toAccountId,omitempty" validate:"omitempty,ref"`
	Category       *string          `json:"category,omitempty" validate:"omitempty,max=50"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

// PeriodBillRequest overrides one bill occurrence identified by its due date.
type PeriodBillRequest struct {
	PeriodDate   string          `json:"periodDate" validate:"required,date"`
	DueDate      string          `json:"dueDate" validate:"required,date"`
	ActualAmount decimal.Decimal `json:"actualAmount" validate:"gte=0"`
	IsPaid       bool            `json:"isPaid"`
}
