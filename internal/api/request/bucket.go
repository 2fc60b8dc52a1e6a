package request

import "github.com/shopspring/decimal"

type CreateBucketRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount" validate:"gte=0"`
	AccountID      string          `json:"accountId,omitempty" validate:"omitempty,uuid"`
}

type UpdateBucketRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty" validate:"omitempty,gte=0"`
	AccountID      *string          `json:"accountId,omitempty" validate:"omitempty,ref"`
}

// PeriodBucketRequest overrides a bucket for the pay period starting on PeriodDate.
type PeriodBucketRequest struct {
	PeriodDate   string          `json:"periodDate" validate:"required,date"`
	ActualAmount decimal.Decimal `json:"actualAmount" validate:"gte=0"`
	IsPaid       bool            `json:"isPaid"`
}
