package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetBucket is a discretionary spending envelope granted again every pay period.
type BudgetBucket struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	AccountID      string          `json:"accountId,omitempty"`
}

// PeriodBucket overrides a bucket for one pay period, matched on BucketID and PeriodDate.
type PeriodBucket struct {
	ID           string          `json:"id"`
	BucketID     string          `json:"bucketId"`
	PeriodDate   time.Time       `json:"periodDate"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	IsPaid       bool            `json:"isPaid"`
}
