package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdHocTransaction is a recorded real transaction.
// The association fields (PaycheckID, BucketID, ToAccountID) decide whether it overrides
// or reduces a projected occurrence; the description is never used for matching.
type AdHocTransaction struct {
	ID                     string          `json:"id"`
	Description            string          `json:"description"`
	Amount                 decimal.Decimal `json:"amount"`
	Date                   time.Time       `json:"date"`
	AccountID              string          `json:"accountId,omitempty"`
	ToAccountID            string          `json:"toAccountId,omitempty"`
	BucketID               string          `json:"bucketId,omitempty"`
	PaycheckID             string          `json:"paycheckId,omitempty"`
	PaycheckOccurrenceDate *time.Time      `json:"paycheckOccurrenceDate,omitempty"`
	PeriodDate             *time.Time      `json:"periodDate,omitempty"`
	IsPrincipalOnly        bool            `json:"isPrincipalOnly"`
	IsRebalance            bool            `json:"isRebalance"`
}

// TransactionFilter limits transaction queries to a date range. Zero dates are unbounded.
type TransactionFilter struct {
	StartDate time.Time
	EndDate   time.Time
}
