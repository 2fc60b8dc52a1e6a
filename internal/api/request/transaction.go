package request

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Description            string          `json:"description" validate:"required,max=200"`
	Amount                 decimal.Decimal `json:"amount"`
	Date                   string          `json:"date" validate:"required,date"`
	AccountID              string          `json:"accountId,omitempty" validate:"omitempty,uuid"`
	ToAccountID            string          `json:"toAccountId,omitempty" validate:"omitempty,uuid"`
	BucketID               string          `json:"bucketId,omitempty" validate:"omitempty,uuid"`
	PaycheckID             string          `json:"paycheckId,omitempty" validate:"omitempty,uuid"`
	PaycheckOccurrenceDate string          `json:"paycheckOccurrenceDate,omitempty" validate:"omitempty,date"`
	PeriodDate             string          `json:"periodDate,omitempty" validate:"omitempty,date"`
	IsPrincipalOnly        bool            `json:"isPrincipalOnly"`
	IsRebalance            bool            `json:"isRebalance"`
}

type UpdateTransactionRequest struct {
	Description            *string          `json:"description,omitempty" validate:"omitempty,min=1,max=200"`
	Amount                 *decimal.Decimal `json:"amount,omitempty"`
	Date                   *string          `json:"date,omitempty" validate:"omitempty,date"`
	AccountID              *string          `json:"accountId,omitempty" validate:"omitempty,ref"`
	ToAccountID            *string          `json:"toAccountId,omitempty" validate:"omitempty,ref"`
	BucketID               *string          `json:"bucketId,omitempty" validate:"omitempty,ref"`
	PaycheckID             *string          `json:"paycheckId,omitempty" validate:"omitempty,ref"`
	PaycheckOccurrenceDate *string          `json:"paycheckOccurrenceDate,omitempty" validate:"omitempty,date"`
	PeriodDate             *string          `json:"periodDate,omitempty" validate:"omitempty,date"`
	IsPrincipalOnly        *bool            `json:"isPrincipalOnly,omitempty"`
	IsRebalance            *bool            `json:"isRebalance,omitempty"`
}
