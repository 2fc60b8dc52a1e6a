package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionItem is one line of a projected ledger.
// Balance is the running aggregate total over accounts included in the total,
// with debt accounts counted negatively. PeriodNet is only set on the first line of a pay period.
type ProjectionItem struct {
	Date            time.Time                  `json:"date"`
	Description     string                     `json:"description"`
	Amount          decimal.Decimal            `json:"amount"`
	Balance         decimal.Decimal            `json:"balance"`
	AccountBalances map[string]decimal.Decimal `json:"accountBalances"`
	PeriodNet       *decimal.Decimal           `json:"periodNet,omitempty"`
	PaycheckID      string                     `json:"paycheckId,omitempty"`
	IsWarning       bool                       `json:"isWarning"`
	LineToken       string                     `json:"lineToken,omitempty"`
}

// Projection is a computed ledger for the window [StartDate, EndDate).
// StartDate is the effective start, which may be earlier than the requested start
// when unbalanced paychecks exist.
type Projection struct {
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	PeriodStarts []time.Time      `json:"periodStarts"`
	Items        []ProjectionItem `json:"items"`
	CalculatedAt time.Time        `json:"calculatedAt"`
	Materialized bool             `json:"materialized"`
}

// AmortizationRow is one month of a mortgage amortization schedule.
type AmortizationRow struct {
	Month           int             `json:"month"`
	Date            time.Time       `json:"date"`
	Payment         decimal.Decimal `json:"payment"`
	Interest        decimal.Decimal `json:"interest"`
	Principal       decimal.Decimal `json:"principal"`
	EscrowInsurance decimal.Decimal `json:"escrowInsurance"`
	Balance         decimal.Decimal `json:"balance"`
}

// ProjectionRefresh describes the stored materialized projection.
// Generation increases by one with every successful refresh.
type ProjectionRefresh struct {
	StartDate          time.Time   `json:"startDate"`
	EndDate            time.Time   `json:"endDate"`
	EffectiveStartDate time.Time   `json:"effectiveStartDate"`
	PeriodStarts       []time.Time `json:"periodStarts"`
	Generation         int64       `json:"generation"`
	CalculatedAt       time.Time   `json:"calculatedAt"`
	ItemCount          int         `json:"itemCount"`
}
