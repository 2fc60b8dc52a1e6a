package request

import "github.com/shopspring/decimal"

// EditProjectionLineRequest changes the amount of a projected paycheck line.
// LineToken is the opaque token returned with the line by GET /api/projection.
type EditProjectionLineRequest struct {
	LineToken string          `json:"lineToken" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}
