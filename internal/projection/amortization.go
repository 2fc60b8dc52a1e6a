package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// MaxAmortizationMonths caps a schedule at fifty years.
const MaxAmortizationMonths = 600

// Amortize builds the monthly repayment schedule of a mortgage, starting at its
// payment date. Each month the loan payment covers interest and escrow plus
// insurance first; the rest repays principal. The schedule ends when the balance
// is paid off, when the payment no longer covers interest and escrow, or after
// maxMonths (MaxAmortizationMonths when maxMonths is not positive).
func Amortize(balance decimal.Decimal, details model.MortgageDetails, maxMonths int) []model.AmortizationRow {
	if maxMonths <= 0 || maxMonths > MaxAmortizationMonths {
		maxMonths = MaxAmortizationMonths
	}

	monthlyRate := details.InterestRate.Div(hundred).Div(decimal.NewFromInt(monthsPerYear))
	escrowInsurance := details.Escrow.Add(details.MortgageInsurance)
	date := day(details.PaymentDate)
	if details.PaymentDate.IsZero() {
		date = day(time.Now())
	}

	rows := []model.AmortizationRow{}
	for month := 1; balance.IsPositive() && month <= maxMonths; month++ {
		interest := balance.Mul(monthlyRate).RoundBank(moneyPrecision)
		principal := details.LoanPayment.Sub(interest).Sub(escrowInsurance)
		if !principal.IsPositive() {
			break
		}
		if balance.LessThan(principal) {
			principal = balance
		}
		balance = balance.Sub(principal)

		rows = append(rows, model.AmortizationRow{
			Month:           month,
			Date:            date,
			Payment:         details.LoanPayment,
			Interest:        interest,
			Principal:       principal,
			EscrowInsurance: escrowInsurance,
			Balance:         balance,
		})
		date = addMonths(date, 1)
	}
	return rows
}
