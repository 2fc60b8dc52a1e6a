package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// hasPaycheckOverride reports whether a recorded transaction is explicitly associated
// with the paycheck occurrence: same paycheck id and dated in [occurrence, next occurrence).
// Descriptions and coincidental amounts are never considered.
func hasPaycheckOverride(transactions []model.AdHocTransaction, p model.Paycheck, occurrence time.Time) bool {
	next := Advance(occurrence, p.Frequency)
	for _, t := range transactions {
		if t.PaycheckID == "" || t.PaycheckID != p.ID {
			continue
		}
		d := day(t.Date)
		if !d.Before(occurrence) && d.Before(next) {
			return true
		}
	}
	return false
}

// suppressInterest marks every recorded transaction into the mortgage on the given day
// as an interest replacement and reports whether any was found.
func suppressInterest(transactions []event, accountID string, date time.Time) bool {
	found := false
	for i := range transactions {
		if transactions[i].ToAccountID == accountID && transactions[i].Date.Equal(date) {
			transactions[i].ReplacesInterest = true
			found = true
		}
	}
	return found
}

type bucketKey struct {
	period   time.Time
	bucketID string
}

// bucketSpending sums the absolute amounts of bucket-tagged transactions per
// (pay period, bucket). Transactions dated before the first period or on or after
// end are ignored.
func bucketSpending(transactions []model.AdHocTransaction, periods []time.Time, end time.Time) map[bucketKey]decimal.Decimal {
	spent := make(map[bucketKey]decimal.Decimal)
	for _, t := range transactions {
		if t.BucketID == "" || !day(t.Date).Before(end) {
			continue
		}
		period, ok := periodFor(periods, day(t.Date))
		if !ok {
			continue
		}
		key := bucketKey{period: period, bucketID: t.BucketID}
		spent[key] = spent[key].Add(t.Amount.Abs())
	}
	return spent
}

// bucketAmount is what remains of a bucket placeholder once the period's recorded
// spending is taken out. The result is never positive.
func bucketAmount(placeholder, spent decimal.Decimal) decimal.Decimal {
	remaining := placeholder.Abs().Sub(spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining.Neg()
}
