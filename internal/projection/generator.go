package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

const paidSuffix = " (PAID)"

// generator expands recurring definitions into dated events for one invocation.
type generator struct {
	in             Input
	current        time.Time // effective start
	start          time.Time // requested window start
	end            time.Time
	defaultAccount string
}

// generate builds the merged, sorted event stream: expected paychecks, bills and
// transfers, bucket placeholders, recorded transactions and mortgage interest.
func (g *generator) generate() []event {
	transactions := transactionEvents(g.in.Transactions)

	events := make([]event, 0, len(transactions)+len(g.in.Paychecks)*8)
	events = append(events, g.paycheckEvents()...)
	events = append(events, g.billEvents()...)
	events = append(events, g.bucketEvents()...)
	events = append(events, g.interestEvents(transactions)...)
	events = append(events, transactions...)

	sortEvents(events)
	return events
}

// paycheckEvents emits one "Expected Pay" event per occurrence that has no
// associated recorded transaction.
func (g *generator) paycheckEvents() []event {
	var events []event
	for _, p := range g.in.Paychecks {
		to := p.AccountID
		if to == "" {
			to = g.defaultAccount
		}
		forEachOccurrence(p, g.current, g.end, func(occ time.Time) {
			if hasPaycheckOverride(g.in.Transactions, p, occ) {
				return
			}
			events = append(events, event{
				Date:        occ,
				Amount:      p.ExpectedAmount,
				Description: "Expected Pay: " + p.Name,
				ToAccountID: to,
				PaycheckID:  p.ID,
				Type:        EventPaycheck,
			})
		})
	}
	return events
}

// billEvents emits a negative "Bill" event per due date, or a positive "Transfer"
// when the bill moves money into another account.
func (g *generator) billEvents() []event {
	var events []event
	for _, b := range g.in.Bills {
		from := b.AccountID
		if from == "" {
			from = g.defaultAccount
		}

		for due := g.firstDue(b); due.Before(g.end); due = Advance(due, b.Frequency) {
			amount := b.ExpectedAmount
			suffix := ""
			if pb, ok := findPeriodBill(g.in.PeriodBills, b.ID, due); ok {
				amount = pb.ActualAmount
				if pb.IsPaid {
					suffix = paidSuffix
				}
			}

			if b.ToAccountID != "" {
				events = append(events, event{
					Date:          due,
					Amount:        amount,
					Description:   fmt.Sprintf("Transfer: %s%s", b.Name, suffix),
					FromAccountID: from,
					ToAccountID:   b.ToAccountID,
					Type:          EventTransfer,
				})
				continue
			}
			events = append(events, event{
				Date:          due,
				Amount:        amount.Neg(),
				Description:   fmt.Sprintf("Bill: %s%s", b.Name, suffix),
				FromAccountID: from,
				Type:          EventBill,
			})
		}
	}
	return events
}

// firstDue is the explicit next due date, or the due day in the effective start's
// month (clamped to the month length), moved a month ahead if already past.
func (g *generator) firstDue(b model.Bill) time.Time {
	if b.NextDueDate != nil {
		return day(*b.NextDueDate)
	}

	y, m, _ := g.current.Date()
	dueDay := max(b.DueDay, 1)
	due := time.Date(y, m, min(dueDay, daysIn(y, m)), 0, 0, 0, 0, time.UTC)
	if due.Before(g.current) {
		next := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
		due = time.Date(next.Year(), next.Month(), min(dueDay, daysIn(next.Year(), next.Month())), 0, 0, 0, 0, time.UTC)
	}
	return due
}

// bucketEvents emits a negative placeholder per bucket for every paycheck occurrence.
// The applied amount is settled by the simulator once period spending is known.
func (g *generator) bucketEvents() []event {
	var events []event
	for _, bucket := range g.in.Buckets {
		from := bucket.AccountID
		if from == "" {
			from = g.defaultAccount
		}
		for _, p := range g.in.Paychecks {
			forEachOccurrence(p, g.current, g.end, func(occ time.Time) {
				amount := bucket.ExpectedAmount
				suffix := ""
				if pb, ok := findPeriodBucket(g.in.PeriodBuckets, bucket.ID, occ); ok {
					amount = pb.ActualAmount
					if pb.IsPaid {
						suffix = paidSuffix
					}
				}
				events = append(events, event{
					Date:          occ,
					Amount:        amount.Abs().Neg(),
					Description:   fmt.Sprintf("Bucket: %s%s", bucket.Name, suffix),
					FromAccountID: from,
					BucketID:      bucket.ID,
					Type:          EventBucket,
				})
			})
		}
	}
	return events
}

// interestEvents schedules monthly interest for every mortgage with loan terms,
// anchored on the payment date and starting at the requested window start.
// A recorded transaction into the mortgage on the same day replaces the event.
func (g *generator) interestEvents(transactions []event) []event {
	var events []event
	for _, acc := range g.in.Accounts {
		if acc.Type != model.AccountTypeMortgage || acc.MortgageDetails == nil {
			continue
		}

		next := day(acc.MortgageDetails.PaymentDate)
		if acc.MortgageDetails.PaymentDate.IsZero() {
			next = g.start
		}
		for next.Before(g.start) {
			next = addMonths(next, 1)
		}

		for ; next.Before(g.end); next = addMonths(next, 1) {
			if suppressInterest(transactions, acc.ID, next) {
				continue
			}
			events = append(events, event{
				Date:          next,
				Amount:        decimal.Zero,
				Description:   "Interest: " + acc.Name,
				FromAccountID: acc.ID,
				Type:          EventInterest,
			})
		}
	}
	return events
}

// transactionEvents converts recorded transactions one to one.
func transactionEvents(transactions []model.AdHocTransaction) []event {
	events := make([]event, len(transactions))
	for i, t := range transactions {
		events[i] = event{
			Date:            day(t.Date),
			Amount:          t.Amount,
			Description:     t.Description,
			FromAccountID:   t.AccountID,
			ToAccountID:     t.ToAccountID,
			BucketID:        t.BucketID,
			PaycheckID:      t.PaycheckID,
			Type:            EventTransaction,
			IsPrincipalOnly: t.IsPrincipalOnly,
			IsRebalance:     t.IsRebalance,
		}
	}
	return events
}

// sortEvents orders events by date with income first on the same day, so pay lands
// before the expenses it pays for. Income is an expected paycheck or a recorded
// transaction tied to a paycheck. The sort is stable for everything else.
func sortEvents(events []event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].isIncome() && !events[j].isIncome()
	})
}

func findPeriodBill(periodBills []model.PeriodBill, billID string, due time.Time) (model.PeriodBill, bool) {
	for _, pb := range periodBills {
		if pb.BillID == billID && day(pb.DueDate).Equal(due) {
			return pb, true
		}
	}
	return model.PeriodBill{}, false
}

func findPeriodBucket(periodBuckets []model.PeriodBucket, bucketID string, periodDate time.Time) (model.PeriodBucket, bool) {
	for _, pb := range periodBuckets {
		if pb.BucketID == bucketID && day(pb.PeriodDate).Equal(periodDate) {
			return pb, true
		}
	}
	return model.PeriodBucket{}, false
}
