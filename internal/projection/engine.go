// Package projection turns recurring budget definitions and recorded transactions
// into a dated ledger of projected balances.
//
// The calculation runs in four stages: recurring definitions are expanded into dated
// events, explicitly associated transactions override or reduce them, the merged
// stream is simulated day by day, and the resulting lines are grouped into pay periods.
// Everything is computed from the supplied snapshot; nothing is read or written.
package projection

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// ErrUnknownAccount indicates an event references an account id that is not part of the snapshot.
var ErrUnknownAccount = errors.New("event references unknown account")

const endOfProjection = "End of Projection"

// Input is the read-only snapshot a projection is computed from.
// The window is [StartDate, EndDate). DefaultAccountID names the account that
// receives paychecks and pays bills and buckets without an explicit account;
// when empty or absent from Accounts, the first checking account is used.
type Input struct {
	StartDate time.Time
	EndDate   time.Time

	Accounts      []model.Account
	Paychecks     []model.Paycheck
	Bills         []model.Bill
	Buckets       []model.BudgetBucket
	PeriodBills   []model.PeriodBill
	PeriodBuckets []model.PeriodBucket
	Transactions  []model.AdHocTransaction

	DefaultAccountID string
}

// Calculate computes the projection for the given snapshot.
//
// The effective start is the window start, pulled back to the earliest start date of
// any paycheck that is not yet balanced. Stored balances are first rolled forward to
// that date, then every event up to the window end is applied in order: daily growth
// is accrued between events, each event is posted under its account-type rule and one
// line is emitted per event. A terminal "End of Projection" line carries the final
// balances when the window extends past the last event. Finally every pay period's
// net flow is stamped on its first line.
//
// Parameters:
//   - in: the snapshot and window. The slices are only read.
//
// Returns:
//   - A projection with zero items when the window is empty (end on or before start)
//   - ErrUnknownAccount (wrapped) when any event references an account not in the snapshot
//
// Identical input always yields an identical result.
func Calculate(in Input) (*model.Projection, error) {
	start, end := day(in.StartDate), day(in.EndDate)
	result := &model.Projection{
		StartDate: start,
		EndDate:   end,
		Items:     []model.ProjectionItem{},
	}
	if !end.After(start) {
		return result, nil
	}

	current := effectiveStart(in.Paychecks, start)
	result.StartDate = current

	g := &generator{
		in:             in,
		current:        current,
		start:          start,
		end:            end,
		defaultAccount: defaultAccount(in),
	}
	events := g.generate()

	if err := checkAccounts(events, in.Accounts); err != nil {
		return nil, err
	}

	sim := newSimulation(in.Accounts)
	sim.bootstrap(events, current)

	live := liveEvents(events, current, end)
	sim.periods = periodBoundaries(live, current)
	sim.spent = bucketSpending(in.Transactions, sim.periods, end)

	last := current
	for _, e := range live {
		sim.accrue(last, e.Date)
		last = e.Date

		amount := sim.step(e)
		result.Items = append(result.Items, sim.emit(e, amount))
	}

	if last.Before(end) {
		sim.accrue(last, end)
		result.Items = append(result.Items, sim.emit(event{Date: end, Description: endOfProjection}, decimal.Zero))
	}

	stampPeriodNets(result.Items, sim.periods, end)
	result.PeriodStarts = sim.periods

	return result, nil
}

// effectiveStart pulls the window start back to the earliest unbalanced paycheck.
func effectiveStart(paychecks []model.Paycheck, start time.Time) time.Time {
	current := start
	for _, p := range paychecks {
		if p.IsBalanced {
			continue
		}
		if s := day(p.StartDate); s.Before(current) {
			current = s
		}
	}
	return current
}

// defaultAccount resolves the fallback account for events without an explicit account.
// An empty result means such events post nowhere.
func defaultAccount(in Input) string {
	if in.DefaultAccountID != "" {
		for _, a := range in.Accounts {
			if a.ID == in.DefaultAccountID {
				return a.ID
			}
		}
	}
	for _, a := range in.Accounts {
		if a.Type == model.AccountTypeChecking {
			return a.ID
		}
	}
	return ""
}

// checkAccounts fails on the first event whose source or destination is not in the snapshot.
func checkAccounts(events []event, accounts []model.Account) error {
	known := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		known[a.ID] = struct{}{}
	}

	for _, e := range events {
		for _, id := range []string{e.FromAccountID, e.ToAccountID} {
			if id == "" {
				continue
			}
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: %s on %s (%q)", ErrUnknownAccount, id, e.Date.Format("2006-01-02"), e.Description)
			}
		}
	}
	return nil
}

// liveEvents returns the events inside [current, end). The input is sorted.
func liveEvents(events []event, current, end time.Time) []event {
	live := make([]event, 0, len(events))
	for _, e := range events {
		if e.Date.Before(current) || !e.Date.Before(end) {
			continue
		}
		live = append(live, e)
	}
	return live
}

// Engine runs projections for a host that may re-trigger a calculation while one
// is still in flight, for example from change notifications raised by the write-back
// of an edited line. A call made during a running calculation is skipped.
type Engine struct {
	running atomic.Bool
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Project calculates the projection unless another calculation on this engine is in
// progress, in which case it returns nil without an error.
func (e *Engine) Project(in Input) (*model.Projection, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer e.running.Store(false)

	return Calculate(in)
}

// Busy reports whether a calculation is in progress.
func (e *Engine) Busy() bool {
	return e.running.Load()
}
