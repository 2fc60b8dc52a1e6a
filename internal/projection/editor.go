package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// OverrideFinder looks up the recorded transaction associated with a paycheck occurrence.
// It returns nil when no such transaction exists.
type OverrideFinder interface {
	FindOverride(ctx context.Context, paycheckID string, date time.Time) (*model.AdHocTransaction, error)
}

// OverridePersister stores a recorded transaction that overrides a paycheck occurrence.
// Transactions without an ID are created, others are updated.
type OverridePersister interface {
	PersistOverride(ctx context.Context, transaction model.AdHocTransaction) error
}

// LineEditor writes an edit of a projected paycheck line back as an override transaction.
// It holds no projection state; the host recalculates afterwards.
type LineEditor struct {
	finder    OverrideFinder
	persister OverridePersister
	now       func() time.Time
}

// NewLineEditor creates a LineEditor using the given host collaborators.
func NewLineEditor(finder OverrideFinder, persister OverridePersister) *LineEditor {
	return &LineEditor{
		finder:    finder,
		persister: persister,
		now:       time.Now,
	}
}

// WithClock returns a copy of the editor that uses now as the current time.
func (le *LineEditor) WithClock(now func() time.Time) *LineEditor {
	return &LineEditor{
		finder:    le.finder,
		persister: le.persister,
		now:       now,
	}
}

// EditPaycheckLine records amount as the actual value of a projected paycheck line.
//
// Only lines that belong to a paycheck and are dated today or earlier can be edited;
// future paychecks have not happened yet. An existing override for the same paycheck
// and date is updated. Otherwise a new transaction is created that deposits into the
// paycheck's account (or the snapshot's default account), tagged with the pay period
// it belongs to.
//
// Parameters:
//   - ctx: passed through to the collaborators
//   - in: the snapshot the line was projected from
//   - line: the projected line being edited
//   - amount: the actual amount received
//
// Returns true when an override was written, false when the line is not editable.
func (le *LineEditor) EditPaycheckLine(ctx context.Context, in Input, line model.ProjectionItem, amount decimal.Decimal) (bool, error) {
	if line.PaycheckID == "" {
		return false, nil
	}
	date := day(line.Date)
	if date.After(day(le.now())) {
		return false, nil
	}

	existing, err := le.finder.FindOverride(ctx, line.PaycheckID, date)
	if err != nil {
		return false, fmt.Errorf("failed to find paycheck override: %w", err)
	}

	if existing != nil {
		updated := *existing
		updated.Amount = amount
		if err := le.persister.PersistOverride(ctx, updated); err != nil {
			return false, fmt.Errorf("failed to update paycheck override: %w", err)
		}
		return true, nil
	}

	to := defaultAccount(in)
	for _, p := range in.Paychecks {
		if p.ID == line.PaycheckID && p.AccountID != "" {
			to = p.AccountID
			break
		}
	}

	periodDate := PeriodStartFor(in.Paychecks, date)
	occurrence := date
	transaction := model.AdHocTransaction{
		Description:            line.Description,
		Amount:                 amount,
		Date:                   date,
		ToAccountID:            to,
		PaycheckID:             line.PaycheckID,
		PaycheckOccurrenceDate: &occurrence,
		PeriodDate:             &periodDate,
	}
	if err := le.persister.PersistOverride(ctx, transaction); err != nil {
		return false, fmt.Errorf("failed to create paycheck override: %w", err)
	}
	return true, nil
}
