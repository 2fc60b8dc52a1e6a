package projection_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
)

type fakeOverrides struct {
	existing  *model.AdHocTransaction
	findErr   error
	persisted []model.AdHocTransaction
}

func (f *fakeOverrides) FindOverride(_ context.Context, paycheckID string, d time.Time) (*model.AdHocTransaction, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.existing != nil && f.existing.PaycheckID == paycheckID && f.existing.Date.Equal(d) {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeOverrides) PersistOverride(_ context.Context, transaction model.AdHocTransaction) error {
	f.persisted = append(f.persisted, transaction)
	return nil
}

func newTestEditor(f *fakeOverrides) *projection.LineEditor {
	today := date(2026, 3, 1)
	return projection.NewLineEditor(f, f).WithClock(func() time.Time { return today })
}

// TestLineEditor_EditPaycheckLine tests writing an edited paycheck line back.
//
// WHY: Editing a past paycheck line records what was actually received. It must
// create exactly one override per occurrence and leave future lines alone.
func TestLineEditor_EditPaycheckLine(t *testing.T) {
	in := projection.Input{
		Accounts:  []model.Account{checking("chk", 1000, date(2026, 1, 1))},
		Paychecks: []model.Paycheck{biweekly("pay", "Salary", 2000, date(2026, 2, 6), "chk")},
	}
	line := model.ProjectionItem{
		Date:        date(2026, 2, 20),
		Description: "Expected Pay: Salary",
		Amount:      dec(2000),
		PaycheckID:  "pay",
	}

	t.Run("creates an override for a past paycheck", func(t *testing.T) {
		// Setup
		f := &fakeOverrides{}
		editor := newTestEditor(f)

		// Execute
		ok, err := editor.EditPaycheckLine(context.Background(), in, line, dec(2150))

		// Assert
		if err != nil {
			t.Fatalf("EditPaycheckLine() returned unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("Expected the line to be edited")
		}
		if len(f.persisted) != 1 {
			t.Fatalf("Expected 1 persisted override, got %d", len(f.persisted))
		}
		got := f.persisted[0]
		if got.ID != "" {
			t.Errorf("Expected a new transaction without ID, got %q", got.ID)
		}
		assertDecimal(t, "amount", dec(2150), got.Amount)
		if got.PaycheckID != "pay" || got.ToAccountID != "chk" {
			t.Errorf("Expected paycheck 'pay' into 'chk', got %q into %q", got.PaycheckID, got.ToAccountID)
		}
		if got.Description != "Expected Pay: Salary" {
			t.Errorf("Expected line description, got %q", got.Description)
		}
		if got.PaycheckOccurrenceDate == nil || !got.PaycheckOccurrenceDate.Equal(date(2026, 2, 20)) {
			t.Errorf("Expected occurrence date 2026-02-20, got %v", got.PaycheckOccurrenceDate)
		}
		if got.PeriodDate == nil || !got.PeriodDate.Equal(date(2026, 2, 20)) {
			t.Errorf("Expected period date 2026-02-20, got %v", got.PeriodDate)
		}
	})

	t.Run("updates an existing override", func(t *testing.T) {
		// Setup
		f := &fakeOverrides{existing: &model.AdHocTransaction{
			ID: "t1", Description: "Actual Salary", Amount: dec(2100), Date: date(2026, 2, 20),
			ToAccountID: "chk", PaycheckID: "pay",
		}}
		editor := newTestEditor(f)

		// Execute
		ok, err := editor.EditPaycheckLine(context.Background(), in, line, dec(2200))

		// Assert
		if err != nil {
			t.Fatalf("EditPaycheckLine() returned unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("Expected the line to be edited")
		}
		if len(f.persisted) != 1 {
			t.Fatalf("Expected 1 persisted override, got %d", len(f.persisted))
		}
		if f.persisted[0].ID != "t1" || f.persisted[0].Description != "Actual Salary" {
			t.Errorf("Expected existing override t1 to be updated, got %+v", f.persisted[0])
		}
		assertDecimal(t, "amount", dec(2200), f.persisted[0].Amount)
	})

	t.Run("ignores future paychecks", func(t *testing.T) {
		// Setup
		f := &fakeOverrides{}
		editor := newTestEditor(f)
		future := line
		future.Date = date(2026, 3, 6)

		// Execute
		ok, err := editor.EditPaycheckLine(context.Background(), in, future, dec(2150))

		// Assert
		if err != nil {
			t.Fatalf("EditPaycheckLine() returned unexpected error: %v", err)
		}
		if ok {
			t.Error("Expected future line not to be edited")
		}
		if len(f.persisted) != 0 {
			t.Errorf("Expected nothing persisted, got %d", len(f.persisted))
		}
	})

	t.Run("ignores lines without paycheck", func(t *testing.T) {
		// Setup
		f := &fakeOverrides{}
		editor := newTestEditor(f)
		bill := model.ProjectionItem{Date: date(2026, 2, 5), Description: "Bill: Rent", Amount: dec(-500)}

		// Execute
		ok, err := editor.EditPaycheckLine(context.Background(), in, bill, dec(-450))

		// Assert
		if err != nil {
			t.Fatalf("EditPaycheckLine() returned unexpected error: %v", err)
		}
		if ok {
			t.Error("Expected bill line not to be edited")
		}
	})

	t.Run("returns finder errors", func(t *testing.T) {
		// Setup
		f := &fakeOverrides{findErr: errors.New("database unavailable")}
		editor := newTestEditor(f)

		// Execute
		ok, err := editor.EditPaycheckLine(context.Background(), in, line, dec(2150))

		// Assert
		if err == nil {
			t.Error("Expected error from finder, got nil")
		}
		if ok {
			t.Error("Expected no edit on error")
		}
	})
}
