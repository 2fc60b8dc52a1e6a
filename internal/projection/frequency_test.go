package projection_test

import (
	"testing"
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/projection"
)

// TestAdvance tests stepping from one occurrence to the next.
//
// WHY: Every recurring schedule is built on Advance. Month-end dates must clamp
// instead of rolling into the following month.
func TestAdvance(t *testing.T) {
	cases := []struct {
		name      string
		from      time.Time
		frequency model.Frequency
		expected  time.Time
	}{
		{"weekly", date(2026, 2, 1), model.FrequencyWeekly, date(2026, 2, 8)},
		{"biweekly", date(2026, 2, 20), model.FrequencyBiWeekly, date(2026, 3, 6)},
		{"monthly", date(2026, 2, 5), model.FrequencyMonthly, date(2026, 3, 5)},
		{"monthly clamps to february", date(2026, 1, 31), model.FrequencyMonthly, date(2026, 2, 28)},
		{"monthly clamps to leap february", date(2028, 1, 31), model.FrequencyMonthly, date(2028, 2, 29)},
		{"monthly crosses year", date(2026, 12, 15), model.FrequencyMonthly, date(2027, 1, 15)},
		{"yearly", date(2026, 3, 1), model.FrequencyYearly, date(2027, 3, 1)},
		{"yearly from leap day", date(2028, 2, 29), model.FrequencyYearly, date(2029, 2, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := projection.Advance(tc.from, tc.frequency)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}

	t.Run("once never repeats within a century", func(t *testing.T) {
		got := projection.Advance(date(2026, 1, 1), model.FrequencyOnce)
		if got.Before(date(2100, 1, 1)) {
			t.Errorf("Expected a date far in the future, got %s", got.Format("2006-01-02"))
		}
	})
}

// TestPeriodStartFor tests pay period lookup for arbitrary dates.
//
// WHY: Overrides written from an edited line are tagged with their pay period.
func TestPeriodStartFor(t *testing.T) {
	paychecks := []model.Paycheck{
		biweekly("a", "A", 1000, date(2026, 1, 2), "chk"),
		{ID: "b", Name: "B", Frequency: model.FrequencyMonthly, StartDate: date(2026, 1, 20)},
	}

	t.Run("returns the latest occurrence on or before the date", func(t *testing.T) {
		got := projection.PeriodStartFor(paychecks, date(2026, 1, 25))
		if !got.Equal(date(2026, 1, 20)) {
			t.Errorf("Expected 2026-01-20, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("includes an occurrence on the date itself", func(t *testing.T) {
		got := projection.PeriodStartFor(paychecks, date(2026, 1, 30))
		if !got.Equal(date(2026, 1, 30)) {
			t.Errorf("Expected 2026-01-30, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("returns the date itself before any occurrence", func(t *testing.T) {
		got := projection.PeriodStartFor(paychecks, date(2025, 12, 1))
		if !got.Equal(date(2025, 12, 1)) {
			t.Errorf("Expected 2025-12-01, got %s", got.Format("2006-01-02"))
		}
	})
}
