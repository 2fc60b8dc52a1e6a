package projection

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// periodBoundaries returns the sorted, distinct pay period start dates: every day
// at or after current on which an expected paycheck or a paycheck-associated
// transaction lands. current itself is prepended when no boundary covers it.
func periodBoundaries(events []event, current time.Time) []time.Time {
	seen := make(map[time.Time]struct{})
	var boundaries []time.Time
	for _, e := range events {
		if e.Date.Before(current) {
			continue
		}
		if e.Type != EventPaycheck && (e.Type != EventTransaction || e.PaycheckID == "") {
			continue
		}
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		boundaries = append(boundaries, e.Date)
	}

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })

	if len(boundaries) == 0 || boundaries[0].After(current) {
		boundaries = append([]time.Time{current}, boundaries...)
	}
	return boundaries
}

// periodFor returns the last boundary on or before date.
func periodFor(boundaries []time.Time, date time.Time) (time.Time, bool) {
	i := sort.Search(len(boundaries), func(i int) bool { return boundaries[i].After(date) })
	if i == 0 {
		return time.Time{}, false
	}
	return boundaries[i-1], true
}

// stampPeriodNets attaches the net flow of each period [b_i, b_i+1) to the first
// line of that period. The last period runs up to end. Lines must be in date order.
func stampPeriodNets(items []model.ProjectionItem, boundaries []time.Time, end time.Time) {
	for i, start := range boundaries {
		next := end
		if i+1 < len(boundaries) {
			next = boundaries[i+1]
		}

		first := -1
		net := decimal.Zero
		for j := range items {
			if items[j].Date.Before(start) || !items[j].Date.Before(next) {
				continue
			}
			if first < 0 {
				first = j
			}
			net = net.Add(items[j].Amount)
		}

		if first >= 0 {
			items[first].PeriodNet = &net
		}
	}
}

// PeriodStartFor returns the start of the pay period containing date: the latest
// paycheck occurrence on or before it. Without any occurrence the date itself is returned.
func PeriodStartFor(paychecks []model.Paycheck, date time.Time) time.Time {
	date = day(date)
	var latest time.Time
	for _, p := range paychecks {
		for occ := day(p.StartDate); !occ.After(date); occ = Advance(occ, p.Frequency) {
			if p.EndDate != nil && occ.After(day(*p.EndDate)) {
				break
			}
			if occ.After(latest) {
				latest = occ
			}
		}
	}
	if latest.IsZero() {
		return date
	}
	return latest
}
