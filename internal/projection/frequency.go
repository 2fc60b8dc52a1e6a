package projection

import (
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// onceHorizon pushes a non-repeating occurrence far enough out that no window reaches it.
const onceHorizon = 100

// Advance returns the occurrence following date for the given frequency.
// Monthly and yearly steps clamp to the last day of the target month, so
// Jan 31 advances to Feb 28 (or 29). Once and unknown frequencies never repeat
// within any realistic window.
func Advance(date time.Time, frequency model.Frequency) time.Time {
	switch frequency {
	case model.FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case model.FrequencyBiWeekly:
		return date.AddDate(0, 0, 14)
	case model.FrequencyMonthly:
		return addMonths(date, 1)
	case model.FrequencyYearly:
		return addMonths(date, 12)
	default:
		return addMonths(date, onceHorizon*12)
	}
}

// addMonths adds whole calendar months, clamping the day to the target month's length.
func addMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// day truncates t to a calendar day in UTC.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// forEachOccurrence calls fn for every occurrence of the paycheck in [from, end)
// that also lies within the paycheck's own start and optional end date.
func forEachOccurrence(p model.Paycheck, from, end time.Time, fn func(occurrence time.Time)) {
	for occ := day(p.StartDate); occ.Before(end); occ = Advance(occ, p.Frequency) {
		if occ.Before(from) {
			continue
		}
		if p.EndDate != nil && occ.After(day(*p.EndDate)) {
			continue
		}
		fn(occ)
	}
}
