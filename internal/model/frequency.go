package model

// Frequency is the recurrence cadence of paychecks and bills.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
	FrequencyOnce     Frequency = "once"
)

// Frequencies lists every valid frequency.
var Frequencies = []Frequency{
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
	FrequencyYearly,
	FrequencyOnce,
}
