package events

import "time"

// WeeksPerYear is the number of week buckets a year is folded into.
// The odd day or two at the end of a year lands in the last bucket.
const WeeksPerYear = 52

// Event is a single calendar entry.
type Event struct {
	Summary   string       `json:"summary" bson:"summary"`
	Start     time.Time    `json:"start" bson:"start"`
	End       time.Time    `json:"end,omitempty" bson:"end,omitempty"`
	DayOfWeek time.Weekday `json:"day_of_week" bson:"day_of_week"`
}

// WeekIndex returns the zero-based week bucket for a date within year.
// Week 0 starts on January 1 regardless of weekday; day 364 onward folds
// into bucket 51 so a year always fills exactly WeeksPerYear buckets.
// Dates outside the year return -1.
func WeekIndex(year int, t time.Time) int {
	if t.Year() != year {
		return -1
	}
	week := (t.YearDay() - 1) / 7
	if week >= WeeksPerYear {
		week = WeeksPerYear - 1
	}
	return week
}

// GroupByWeek buckets events by their week index within year.
// Events outside the year are dropped. Within a bucket, events keep their
// input order; DayOfWeek is derived from Start when unset.
func GroupByWeek(year int, evs []Event) map[int][]Event {
	grouped := make(map[int][]Event)
	for _, ev := range evs {
		week := WeekIndex(year, ev.Start)
		if week < 0 {
			continue
		}
		if ev.DayOfWeek == 0 && ev.Start.Weekday() != 0 {
			ev.DayOfWeek = ev.Start.Weekday()
		}
		grouped[week] = append(grouped[week], ev)
	}
	return grouped
}
