package events

import "time"

// MonthCount is the number of month labels on the wheel.
const MonthCount = 12

// MonthProvider supplies display names and approximate start weeks for the
// twelve month labels. StartWeek maps a month (0..11) to a marker index in
// [0, n); the mapping is intentionally approximate, label placement does not
// track true calendar boundaries.
type MonthProvider interface {
	MonthName(month int) string
	StartWeek(month, n int) int
}

// ApproxMonths is the default MonthProvider: English month names and the
// even-split approximation floor(month * n / 12).
type ApproxMonths struct{}

// MonthName returns the English name for month 0..11.
func (ApproxMonths) MonthName(month int) string {
	return time.Month(month + 1).String()
}

// StartWeek returns floor(month * n / 12).
func (ApproxMonths) StartWeek(month, n int) int {
	return month * n / MonthCount
}

// CalendarMonths is a MonthProvider anchored to a concrete year: start weeks
// come from the actual day-of-year of the first of each month instead of the
// even split. Labels drift by at most a week either way versus ApproxMonths.
type CalendarMonths struct {
	Year int
}

// MonthName returns the English name for month 0..11.
func (CalendarMonths) MonthName(month int) string {
	return time.Month(month + 1).String()
}

// StartWeek returns the week bucket containing the first day of the month.
func (m CalendarMonths) StartWeek(month, n int) int {
	first := time.Date(m.Year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	week := (first.YearDay() - 1) / 7
	if week >= n {
		week = n - 1
	}
	return week
}
