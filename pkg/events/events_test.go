package events

import (
	"context"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekIndex(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"NewYear", date(2026, time.January, 1), 0},
		{"EndOfFirstWeek", date(2026, time.January, 7), 0},
		{"StartOfSecondWeek", date(2026, time.January, 8), 1},
		{"MidYear", date(2026, time.July, 1), 25},
		{"Day364FoldsIntoLast", date(2026, time.December, 30), 51},
		{"Day365FoldsIntoLast", date(2026, time.December, 31), 51},
		{"WrongYear", date(2025, time.June, 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekIndex(2026, tt.t); got != tt.want {
				t.Errorf("WeekIndex(2026, %v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

func TestGroupByWeek(t *testing.T) {
	evs := []Event{
		{Summary: "kickoff", Start: date(2026, time.January, 2)},
		{Summary: "retro", Start: date(2026, time.January, 5)},
		{Summary: "midsummer", Start: date(2026, time.June, 20)},
		{Summary: "other year", Start: date(2025, time.June, 20)},
	}

	grouped := GroupByWeek(2026, evs)

	if got := len(grouped[0]); got != 2 {
		t.Errorf("week 0 has %d events, want 2", got)
	}
	if grouped[0][0].Summary != "kickoff" {
		t.Errorf("week 0 order: first = %q, want kickoff", grouped[0][0].Summary)
	}
	if grouped[0][0].DayOfWeek != time.Friday {
		t.Errorf("DayOfWeek = %v, want Friday", grouped[0][0].DayOfWeek)
	}
	if len(grouped) != 2 {
		t.Errorf("grouped into %d weeks, want 2", len(grouped))
	}
}

func TestApproxMonths(t *testing.T) {
	p := ApproxMonths{}
	if got := p.MonthName(0); got != "January" {
		t.Errorf("MonthName(0) = %q, want January", got)
	}
	if got := p.MonthName(11); got != "December" {
		t.Errorf("MonthName(11) = %q, want December", got)
	}

	// floor(m * N / 12) for N = 52
	wants := []int{0, 4, 8, 13, 17, 21, 26, 30, 34, 39, 43, 47}
	for m, want := range wants {
		if got := p.StartWeek(m, 52); got != want {
			t.Errorf("StartWeek(%d, 52) = %d, want %d", m, got, want)
		}
	}
}

func TestCalendarMonths(t *testing.T) {
	p := CalendarMonths{Year: 2026}
	if got := p.StartWeek(0, 52); got != 0 {
		t.Errorf("January starts at week %d, want 0", got)
	}
	// July 1 2026 is day 182, which lands in week 25.
	if got := p.StartWeek(6, 52); got != 25 {
		t.Errorf("July starts at week %d, want 25", got)
	}
	if got := p.StartWeek(11, 52); got >= 52 {
		t.Errorf("December start week %d out of range", got)
	}
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Team offsite\\, day one\r\n" +
	"DTSTART:20260115T090000Z\r\n" +
	"DTEND:20260115T170000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:A very long summary that the generator folded\r\n" +
	"  across two lines\r\n" +
	"DTSTART;VALUE=DATE:20260301\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:No start date\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseICS(t *testing.T) {
	evs, err := ParseICS(strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("ParseICS: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("parsed %d events, want 2 (startless event dropped)", len(evs))
	}

	if evs[0].Summary != "Team offsite, day one" {
		t.Errorf("summary = %q, want unescaped comma", evs[0].Summary)
	}
	if !evs[0].Start.Equal(time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", evs[0].Start)
	}
	if evs[0].DayOfWeek != time.Thursday {
		t.Errorf("day of week = %v, want Thursday", evs[0].DayOfWeek)
	}

	if evs[1].Summary != "A very long summary that the generator folded across two lines" {
		t.Errorf("folded summary = %q", evs[1].Summary)
	}
	if !evs[1].Start.Equal(date(2026, time.March, 1)) {
		t.Errorf("date-only start = %v", evs[1].Start)
	}
}

func TestStaticFeedFiltersYear(t *testing.T) {
	feed := StaticFeed{
		{Summary: "in", Start: date(2026, time.May, 1)},
		{Summary: "out", Start: date(2024, time.May, 1)},
	}
	evs, err := feed.Events(context.Background(), 2026)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(evs) != 1 || evs[0].Summary != "in" {
		t.Errorf("Events = %v, want just the 2026 entry", evs)
	}
}
