package events

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// iCalendar datetime layouts, tried in order. Forms without an explicit
// offset are read as UTC; week bucketing only needs day precision.
var icsTimeLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// ParseICS reads an iCalendar stream and extracts its VEVENT entries.
// Only SUMMARY, DTSTART and DTEND are consumed; everything else the format
// carries (alarms, recurrence rules, timezone definitions) is skipped.
// Events without a parseable DTSTART are dropped rather than failing the
// whole feed.
func ParseICS(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		evs     []Event
		current *Event
	)

	for _, line := range unfoldLines(scanner) {
		name, value := splitContentLine(line)
		switch name {
		case "BEGIN":
			if value == "VEVENT" {
				current = &Event{}
			}
		case "END":
			if value == "VEVENT" && current != nil {
				if !current.Start.IsZero() {
					current.DayOfWeek = current.Start.Weekday()
					evs = append(evs, *current)
				}
				current = nil
			}
		case "SUMMARY":
			if current != nil {
				current.Summary = unescapeText(value)
			}
		case "DTSTART":
			if current != nil {
				if t, err := parseICSTime(value); err == nil {
					current.Start = t
				}
			}
		case "DTEND":
			if current != nil {
				if t, err := parseICSTime(value); err == nil {
					current.End = t
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ics: %w", err)
	}
	return evs, nil
}

// unfoldLines joins RFC 5545 folded lines: a line starting with a space or
// tab continues the previous one.
func unfoldLines(scanner *bufio.Scanner) []string {
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitContentLine splits "NAME;PARAM=X:value" into the bare property name
// and its value. Parameters (TZID, VALUE=DATE) are discarded.
func splitContentLine(line string) (name, value string) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return strings.ToUpper(line), ""
	}
	name = line[:colon]
	value = line[colon+1:]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(name), value
}

// parseICSTime parses an iCalendar date or datetime value.
func parseICSTime(value string) (time.Time, error) {
	for _, layout := range icsTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable ics time %q", value)
}

// unescapeText reverses iCalendar TEXT escaping.
func unescapeText(s string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return replacer.Replace(s)
}
