// Package ical wraps fetching and parsing of an RFC5545 feed into the
// small slice of it this bot cares about: one summary and one start
// date per VEVENT. Recurrence, alarms and attendees are ignored.
package ical

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Entry is a single VEVENT reduced to its summary and start date.
// Date is normalized to YYYY-MM-DD; any time-of-day component from the
// feed is dropped.
type Entry struct {
	Summary string
	Date    string
}

// Parse decodes an iCalendar body into entries. VEVENTs without a
// usable DTSTART are skipped and counted; a body that is not iCalendar
// at all is an error.
func Parse(body []byte) (entries []Entry, skipped int, err error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("can't parse calendar body: %w", err)
	}

	entries = make([]Entry, 0)
	for _, vevent := range cal.Events() {
		summary := ""
		if prop := vevent.GetProperty(ics.ComponentPropertySummary); prop != nil {
			summary = prop.Value
		}

		day, err := startDate(vevent)
		if err != nil {
			skipped++
			continue
		}

		entries = append(entries, Entry{
			Summary: summary,
			Date:    day,
		})
	}
	return entries, skipped, nil
}

// startDate reads DTSTART off a VEVENT and reduces it to a calendar
// date. Both DATE and DATE-TIME forms are accepted.
func startDate(vevent *ics.VEvent) (string, error) {
	prop := vevent.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return "", errors.New("missing DTSTART")
	}

	start, err := parseIcalDateTime(prop.Value)
	if err != nil {
		return "", err
	}
	return start.Format("2006-01-02"), nil
}

// parseIcalDateTime handles the three DTSTART value shapes that show up
// in practice: 20251201, 20251201T083000 and 20251201T083000Z.
func parseIcalDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch {
	case strings.HasSuffix(value, "Z"):
		return time.Parse("20060102T150405Z", value)
	case strings.Contains(value, "T"):
		return time.Parse("20060102T150405", value)
	default:
		return time.Parse("20060102", value)
	}
}
