package schedule

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Event is the subset of a VEVENT the schedule needs.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	AllDay  bool
	RRule   string
	ExDates []time.Time
}

// ParseICS extracts workout events from an ICS payload. Events without a
// usable DTSTART are dropped.
func ParseICS(body []byte) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(ve)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, bool) {
	var ev Event
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}

	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return ev, false
	}
	var (
		start time.Time
		err   error
	)
	if strings.Contains(p.Value, "T") {
		// Timed start: let the library resolve TZID.
		start, err = ve.GetStartAt()
		if err != nil {
			start, err = parseICSTime(p.Value)
		}
	} else {
		// All-day start stays on its calendar day in local time.
		ev.AllDay = true
		start, err = parseICSTime(p.Value)
	}
	if err != nil {
		return ev, false
	}
	ev.Start = start

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}
	return ev, true
}

// parseICSTime handles the basic DATE and DATE-TIME forms.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
