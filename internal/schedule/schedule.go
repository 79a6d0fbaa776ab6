// Package schedule expands recurring workouts into calendar marks.
package schedule

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/five82/stride/internal/calendar"
)

// Rule is a recurring workout declared in the config file.
type Rule struct {
	Name  string
	RRule string
	Start calendar.Date
}

// Workout is one planned session on a given day.
type Workout struct {
	Name   string
	Date   calendar.Date
	Source string // "config" or the ics file name
}

type entry struct {
	name   string
	source string
	set    *rrule.Set    // nil for one-off sessions
	single calendar.Date // used when set is nil
}

// Schedule answers which workouts fall on which days.
type Schedule struct {
	entries []entry
}

// Load builds a schedule from config rules and an optional ICS file. Rules
// that fail to parse are logged and skipped. A missing ICS file is ignored;
// an unreadable or malformed one is an error.
func Load(rules []Rule, icsPath string) (*Schedule, error) {
	s := &Schedule{}
	for _, r := range rules {
		if err := s.AddRule(r); err != nil {
			log.Printf("schedule: skipping workout %q: %v", r.Name, err)
		}
	}

	if strings.TrimSpace(icsPath) == "" {
		return s, nil
	}
	body, err := os.ReadFile(icsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("schedule: ics file %s not found, continuing without it", icsPath)
			return s, nil
		}
		return nil, fmt.Errorf("read ics: %w", err)
	}
	events, err := ParseICS(body)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}
	source := filepath.Base(icsPath)
	for _, ev := range events {
		if err := s.addEvent(ev, source); err != nil {
			log.Printf("schedule: skipping ics event %q: %v", ev.Summary, err)
		}
	}
	log.Printf("schedule: loaded %d entries (%d ics events)", len(s.entries), len(events))
	return s, nil
}

// AddRule adds a recurring config workout.
func (s *Schedule) AddRule(r Rule) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("workout name is empty")
	}
	if r.Start.IsZero() {
		return errors.New("workout start date is missing")
	}
	set, err := buildSet(r.RRule, r.Start.Time(), nil)
	if err != nil {
		return err
	}
	s.entries = append(s.entries, entry{name: name, source: "config", set: set})
	return nil
}

func (s *Schedule) addEvent(ev Event, source string) error {
	name := strings.TrimSpace(ev.Summary)
	if name == "" {
		name = "Workout"
	}
	if ev.RRule == "" {
		s.entries = append(s.entries, entry{name: name, source: source, single: calendar.DateOf(ev.Start.In(time.Local))})
		return nil
	}
	set, err := buildSet(ev.RRule, ev.Start, ev.ExDates)
	if err != nil {
		return err
	}
	s.entries = append(s.entries, entry{name: name, source: source, set: set})
	return nil
}

func buildSet(rule string, start time.Time, exdates []time.Time) (*rrule.Set, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, errors.New("rrule is empty")
	}
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("parse rrule %q: %w", rule, err)
	}
	opt.Dtstart = start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build rrule %q: %w", rule, err)
	}
	set := &rrule.Set{}
	set.RRule(r)
	for _, ex := range exdates {
		set.ExDate(ex.In(start.Location()))
	}
	return set, nil
}

// Len returns the number of schedule entries.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Between returns the workouts on each day from "from" through "to"
// inclusive, sorted by name within a day.
func (s *Schedule) Between(from, to calendar.Date) map[calendar.Date][]Workout {
	out := make(map[calendar.Date][]Workout)
	if s == nil || to.Before(from) {
		return out
	}
	start := from.Time()
	end := to.AddDays(1).Time().Add(-time.Nanosecond)

	for _, e := range s.entries {
		if e.set == nil {
			if !e.single.Before(from) && !e.single.After(to) {
				out[e.single] = append(out[e.single], Workout{Name: e.name, Date: e.single, Source: e.source})
			}
			continue
		}
		for _, occ := range e.set.Between(start, end, true) {
			d := calendar.DateOf(occ.In(time.Local))
			out[d] = append(out[d], Workout{Name: e.name, Date: d, Source: e.source})
		}
	}
	for d := range out {
		sort.Slice(out[d], func(i, j int) bool { return out[d][i].Name < out[d][j].Name })
	}
	return out
}

// On returns the workouts planned for d.
func (s *Schedule) On(d calendar.Date) []Workout {
	return s.Between(d, d)[d]
}
