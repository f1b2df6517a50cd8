package weather

import (
	"fmt"
	"time"
)

// Duration is the calendar unit a table is browsed by.
type Duration string

const (
	Day   Duration = "day"
	Week  Duration = "week"
	Month Duration = "month"
	Year  Duration = "year"
)

// Durations lists every duration from shortest to longest.
var Durations = []Duration{Day, Week, Month, Year}

// ParseDuration validates s as a Duration.
func ParseDuration(s string) (Duration, error) {
	for _, d := range Durations {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown duration %q", s)
}

// Label is the display name, e.g. "Week".
func (d Duration) Label() string {
	switch d {
	case Day:
		return "Day"
	case Week:
		return "Week"
	case Month:
		return "Month"
	case Year:
		return "Year"
	}
	return string(d)
}

// period identifies the calendar period t belongs to. Year is part of the
// key so that e.g. the 5th of January and the 5th of February differ.
func (d Duration) period(t time.Time) [2]int {
	switch d {
	case Day:
		return [2]int{t.Year(), t.YearDay()}
	case Week:
		y, w := t.ISOWeek()
		return [2]int{y, w}
	case Month:
		return [2]int{t.Year(), int(t.Month())}
	default:
		return [2]int{t.Year(), 0}
	}
}

// format renders a boundary label: day/month/year, or month/year for months.
func (d Duration) format(t time.Time) string {
	if d == Month {
		return t.Format("01/2006")
	}
	return t.Format("02/01/2006")
}

// Boundary marks the first record of one navigable period.
type Boundary struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
}

// Segment walks t in order and starts a new boundary whenever the calendar
// period of a record differs from the previous record's. An empty table
// yields no boundaries.
func Segment(t *Table, d Duration) ([]Boundary, error) {
	if _, err := ParseDuration(string(d)); err != nil {
		return nil, err
	}

	if t.Len() == 0 {
		return nil, nil
	}

	var (
		out  []Boundary
		prev [2]int
	)
	for i, ts := range t.Index {
		p := d.period(ts)
		if i == 0 || p != prev {
			out = append(out, Boundary{Label: d.format(ts), Start: ts})
		}
		prev = p
	}
	return out, nil
}
