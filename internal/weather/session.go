package weather

import (
	"fmt"
	"time"
)

// minLength scales the thresholds at which coarser frequencies and
// durations become available.
const minLength = 5

// Options are the frequencies and durations worth offering for a table.
type Options struct {
	Frequencies []Frequency `json:"frequencies"`
	Durations   []Duration  `json:"durations"`
}

// AvailableOptions derives the selectable frequencies and durations from the
// time covered by t. Hourly sampling browsed by day is always offered.
func AvailableOptions(t *Table) Options {
	span := t.Span()
	opts := Options{
		Frequencies: []Frequency{Hourly},
		Durations:   []Duration{Day},
	}

	if span > minLength*24*time.Hour {
		opts.Frequencies = append(opts.Frequencies, Daily)
		opts.Durations = append(opts.Durations, Week, Month)
	}
	if span > minLength*7*24*time.Hour {
		opts.Frequencies = append(opts.Frequencies, Weekly)
	}
	if span > minLength*31*24*time.Hour {
		opts.Frequencies = append(opts.Frequencies, Monthly)
		opts.Durations = append(opts.Durations, Year)
	}

	return opts
}

// Session is the state of one browsing session over a weather log. The
// original table is never modified; every frequency change resamples it
// afresh and every change replaces the derived state wholesale.
type Session struct {
	original   *Table
	frequency  Frequency
	duration   Duration
	resampled  *Table
	boundaries []Boundary
	selected   int
}

// NewSession starts a session on a normalized table with the first available
// frequency and duration selected.
func NewSession(original *Table) (*Session, error) {
	if original.Frequency != "" {
		return nil, fmt.Errorf("session needs the normalized table, got one resampled to %s", original.Frequency)
	}

	opts := AvailableOptions(original)
	s := &Session{
		original: original,
		duration: opts.Durations[0],
	}
	if err := s.SetFrequency(opts.Frequencies[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// Original returns the normalized table the session was started with.
func (s *Session) Original() *Table { return s.original }

// Table returns the resampled table currently browsed.
func (s *Session) Table() *Table { return s.resampled }

// Frequency returns the selected sampling frequency.
func (s *Session) Frequency() Frequency { return s.frequency }

// Duration returns the selected browsing duration.
func (s *Session) Duration() Duration { return s.duration }

// Boundaries returns the periods of the current table.
func (s *Session) Boundaries() []Boundary { return s.boundaries }

// Selected returns the index of the selected period.
func (s *Session) Selected() int { return s.selected }

// SetFrequency resamples the original table to f, re-segments it and selects
// the first period.
func (s *Session) SetFrequency(f Frequency) error {
	resampled, err := Resample(s.original, f)
	if err != nil {
		return err
	}
	boundaries, err := Segment(resampled, s.duration)
	if err != nil {
		return err
	}

	s.frequency = f
	s.resampled = resampled
	s.boundaries = boundaries
	s.selected = 0
	return nil
}

// SetDuration re-segments the current table by d and selects the first period.
func (s *Session) SetDuration(d Duration) error {
	boundaries, err := Segment(s.resampled, d)
	if err != nil {
		return err
	}

	s.duration = d
	s.boundaries = boundaries
	s.selected = 0
	return nil
}

// Select chooses the period at idx.
func (s *Session) Select(idx int) error {
	if idx < 0 || idx >= len(s.boundaries) {
		return &IndexOutOfRangeError{Index: idx, Len: len(s.boundaries)}
	}
	s.selected = idx
	return nil
}

// Period returns the selected boundary. ok is false when the table has no
// records.
func (s *Session) Period() (b Boundary, ok bool) {
	if len(s.boundaries) == 0 {
		return Boundary{}, false
	}
	return s.boundaries[s.selected], true
}

// Window returns the records of the selected period. With no periods the
// window is an empty table rather than an error.
func (s *Session) Window() (*Table, error) {
	if len(s.boundaries) == 0 {
		return s.resampled.rows(0, 0), nil
	}
	return Extract(s.resampled, s.boundaries, s.selected)
}

// Chart composes the chart bundle of the selected period.
func (s *Session) Chart(primary, secondary string) (*ChartBundle, error) {
	w, err := s.Window()
	if err != nil {
		return nil, err
	}
	return Compose(w, primary, secondary)
}

// Labels returns the display labels of the selected frequency, duration and
// period, in that order.
func (s *Session) Labels() (frequency, duration, period string) {
	b, _ := s.Period()
	return s.frequency.Label(), s.duration.Label(), b.Label
}

// Browse runs a full selection chain on original: resample to f, segment by
// d and select period idx.
func Browse(original *Table, f Frequency, d Duration, idx int) (*Session, error) {
	s, err := NewSession(original)
	if err != nil {
		return nil, err
	}
	if err := s.SetDuration(d); err != nil {
		return nil, err
	}
	if err := s.SetFrequency(f); err != nil {
		return nil, err
	}
	if len(s.boundaries) == 0 && idx == 0 {
		return s, nil
	}
	if err := s.Select(idx); err != nil {
		return nil, err
	}
	return s, nil
}
