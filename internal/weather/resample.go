package weather

import (
	"fmt"
	"math"
	"time"
)

// Frequency is a sampling frequency the resampler buckets records into.
type Frequency string

const (
	Hourly  Frequency = "hourly"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Frequencies lists every frequency from finest to coarsest.
var Frequencies = []Frequency{Hourly, Daily, Weekly, Monthly}

// ParseFrequency validates s as a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// Label is the display name, e.g. "Hourly".
func (f Frequency) Label() string {
	switch f {
	case Hourly:
		return "Hourly"
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	}
	return string(f)
}

// Bucket returns the start of the bucket holding t: the hour, midnight, the
// Monday of the ISO week, or the first of the month, in t's location.
func (f Frequency) Bucket(t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case Hourly:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	case Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// Span is the width of the bucket starting at start.
func (f Frequency) Span(start time.Time) time.Duration {
	switch f {
	case Hourly:
		return time.Hour
	case Daily:
		return start.AddDate(0, 0, 1).Sub(start)
	case Weekly:
		return start.AddDate(0, 0, 7).Sub(start)
	case Monthly:
		return start.AddDate(0, 1, 0).Sub(start)
	}
	return time.Hour
}

// Resample sums every numeric field of src into buckets of freq. Buckets
// without records are omitted and non-numeric fields are dropped. A bucket
// whose values for a field are all missing keeps the missing marker.
//
// src must be a normalized table, not the output of a previous Resample:
// sums of sums are not sums of the original readings once bucket sizes vary.
func Resample(src *Table, freq Frequency) (*Table, error) {
	if _, err := ParseFrequency(string(freq)); err != nil {
		return nil, err
	}
	if src.Frequency != "" {
		return nil, fmt.Errorf("table already resampled to %s; resample the original table", src.Frequency)
	}

	out := &Table{Frequency: freq}
	cols := make([]int, 0, len(src.Fields))
	for idx, f := range src.Fields {
		if f.Numeric {
			cols = append(cols, idx)
			out.Fields = append(out.Fields, f)
		}
	}
	out.Vals = make([][]float64, len(cols))

	for row, ts := range src.Index {
		bucket := freq.Bucket(ts)
		n := len(out.Index)
		if n == 0 || !out.Index[n-1].Equal(bucket) {
			out.Index = append(out.Index, bucket)
			for i := range out.Vals {
				out.Vals[i] = append(out.Vals[i], math.NaN())
			}
			n++
		}

		for i, col := range cols {
			v := src.Vals[col][row]
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(out.Vals[i][n-1]) {
				out.Vals[i][n-1] = v
			} else {
				out.Vals[i][n-1] += v
			}
		}
	}

	return out, nil
}
