package weather

import (
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Series is a numeric sequence where NaN marks a missing value. It encodes
// missing values as JSON null.
type Series []float64

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
	}
	return append(buf, ']'), nil
}

// Axis is a vertical axis range. An inverted axis is drawn with Max at the
// bottom and Min at the top.
type Axis struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Inverted bool    `json:"inverted"`
}

// Limits returns the axis values at the bottom and the top of the plot.
func (a Axis) Limits() (bottom, top float64) {
	if a.Inverted {
		return a.Max, a.Min
	}
	return a.Min, a.Max
}

// ChartBundle is everything a renderer needs to draw the combined line and
// bar chart of one window.
type ChartBundle struct {
	Primary    string      `json:"primary"`
	Secondary  string      `json:"secondary"`
	Timestamps []time.Time `json:"timestamps"`
	Line       Series      `json:"line"`
	Bars       Series      `json:"bars"`

	PrimaryAxis   Axis `json:"primaryAxis"`
	SecondaryAxis Axis `json:"secondaryAxis"`

	XMin     time.Time     `json:"xMin"`
	XMax     time.Time     `json:"xMax"`
	BarWidth time.Duration `json:"barWidth"`
}

// Empty reports whether the bundle has no records.
func (b *ChartBundle) Empty() bool {
	return b == nil || len(b.Timestamps) == 0
}

// Compose builds the chart bundle for a window. The primary field is drawn as
// a line on an axis stretched upward to twice its span so it occupies the
// lower half of the plot. The secondary field is drawn as bars on an
// inverted axis, stretched the same way, so bars hang from the top. An empty
// window gives an empty bundle.
func Compose(window *Table, primary, secondary string) (*ChartBundle, error) {
	b := &ChartBundle{Primary: primary, Secondary: secondary}
	if window.Len() == 0 {
		return b, nil
	}

	line, err := window.Column(primary)
	if err != nil {
		return nil, err
	}
	bars, err := window.Column(secondary)
	if err != nil {
		return nil, err
	}

	b.Timestamps = append([]time.Time(nil), window.Index...)
	b.Line = append(Series(nil), line...)
	b.Bars = append(Series(nil), bars...)

	if lo, hi, ok := observedRange(line); ok {
		b.PrimaryAxis = Axis{Min: lo, Max: hi + (hi - lo)}
	}

	// bars grow from zero, so the baseline is always inside the range
	lo, hi, _ := observedRange(bars)
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	b.SecondaryAxis = Axis{Min: lo, Max: hi + (hi - lo), Inverted: true}

	if window.Len() > 1 {
		b.XMin, b.XMax = window.Start(), window.End()
		b.BarWidth = window.Index[1].Sub(window.Index[0])
		return b, nil
	}

	ts := window.Start()
	span := window.Frequency.Span(window.Frequency.Bucket(ts))
	b.XMin = ts.Add(-span / 2)
	b.XMax = b.XMin.Add(span)
	b.BarWidth = b.XMax.Sub(b.XMin)
	return b, nil
}

// observedRange returns the min and max of the non-missing values.
func observedRange(vals []float64) (lo, hi float64, ok bool) {
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}
