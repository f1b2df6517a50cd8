package weather

import (
	"time"
)

// Field is one column of a Table. Only numeric fields can be resampled or
// plotted.
type Field struct {
	Key     string `json:"key"`
	Numeric bool   `json:"numeric"`
}

// Table is a chronologically indexed set of measurements. Vals is column
// major: Vals[col][row] is the value of Fields[col] at Index[row]. Missing
// values are NaN; every column has exactly len(Index) entries.
//
// Tables are treated as immutable once built. Operations return new tables.
type Table struct {
	Index  []time.Time
	Fields []Field
	Vals   [][]float64

	// Frequency is the sampling frequency the table was resampled to, or ""
	// for a table straight from the normalizer.
	Frequency Frequency
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Index)
}

// ColIndex returns the column index of key or -1.
func (t *Table) ColIndex(key string) int {
	for idx, f := range t.Fields {
		if f.Key == key {
			return idx
		}
	}
	return -1
}

// Column returns the values of a numeric field.
func (t *Table) Column(key string) ([]float64, error) {
	idx := t.ColIndex(key)
	if idx == -1 || !t.Fields[idx].Numeric {
		return nil, &UnknownFieldError{Key: key}
	}
	return t.Vals[idx], nil
}

// NumericKeys lists the plottable fields in column order.
func (t *Table) NumericKeys() []string {
	keys := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.Numeric {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Start returns the first timestamp, or the zero time for an empty table.
func (t *Table) Start() time.Time {
	if t.Len() == 0 {
		return time.Time{}
	}
	return t.Index[0]
}

// End returns the last timestamp, or the zero time for an empty table.
func (t *Table) End() time.Time {
	if t.Len() == 0 {
		return time.Time{}
	}
	return t.Index[len(t.Index)-1]
}

// Span is the time between the first and last record.
func (t *Table) Span() time.Duration {
	return t.End().Sub(t.Start())
}

// Describe returns a descriptor for every field in the schema, failing on the
// first key the descriptor table does not know.
func (t *Table) Describe() ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(t.Fields))
	for _, f := range t.Fields {
		d, err := Lookup(f.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// rows returns a copy of records [begin, end).
func (t *Table) rows(begin, end int) *Table {
	out := &Table{
		Index:     make([]time.Time, end-begin),
		Fields:    make([]Field, len(t.Fields)),
		Vals:      make([][]float64, len(t.Vals)),
		Frequency: t.Frequency,
	}
	copy(out.Index, t.Index[begin:end])
	copy(out.Fields, t.Fields)
	for col := range t.Vals {
		out.Vals[col] = make([]float64, end-begin)
		copy(out.Vals[col], t.Vals[col][begin:end])
	}
	return out
}
