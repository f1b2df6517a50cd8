package weather

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type col struct {
	key  string
	vals []float64
}

func mkTable(index []time.Time, cols ...col) *Table {
	t := &Table{Index: index}
	for _, c := range cols {
		t.Fields = append(t.Fields, Field{Key: c.key, Numeric: true})
		t.Vals = append(t.Vals, c.vals)
	}
	return t
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

// hours returns n timestamps one hour apart starting at start.
func hours(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func days(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func loadSample(t *testing.T) *Table {
	t.Helper()
	f, err := os.Open("testdata/sample.txt")
	require.NoError(t, err)
	defer f.Close()

	table, err := Parse(f, NormalizeOptions{})
	require.NoError(t, err)
	return table
}
