package weather

import (
	"sort"
	"time"
)

// Extract returns the records of t belonging to boundaries[idx]: from its
// start up to, but not including, the next boundary's start. The last
// boundary runs through the final record of t.
func Extract(t *Table, boundaries []Boundary, idx int) (*Table, error) {
	if idx < 0 || idx >= len(boundaries) {
		return nil, &IndexOutOfRangeError{Index: idx, Len: len(boundaries)}
	}

	begin := search(t.Index, boundaries[idx].Start)
	end := t.Len()
	if idx+1 < len(boundaries) {
		end = search(t.Index, boundaries[idx+1].Start)
	}
	if end < begin {
		end = begin
	}

	return t.rows(begin, end), nil
}

// search returns the first position in index at or after ts.
func search(index []time.Time, ts time.Time) int {
	return sort.Search(len(index), func(i int) bool {
		return !index[i].Before(ts)
	})
}
