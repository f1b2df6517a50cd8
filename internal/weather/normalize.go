package weather

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMissing is the token WeatherLink writes for an absent reading.
const DefaultMissing = "---"

// NormalizeOptions controls how raw cells are interpreted.
type NormalizeOptions struct {
	// Missing is the sentinel token treated as a missing value.
	Missing string
	// Location is the time zone the logger clock runs in. Defaults to UTC.
	Location *time.Location
}

func (o NormalizeOptions) withDefaults() NormalizeOptions {
	if o.Missing == "" {
		o.Missing = DefaultMissing
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// Normalize turns a raw log into a Table. The first two columns are merged
// into the timestamp index; every other column becomes a field named by its
// canonical key. Records are sorted by time and later duplicates of a
// timestamp are dropped.
func Normalize(raw *RawTable, opts NormalizeOptions) (*Table, error) {
	opts = opts.withDefaults()

	if raw == nil || raw.Width() < 3 || len(raw.Inner) != raw.Width() {
		return nil, &MalformedInputError{Line: 1, Reason: "need date, time and at least one measurement column"}
	}

	keys, err := canonicalKeys(raw.Outer[2:], raw.Inner[2:])
	if err != nil {
		return nil, err
	}

	type record struct {
		ts   time.Time
		vals []float64
	}

	numeric := make([]bool, len(keys))
	for i := range numeric {
		numeric[i] = true
	}

	records := make([]record, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		if len(row.Cells) != raw.Width() {
			return nil, &MalformedInputError{
				Line:   row.Line,
				Reason: fmt.Sprintf("expected %d fields, found %d", raw.Width(), len(row.Cells)),
			}
		}
		ts, err := ParseTimestamp(row.Cells[0], row.Cells[1], opts.Location)
		if err != nil {
			return nil, &MalformedInputError{Line: row.Line, Reason: err.Error()}
		}

		vals := make([]float64, len(keys))
		for col, cell := range row.Cells[2:] {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == opts.Missing {
				vals[col] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric[col] = false
				v = math.NaN()
			}
			vals[col] = v
		}
		records = append(records, record{ts: ts, vals: vals})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ts.Before(records[j].ts)
	})

	t := &Table{
		Fields: make([]Field, len(keys)),
		Vals:   make([][]float64, len(keys)),
		Index:  make([]time.Time, 0, len(records)),
	}
	for col, key := range keys {
		t.Fields[col] = Field{Key: key, Numeric: numeric[col]}
		t.Vals[col] = make([]float64, 0, len(records))
	}

	dropped := 0
	for _, rec := range records {
		if n := len(t.Index); n > 0 && !t.Index[n-1].Before(rec.ts) {
			dropped++
			continue
		}
		t.Index = append(t.Index, rec.ts)
		for col, v := range rec.vals {
			if !numeric[col] {
				v = math.NaN()
			}
			t.Vals[col] = append(t.Vals[col], v)
		}
	}

	if dropped > 0 {
		log.Warn().Int("Dropped", dropped).Msg("duplicate timestamps in weather log")
	}

	return t, nil
}

// canonicalKeys flattens the two header rows into field keys. Every key is
// built before any is used so collisions are reported instead of overwritten.
func canonicalKeys(outer, inner []string) ([]string, error) {
	keys := make([]string, len(outer))
	seen := make(map[string][]int, len(outer))

	for i := range outer {
		key := CanonicalKey(outer[i], inner[i])
		if key == "" {
			return nil, &MalformedInputError{Line: 1, Reason: fmt.Sprintf("column %d has no header", i+3)}
		}
		keys[i] = key
		seen[key] = append(seen[key], i+3)
	}

	for _, key := range keys {
		if cols := seen[key]; len(cols) > 1 {
			return nil, &SchemaConflictError{Key: key, Columns: cols}
		}
	}

	return keys, nil
}

// CanonicalKey joins the non-placeholder header parts with a space, lowercases
// the result, replaces spaces with underscores and removes periods.
func CanonicalKey(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if isPlaceholder(p) {
			continue
		}
		kept = append(kept, p)
	}

	key := strings.TrimSpace(strings.ToLower(strings.Join(kept, " ")))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, ".", "")
}

// isPlaceholder reports header cells that carry no label, including the
// "Unnamed: N_level_M" names spreadsheet tools generate for blank cells.
func isPlaceholder(s string) bool {
	return s == "" || strings.HasPrefix(s, "Unnamed")
}

var (
	dateLayouts = []string{"2/1/06", "2/1/2006", "2-1-2006", "2.1.2006"}
	timeLayouts = []string{"15:04", "15:04:05", "3:04pm", "3:04 pm", "3:04:05pm"}
)

// ParseTimestamp merges a day-first date cell and a time cell. Times may be
// 24 hour or 12 hour with an "a"/"p" or "am"/"pm" suffix.
func ParseTimestamp(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.ToLower(strings.TrimSpace(clock))
	if strings.HasSuffix(clock, "a") || strings.HasSuffix(clock, "p") {
		clock += "m"
	}

	for _, dl := range dateLayouts {
		for _, tl := range timeLayouts {
			if ts, err := time.ParseInLocation(dl+" "+tl, date+" "+clock, loc); err == nil {
				return ts, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse timestamp %q %q", date, clock)
}
