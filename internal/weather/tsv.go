package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// RawRow is one data line of a weather log.
type RawRow struct {
	Line  int
	Cells []string
}

// RawTable is a weather log split into cells. Outer and Inner are the two
// header rows and have the same width as every row.
type RawTable struct {
	Outer []string
	Inner []string
	Rows  []RawRow
}

// Width returns the number of columns.
func (r *RawTable) Width() int {
	return len(r.Outer)
}

// ReadTSV reads a tab separated weather log with a two row header.
func ReadTSV(rd io.Reader) (*RawTable, error) {
	cr := csv.NewReader(rd)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		raw    RawTable
		header [][]string
	)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &MalformedInputError{Line: perr.Line, Reason: perr.Err.Error()}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(header) < 2 {
			header = append(header, rec)
			if len(header) == 2 {
				width := len(header[0])
				if len(header[1]) > width {
					width = len(header[1])
				}
				raw.Outer = pad(header[0], width)
				raw.Inner = pad(header[1], width)
			}
			continue
		}

		if len(rec) != raw.Width() {
			return nil, &MalformedInputError{
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, found %d", raw.Width(), len(rec)),
			}
		}
		raw.Rows = append(raw.Rows, RawRow{Line: line, Cells: rec})
	}

	if len(header) < 2 {
		return nil, &MalformedInputError{Reason: "missing two row header"}
	}
	return &raw, nil
}

func pad(rec []string, width int) []string {
	out := make([]string, width)
	copy(out, rec)
	return out
}
