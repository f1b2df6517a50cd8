package weather

import (
	"fmt"
	"strings"
)

// MalformedInputError reports raw log content that could not be turned into a
// table. Line is 1-based and refers to the raw file (0 when unknown).
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
	}
	return "malformed input: " + e.Reason
}

// IndexOutOfRangeError is returned when a period selection does not exist.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("period index %d out of range [0, %d)", e.Index, e.Len)
}

// EmptyWindowError is returned by consumers that cannot do anything useful
// with a window holding zero records.
type EmptyWindowError struct {
	Period string
}

func (e *EmptyWindowError) Error() string {
	if e.Period == "" {
		return "window has no records"
	}
	return fmt.Sprintf("window %s has no records", e.Period)
}

// SchemaConflictError is returned when two raw columns flatten to the same key.
type SchemaConflictError struct {
	Key     string
	Columns []int
}

func (e *SchemaConflictError) Error() string {
	cols := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		cols[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("columns %s all map to field %q", strings.Join(cols, ", "), e.Key)
}

// UnknownFieldError is returned for field keys without a descriptor or
// without numeric data.
type UnknownFieldError struct {
	Key string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Key)
}
