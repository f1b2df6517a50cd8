package weather

import (
	"context"
	"fmt"
	"io"
)

// Source supplies the raw bytes of a weather log, e.g. a local file or a
// remote export URL.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Load reads and normalizes the log behind src.
func Load(ctx context.Context, src Source, opts NormalizeOptions) (*Table, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer rc.Close()

	return Parse(rc, opts)
}

// Parse reads a TSV weather log from r and normalizes it. Every column must
// have a descriptor; the first unmapped key fails with *UnknownFieldError.
func Parse(r io.Reader, opts NormalizeOptions) (*Table, error) {
	raw, err := ReadTSV(r)
	if err != nil {
		return nil, err
	}
	table, err := Normalize(raw, opts)
	if err != nil {
		return nil, err
	}
	if _, err := table.Describe(); err != nil {
		return nil, err
	}
	return table, nil
}
