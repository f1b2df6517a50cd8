package weather

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyFor(span time.Duration) *Table {
	n := int(span/time.Hour) + 1
	return mkTable(
		hours(at(2024, time.January, 1, 0, 0), n),
		col{"temp_out", constant(n, 10)},
		col{"rain", constant(n, 0.1)},
	)
}

func TestAvailableOptions(t *testing.T) {
	tests := []struct {
		span        time.Duration
		frequencies []Frequency
		durations   []Duration
	}{
		{2 * time.Hour, []Frequency{Hourly}, []Duration{Day}},
		{6 * 24 * time.Hour, []Frequency{Hourly, Daily}, []Duration{Day, Week, Month}},
		{40 * 24 * time.Hour, []Frequency{Hourly, Daily, Weekly}, []Duration{Day, Week, Month}},
		{200 * 24 * time.Hour, []Frequency{Hourly, Daily, Weekly, Monthly}, []Duration{Day, Week, Month, Year}},
	}

	for _, tt := range tests {
		opts := AvailableOptions(hourlyFor(tt.span))
		assert.Equal(t, tt.frequencies, opts.Frequencies, "span %s", tt.span)
		assert.Equal(t, tt.durations, opts.Durations, "span %s", tt.span)
	}
}

func TestSessionDefaults(t *testing.T) {
	original := hourlyFor(47 * time.Hour)

	s, err := NewSession(original)
	require.NoError(t, err)
	assert.Equal(t, Hourly, s.Frequency())
	assert.Equal(t, Day, s.Duration())
	assert.Equal(t, 0, s.Selected())
	assert.Len(t, s.Boundaries(), 2)
	assert.Same(t, original, s.Original())

	w, err := s.Window()
	require.NoError(t, err)
	assert.Equal(t, 24, w.Len())
}

func TestSessionAlwaysResamplesOriginal(t *testing.T) {
	original := hourlyFor(30 * 24 * time.Hour)
	s, err := NewSession(original)
	require.NoError(t, err)

	require.NoError(t, s.SetFrequency(Daily))
	require.NoError(t, s.SetFrequency(Weekly))
	require.NoError(t, s.SetFrequency(Daily))

	want, err := Resample(original, Daily)
	require.NoError(t, err)
	assert.Equal(t, want, s.Table())
	assert.Equal(t, hourlyFor(30*24*time.Hour), original, "original is untouched")

	_, err = NewSession(s.Table())
	assert.Error(t, err, "sessions start from the normalized table")
}

func TestSessionSelection(t *testing.T) {
	s, err := NewSession(hourlyFor(71 * time.Hour))
	require.NoError(t, err)
	require.Len(t, s.Boundaries(), 3)

	require.NoError(t, s.Select(2))
	period, ok := s.Period()
	require.True(t, ok)
	assert.Equal(t, "03/01/2024", period.Label)

	var oor *IndexOutOfRangeError
	assert.ErrorAs(t, s.Select(3), &oor)
	assert.Equal(t, 2, s.Selected(), "a failed selection keeps the previous one")

	require.NoError(t, s.SetDuration(Week))
	assert.Equal(t, 0, s.Selected(), "changing duration resets the selection")
	assert.Len(t, s.Boundaries(), 1)

	b, err := s.Chart("temp_out", "rain")
	require.NoError(t, err)
	assert.Len(t, b.Timestamps, 72)

	f, d, p := s.Labels()
	assert.Equal(t, []string{"Hourly", "Week", "01/01/2024"}, []string{f, d, p})
}

func TestSessionEmptyTable(t *testing.T) {
	s, err := NewSession(mkTable(nil, col{"temp_out", nil}, col{"rain", nil}))
	require.NoError(t, err)
	assert.Empty(t, s.Boundaries())

	_, ok := s.Period()
	assert.False(t, ok)

	w, err := s.Window()
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())

	b, err := s.Chart("temp_out", "rain")
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestBrowse(t *testing.T) {
	original := hourlyFor(10 * 24 * time.Hour)

	s, err := Browse(original, Daily, Week, 1)
	require.NoError(t, err)
	period, _ := s.Period()
	assert.Equal(t, at(2024, time.January, 8, 0, 0), period.Start)

	w, err := s.Window()
	require.NoError(t, err)
	assert.Equal(t, 4, w.Len())

	_, err = Browse(original, Daily, Week, 5)
	var oor *IndexOutOfRangeError
	assert.ErrorAs(t, err, &oor)

	s, err = Browse(mkTable(nil, col{"rain", nil}), Hourly, Day, 0)
	require.NoError(t, err)
	assert.Empty(t, s.Boundaries())
}

type stringSource string

func (s stringSource) Name() string { return "inline" }

func (s stringSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func TestLoad(t *testing.T) {
	src := stringSource("\t\tTemp\t\nDate\tTime\tOut\tRain\n01/01/24\t10:00\t1.5\t0.2\n01/01/24\t11:00\t2.5\t0.0\n")

	table, err := Load(context.Background(), src, NormalizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"temp_out", "rain"}, table.NumericKeys())
}

func TestLoadUnmappedField(t *testing.T) {
	src := stringSource("\t\tTemp\t\nDate\tTime\tOut\tSnow\n01/01/24\t10:00\t1.5\t3\n")

	_, err := Load(context.Background(), src, NormalizeOptions{})
	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "snow", unknown.Key)
}
