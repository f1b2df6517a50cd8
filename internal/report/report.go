// Package report renders one chart bundle as a plain text weather report.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"github.com/i474232898/weather-reporter/internal/weather"
)

const timeLayout = "02/01/2006 15:04"

// Title assembles the report title from the selected frequency, duration and
// period labels.
func Title(station, frequency, duration, period string) string {
	return fmt.Sprintf("%s %s Weather Report for the %s of %s", station, frequency, duration, period)
}

// Write renders title and bundle to w. An empty bundle is an
// *weather.EmptyWindowError and a field without a descriptor an
// *weather.UnknownFieldError.
func Write(w io.Writer, title string, b *weather.ChartBundle) error {
	if b.Empty() {
		return &weather.EmptyWindowError{}
	}

	primary, err := weather.Lookup(b.Primary)
	if err != nil {
		return err
	}
	secondary, err := weather.Lookup(b.Secondary)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", primary.Title(), secondary.Title()})
	table.SetFooter([]string{"Records", fmt.Sprintf("%d", len(b.Timestamps)), ""})
	table.SetBorder(false)

	for idx, ts := range b.Timestamps {
		table.Append([]string{ts.Format(timeLayout), value(b.Line[idx]), value(b.Bars[idx])})
	}
	table.Render()

	pb, pt := b.PrimaryAxis.Limits()
	sb, st := b.SecondaryAxis.Limits()
	_, err = fmt.Fprintf(w, "\n%s axis: %s (bottom) to %s (top)\n%s axis: %s (bottom) to %s (top)\nBar width: %s\n",
		primary.Title(), value(pb), value(pt),
		secondary.Title(), value(sb), value(st),
		b.BarWidth)
	return err
}

func value(v float64) string {
	if math.IsNaN(v) {
		return weather.DefaultMissing
	}
	return fmt.Sprintf("%.1f", v)
}
