package httpapi

import (
	"time"

	"github.com/i474232898/weather-reporter/internal/store"
	"github.com/i474232898/weather-reporter/internal/weather"
)

type fieldView struct {
	Key     string `json:"key"`
	Numeric bool   `json:"numeric"`
	Label   string `json:"label"`
	Unit    string `json:"unit,omitempty"`
}

type datasetView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Source    string          `json:"source,omitempty"`
	LoadedAt  time.Time       `json:"loadedAt"`
	Records   int             `json:"records"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Fields    []fieldView     `json:"fields"`
	Plottable []string        `json:"plottable"`
	Options   weather.Options `json:"options"`
}

func newDatasetView(ds store.Dataset) (datasetView, error) {
	descriptors, err := ds.Table.Describe()
	if err != nil {
		return datasetView{}, err
	}

	v := datasetView{
		ID:        ds.ID,
		Name:      ds.Name,
		Source:    ds.Source,
		LoadedAt:  ds.LoadedAt,
		Records:   ds.Table.Len(),
		Start:     ds.Table.Start(),
		End:       ds.Table.End(),
		Fields:    make([]fieldView, 0, len(ds.Table.Fields)),
		Plottable: ds.Table.NumericKeys(),
		Options:   weather.AvailableOptions(ds.Table),
	}

	for i, f := range ds.Table.Fields {
		d := descriptors[i]
		v.Fields = append(v.Fields, fieldView{Key: f.Key, Numeric: f.Numeric, Label: d.Label, Unit: d.Unit})
	}
	return v, nil
}
