package weather

import "sort"

// Descriptor is the human-readable label and unit for a canonical field key.
type Descriptor struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
}

// Title renders the descriptor the way axis labels show it, e.g.
// "Temperature (C)".
func (d Descriptor) Title() string {
	if d.Unit == "" {
		return d.Label
	}
	return d.Label + " (" + d.Unit + ")"
}

// descriptors covers the columns of a Davis WeatherLink export.
var descriptors = map[string]Descriptor{
	"temp_out":       {Label: "Temperature", Unit: "C"},
	"hi_temp":        {Label: "Maximum Temperature", Unit: "C"},
	"low_temp":       {Label: "Minimum Temperature", Unit: "C"},
	"out_hum":        {Label: "Humidity", Unit: "%"},
	"dew_pt":         {Label: "Dew Point Temperature", Unit: "C"},
	"wind_speed":     {Label: "Wind Speed", Unit: "km/h"},
	"wind_dir":       {Label: "Wind Direction"},
	"wind_run":       {Label: "Wind Run", Unit: "km"},
	"hi_speed":       {Label: "Maximum Wind Speed", Unit: "km/h"},
	"hi_dir":         {Label: "Direction of Maximum Wind Speed"},
	"wind_chill":     {Label: "Wind Chill Factor", Unit: "C"},
	"heat_index":     {Label: "Heat Index", Unit: "C"},
	"thw_index":      {Label: "Feels Like Temperature", Unit: "C"},
	"bar":            {Label: "Pressure", Unit: "millibar"},
	"rain":           {Label: "Rainfall", Unit: "mm"},
	"rain_rate":      {Label: "Rainfall Rate", Unit: "mm/h"},
	"heat_d-d":       {Label: "Heating Degree Day", Unit: "C"},
	"cool_d-d":       {Label: "Cooling Degree Day", Unit: "C"},
	"in_temp":        {Label: "Indoor Temperature", Unit: "C"},
	"in_hum":         {Label: "Indoor Humidity", Unit: "%"},
	"in_dew":         {Label: "Indoor Dewpoint Temperature", Unit: "C"},
	"in_heat":        {Label: "Indoor Heat Index", Unit: "C"},
	"in_emc":         {Label: "Equilibrium Moisture Content"},
	"in_air_density": {Label: "Indoor Air Density"},
	"wind_samp":      {Label: "Number of Wind Measurements"},
	"wind_tx":        {Label: "RF Channel for wind data"},
	"iss_recept":     {Label: "RF reception", Unit: "%"},
	"arc_int":        {Label: "Archive Interval", Unit: "min"},
}

// Lookup returns the descriptor for key.
func Lookup(key string) (Descriptor, error) {
	d, ok := descriptors[key]
	if !ok {
		return Descriptor{}, &UnknownFieldError{Key: key}
	}
	d.Key = key
	return d, nil
}

// KnownFields lists every key with a descriptor, sorted.
func KnownFields() []string {
	keys := make([]string, 0, len(descriptors))
	for k := range descriptors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
