// Package model holds the record and feature types shared by the loader, the
// choropleth join and the HTTP surface.
package model

import "github.com/twpayne/go-geom"

// UnknownCounty is the county name the source uses for rows it could not
// attribute to a county.
const UnknownCounty = "Unknown"

// PredictionRecord is one county's predicted probability of a case wave.
// FIPS is empty for city-level rows the source keeps apart from county data.
type PredictionRecord struct {
	FIPS       string  `json:"fips"`
	County     string  `json:"county"`
	State      string  `json:"state"`
	Prediction float64 `json:"prediction"`
}

// HasFIPS reports whether the record can be joined by identifier.
func (r PredictionRecord) HasFIPS() bool {
	return r.FIPS != ""
}

// GeoFeature is a county boundary keyed by its GEOID.
type GeoFeature struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   geom.T         `json:"-"`
}

// Name returns the feature's NAME property, if any.
func (f GeoFeature) Name() string {
	if f.Properties == nil {
		return ""
	}
	name, _ := f.Properties["NAME"].(string)
	return name
}
