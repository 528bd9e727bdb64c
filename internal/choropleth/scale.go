// Package choropleth joins county boundaries to prediction records and
// classifies each prediction into an ordered color bucket.
package choropleth

import (
	"math"
	"regexp"
	"sort"

	"github.com/rotisserie/eris"
)

// YlOrRd9 is the 9-class ColorBrewer yellow-orange-red sequential ramp.
var YlOrRd9 = []string{
	"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
	"#fc4e2a", "#e31a1c", "#bd0026", "#800026",
}

// NoDataFill is the fill value for features with no matching record.
const NoDataFill = 0

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Bucket is an ordered color class; 0 is the lightest.
type Bucket int

// Scale maps a probability in [0,1] to one of len(colors) buckets using
// len(colors)-1 evenly spaced cut points starting at 0.
type Scale struct {
	thresholds []float64
	colors     []string
}

// NewScale builds a threshold scale over the given light-to-dark colors.
func NewScale(colors []string) (Scale, error) {
	if len(colors) < 2 {
		return Scale{}, eris.Errorf("choropleth: scale needs at least 2 colors, got %d", len(colors))
	}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return Scale{}, eris.Errorf("choropleth: invalid color %q", c)
		}
	}

	n := len(colors) - 1
	thresholds := make([]float64, n)
	for i := range thresholds {
		thresholds[i] = float64(i) / float64(n)
	}

	return Scale{
		thresholds: thresholds,
		colors:     append([]string(nil), colors...),
	}, nil
}

// DefaultScale returns the 9-bucket YlOrRd scale with cut points every 0.125.
func DefaultScale() Scale {
	s, err := NewScale(YlOrRd9)
	if err != nil {
		panic(err)
	}
	return s
}

// Buckets returns the number of buckets.
func (s Scale) Buckets() int {
	return len(s.colors)
}

// Thresholds returns a copy of the cut points.
func (s Scale) Thresholds() []float64 {
	return append([]float64(nil), s.thresholds...)
}

// Bucket returns the index i with thresholds[i] <= p < thresholds[i+1].
// Values below the first cut point (and NaN) clamp to 0; values at or above 1
// clamp to the last bucket.
func (s Scale) Bucket(p float64) Bucket {
	if math.IsNaN(p) {
		return 0
	}
	if p >= 1 {
		return Bucket(len(s.colors) - 1)
	}
	i := sort.Search(len(s.thresholds), func(i int) bool { return s.thresholds[i] > p }) - 1
	if i < 0 {
		return 0
	}
	return Bucket(i)
}

// Fill returns the color for p the way a d3 threshold scale picks it:
// colors[i] where i counts the cut points at or below p. Values below the
// first cut point get the lightest color, so [0, 0.125) is drawn with the
// second color and anything at or above the last cut point with the darkest.
// NaN gets the lightest color.
func (s Scale) Fill(p float64) string {
	if math.IsNaN(p) {
		return s.colors[0]
	}
	i := sort.Search(len(s.thresholds), func(i int) bool { return s.thresholds[i] > p })
	return s.colors[i]
}

// LegendEntry describes the range of predictions drawn with one color.
type LegendEntry struct {
	Class int     `json:"class"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color string  `json:"color"`
}

// Legend returns one entry per color, matching Fill. The first color only
// holds values below the first cut point, so its range is empty. The last
// color runs from the last cut point through 1.
func (s Scale) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(s.colors))
	for i, c := range s.colors {
		e := LegendEntry{Class: i, Color: c}
		switch {
		case i == 0:
			e.Min, e.Max = s.thresholds[0], s.thresholds[0]
		case i < len(s.thresholds):
			e.Min, e.Max = s.thresholds[i-1], s.thresholds[i]
		default:
			e.Min, e.Max = s.thresholds[i-1], 1
		}
		entries = append(entries, e)
	}
	return entries
}
