package choropleth

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/wavemap/internal/fips"
	"github.com/sells-group/wavemap/internal/model"
)

// RenderOptions narrows the rendered collection.
type RenderOptions struct {
	// State keeps only features whose GEOID starts with this 2-digit state code.
	State string
}

// Render joins every feature to its record and returns a GeoJSON collection
// carrying fill, bucket, prediction and tooltip properties. Features without a
// record get NoDataFill, a null bucket and an empty tooltip.
func (c *Classifier) Render(features []model.GeoFeature, opts RenderOptions) *geojson.FeatureCollection {
	state := fips.NormalizeState(opts.State)

	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(features)),
	}
	for _, f := range features {
		if state != "" && fips.StateOf(f.ID) != state {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         f.ID,
			Geometry:   f.Geometry,
			Properties: c.FeatureProperties(f),
		})
	}
	return fc
}

// FeatureProperties returns the rendered properties for a single feature.
func (c *Classifier) FeatureProperties(f model.GeoFeature) map[string]any {
	props := map[string]any{
		"GEOID":      f.ID,
		"fill":       NoDataFill,
		"bucket":     nil,
		"prediction": nil,
		"tooltip":    "",
	}
	if name := f.Name(); name != "" {
		props["NAME"] = name
	}

	m, ok := c.Classify(f.ID)
	if !ok {
		return props
	}
	props["fill"] = m.Color
	props["bucket"] = int(m.Bucket)
	props["prediction"] = m.Record.Prediction
	props["tooltip"] = FormatTooltip(m.Record)
	return props
}
