// Package tiger reads Census cartographic boundary shapefiles into county
// features.
package tiger

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/fips"
	"github.com/sells-group/wavemap/internal/model"
)

// Attributes copied from the DBF into feature properties when present.
var keepAttributes = []string{"GEOID", "STATEFP", "COUNTYFP", "NAME", "LSAD", "ALAND", "AWATER"}

// ReadCounties reads every polygon record of a county shapefile. The GEOID
// attribute names the feature; files without one fall back to STATEFP and
// COUNTYFP.
func ReadCounties(shpPath string) ([]model.GeoFeature, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "tiger: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}
	attr := func(name string) string {
		idx, ok := fieldIdx[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
	}

	_, hasGEOID := fieldIdx["GEOID"]
	_, hasState := fieldIdx["STATEFP"]
	_, hasCounty := fieldIdx["COUNTYFP"]
	if !hasGEOID && !(hasState && hasCounty) {
		return nil, eris.Errorf("tiger: %s has neither GEOID nor STATEFP/COUNTYFP fields", shpPath)
	}

	var (
		features []model.GeoFeature
		skipped  int
	)
	for reader.Next() {
		_, shape := reader.Shape()

		props := make(map[string]any, len(keepAttributes))
		for _, name := range keepAttributes {
			if v := attr(name); v != "" {
				props[name] = v
			}
		}

		id := attr("GEOID")
		if id == "" {
			id = fips.Combine(attr("STATEFP"), attr("COUNTYFP"))
			props["GEOID"] = id
		}

		g := ShapeToGeom(shape)
		if g == nil || id == "" {
			skipped++
			continue
		}
		features = append(features, model.GeoFeature{
			ID:         id,
			Properties: props,
			Geometry:   g,
		})
	}

	if skipped > 0 {
		zap.L().Debug("tiger: skipped shapefile records",
			zap.String("path", shpPath),
			zap.Int("skipped", skipped),
		)
	}
	return features, nil
}
