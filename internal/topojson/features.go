package topojson

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/model"
)

// IDProperty is the property that carries a county's identifier.
const IDProperty = "GEOID"

// Features converts the named object into features. Collections are
// flattened; geometries without a type are skipped.
func (t *Topology) Features(object string) ([]model.GeoFeature, error) {
	obj, err := t.Object(object)
	if err != nil {
		return nil, err
	}

	var (
		out     []model.GeoFeature
		skipped int
	)
	var walk func(g Geometry) error
	walk = func(g Geometry) error {
		switch g.Type {
		case "GeometryCollection":
			for _, child := range g.Geometries {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		case "":
			skipped++
			return nil
		}

		shape, err := t.Geometry(g)
		if err != nil {
			return eris.Wrapf(err, "topojson: feature %s", featureID(g))
		}
		out = append(out, model.GeoFeature{
			ID:         featureID(g),
			Properties: g.Properties,
			Geometry:   shape,
		})
		return nil
	}
	if err := walk(obj); err != nil {
		return nil, err
	}

	if skipped > 0 {
		zap.L().Debug("topojson: skipped null geometries",
			zap.String("object", object),
			zap.Int("skipped", skipped),
		)
	}
	return out, nil
}

// PropertyID returns the GEOID property as a county code, or "" when it is
// missing. Numeric values are zero-padded like numeric geometry ids.
func PropertyID(props map[string]any) string {
	v, ok := props[IDProperty]
	if !ok {
		return ""
	}
	return idString(v)
}

// featureID prefers the GEOID property and falls back to the geometry id.
func featureID(g Geometry) string {
	if id := PropertyID(g.Properties); id != "" {
		return id
	}
	if len(g.ID) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(g.ID, &v); err != nil {
		return ""
	}
	return idString(v)
}

// Geometry converts a single non-collection geometry.
func (t *Topology) Geometry(g Geometry) (geom.T, error) {
	switch g.Type {
	case "Point":
		var p []float64
		if err := json.Unmarshal(g.Coordinates, &p); err != nil || len(p) < 2 {
			return nil, eris.New("topojson: bad point coordinates")
		}
		return geom.NewPointFlat(geom.XY, t.point(p[0], p[1])), nil

	case "MultiPoint":
		var ps [][]float64
		if err := json.Unmarshal(g.Coordinates, &ps); err != nil {
			return nil, eris.Wrap(err, "topojson: bad multipoint coordinates")
		}
		flat := make([]float64, 0, 2*len(ps))
		for _, p := range ps {
			if len(p) < 2 {
				return nil, eris.New("topojson: bad multipoint position")
			}
			flat = append(flat, t.point(p[0], p[1])...)
		}
		return geom.NewMultiPointFlat(geom.XY, flat), nil

	case "LineString":
		var arcs []int
		if err := json.Unmarshal(g.Arcs, &arcs); err != nil {
			return nil, eris.Wrap(err, "topojson: bad linestring arcs")
		}
		flat, err := t.line(arcs)
		if err != nil {
			return nil, err
		}
		return geom.NewLineStringFlat(geom.XY, flat), nil

	case "MultiLineString":
		var lines [][]int
		if err := json.Unmarshal(g.Arcs, &lines); err != nil {
			return nil, eris.Wrap(err, "topojson: bad multilinestring arcs")
		}
		var (
			flat []float64
			ends []int
		)
		for _, l := range lines {
			part, err := t.line(l)
			if err != nil {
				return nil, err
			}
			flat = append(flat, part...)
			ends = append(ends, len(flat))
		}
		return geom.NewMultiLineStringFlat(geom.XY, flat, ends), nil

	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, eris.Wrap(err, "topojson: bad polygon arcs")
		}
		flat, ends, err := t.polygon(rings, nil)
		if err != nil {
			return nil, err
		}
		return geom.NewPolygonFlat(geom.XY, flat, ends), nil

	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return nil, eris.Wrap(err, "topojson: bad multipolygon arcs")
		}
		var (
			flat  []float64
			endss [][]int
		)
		for _, rings := range polys {
			var ends []int
			var err error
			flat, ends, err = t.polygon(rings, flat)
			if err != nil {
				return nil, err
			}
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(geom.XY, flat, endss), nil

	default:
		return nil, eris.Errorf("topojson: unsupported geometry type %q", g.Type)
	}
}

// polygon appends the polygon's rings to flat and returns the ring end
// offsets into the grown slice.
func (t *Topology) polygon(rings [][]int, flat []float64) ([]float64, []int, error) {
	ends := make([]int, 0, len(rings))
	for _, r := range rings {
		coords, err := t.ring(r)
		if err != nil {
			return nil, nil, err
		}
		flat = append(flat, coords...)
		ends = append(ends, len(flat))
	}
	return flat, ends, nil
}
