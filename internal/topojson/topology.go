// Package topojson decodes TopoJSON topologies into go-geom features.
//
// Only what county boundary files use is supported: quantized or absolute
// arcs, and Point, MultiPoint, LineString, MultiLineString, Polygon,
// MultiPolygon and GeometryCollection objects.
package topojson

import (
	"encoding/json"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wavemap/internal/fips"
)

// Topology is a decoded TopoJSON document.
type Topology struct {
	Type      string                     `json:"type"`
	Transform *Transform                 `json:"transform,omitempty"`
	Arcs      [][][]float64              `json:"arcs"`
	Objects   map[string]json.RawMessage `json:"objects"`

	// arcs holds every arc as absolute flat XY coordinates.
	arcs [][]float64
}

// Transform dequantizes delta-encoded arc positions.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Geometry is a TopoJSON geometry object. Arcs and Coordinates are kept raw
// because their nesting depends on Type.
type Geometry struct {
	Type        string          `json:"type"`
	ID          json.RawMessage `json:"id,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
	Arcs        json.RawMessage `json:"arcs,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []Geometry      `json:"geometries,omitempty"`
}

// Decode reads a topology and resolves its arcs.
func Decode(r io.Reader) (*Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, eris.Wrap(err, "topojson: decode")
	}
	if t.Type != "Topology" {
		return nil, eris.Errorf("topojson: expected type Topology, got %q", t.Type)
	}
	t.arcs = make([][]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		t.arcs[i] = t.decodeArc(arc)
	}
	return &t, nil
}

// ObjectNames returns the topology's object names in sorted order.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Object returns the named object.
func (t *Topology) Object(name string) (Geometry, error) {
	raw, ok := t.Objects[name]
	if !ok {
		return Geometry{}, eris.Errorf("topojson: object %q not found (have %v)", name, t.ObjectNames())
	}
	var g Geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return Geometry{}, eris.Wrapf(err, "topojson: decode object %q", name)
	}
	return g, nil
}

// decodeArc turns one arc's positions into absolute flat XY coordinates.
// Quantized topologies store the first position absolutely and the rest as
// deltas from the previous position.
func (t *Topology) decodeArc(positions [][]float64) []float64 {
	flat := make([]float64, 0, 2*len(positions))
	var x, y float64
	for _, p := range positions {
		if len(p) < 2 {
			continue
		}
		if t.Transform == nil {
			flat = append(flat, p[0], p[1])
			continue
		}
		x += p[0]
		y += p[1]
		flat = append(flat, t.point(x, y)...)
	}
	return flat
}

// point dequantizes a single position.
func (t *Topology) point(x, y float64) []float64 {
	if t.Transform == nil {
		return []float64{x, y}
	}
	return []float64{
		x*t.Transform.Scale[0] + t.Transform.Translate[0],
		y*t.Transform.Scale[1] + t.Transform.Translate[1],
	}
}

// arc returns arc i as flat coordinates. A negative index ~i refers to arc i
// traversed in reverse.
func (t *Topology) arc(i int) ([]float64, error) {
	reverse := i < 0
	if reverse {
		i = ^i
	}
	if i >= len(t.arcs) {
		return nil, eris.Errorf("topojson: arc %d out of range (%d arcs)", i, len(t.arcs))
	}
	src := t.arcs[i]
	if !reverse {
		return src, nil
	}
	out := make([]float64, len(src))
	for j := 0; j+1 < len(src); j += 2 {
		k := len(src) - 2 - j
		out[k], out[k+1] = src[j], src[j+1]
	}
	return out, nil
}

// line stitches arcs end to end. Consecutive arcs share an endpoint, which is
// kept once.
func (t *Topology) line(indices []int) ([]float64, error) {
	var flat []float64
	for _, i := range indices {
		a, err := t.arc(i)
		if err != nil {
			return nil, err
		}
		if len(flat) >= 2 {
			flat = flat[:len(flat)-2]
		}
		flat = append(flat, a...)
	}
	return flat, nil
}

// ring stitches a closed ring, padding degenerate rings to four positions.
func (t *Topology) ring(indices []int) ([]float64, error) {
	flat, err := t.line(indices)
	if err != nil {
		return nil, err
	}
	if len(flat) < 2 {
		return nil, eris.New("topojson: empty ring")
	}
	for len(flat) < 8 {
		flat = append(flat, flat[0], flat[1])
	}
	return flat, nil
}

// idString renders a string or numeric identifier. Whole numbers that fit a
// county code are zero-padded to 5 digits; strings get a stripped leading
// zero back.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return fips.Normalize(id)
	case float64:
		if id >= 0 && id < 1e5 && id == math.Trunc(id) {
			return fips.Format(int(id), 5)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		if n, err := id.Int64(); err == nil && n >= 0 && n < 1e5 {
			return fips.Format(int(n), 5)
		}
		return id.String()
	default:
		return ""
	}
}
