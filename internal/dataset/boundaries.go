package dataset

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/config"
	"github.com/sells-group/wavemap/internal/fetcher"
	"github.com/sells-group/wavemap/internal/fips"
	"github.com/sells-group/wavemap/internal/model"
	"github.com/sells-group/wavemap/internal/tiger"
	"github.com/sells-group/wavemap/internal/topojson"
)

// DetectFormat returns the boundary format for loc. An explicit format wins;
// otherwise the extension decides, with .json read as TopoJSON.
func DetectFormat(loc, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	switch fetcher.Ext(loc) {
	case ".json", ".topojson":
		return config.FormatTopoJSON, nil
	case ".geojson":
		return config.FormatGeoJSON, nil
	case ".zip", ".shp":
		return config.FormatShapefile, nil
	default:
		return "", eris.Errorf("dataset: cannot infer boundary format of %s; set data.boundary_format", loc)
	}
}

// LoadBoundaries reads the county boundaries in whichever format opts names.
func LoadBoundaries(ctx context.Context, src fetcher.Fetcher, opts Options) ([]model.GeoFeature, error) {
	format, err := DetectFormat(opts.Boundaries, opts.BoundaryFormat)
	if err != nil {
		return nil, err
	}
	zap.L().With(zap.String("component", "dataset")).Debug("loading boundaries",
		zap.String("source", opts.Boundaries),
		zap.String("format", format),
	)

	switch format {
	case config.FormatShapefile:
		features, err := tiger.Load(ctx, src, opts.Boundaries, opts.TempDir)
		if err != nil {
			return nil, eris.Wrap(err, "dataset: load shapefile boundaries")
		}
		return features, nil
	case config.FormatTopoJSON:
		return loadTopoJSON(ctx, src, opts.Boundaries, opts.BoundaryObject)
	case config.FormatGeoJSON:
		return loadGeoJSON(ctx, src, opts.Boundaries)
	default:
		return nil, eris.Errorf("dataset: unknown boundary format %q", format)
	}
}

func loadTopoJSON(ctx context.Context, src fetcher.Fetcher, loc, object string) ([]model.GeoFeature, error) {
	body, err := src.Download(ctx, loc)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: fetch boundaries %s", loc)
	}
	defer body.Close() //nolint:errcheck

	topo, err := topojson.Decode(body)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: decode topology %s", loc)
	}
	features, err := topo.Features(object)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: object %q (have %v)", object, topo.ObjectNames())
	}
	return features, nil
}

func loadGeoJSON(ctx context.Context, src fetcher.Fetcher, loc string) ([]model.GeoFeature, error) {
	body, err := src.Download(ctx, loc)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: fetch boundaries %s", loc)
	}
	defer body.Close() //nolint:errcheck

	var fc geojson.FeatureCollection
	if err := json.NewDecoder(body).Decode(&fc); err != nil {
		return nil, eris.Wrapf(err, "dataset: decode feature collection %s", loc)
	}

	features := make([]model.GeoFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		id := f.ID
		if geoid := topojson.PropertyID(f.Properties); geoid != "" {
			id = geoid
		}
		features = append(features, model.GeoFeature{
			ID:         fips.Normalize(id),
			Properties: f.Properties,
			Geometry:   f.Geometry,
		})
	}
	return features, nil
}
