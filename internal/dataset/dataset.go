// Package dataset loads the prediction and boundary datasets together and
// holds the immutable, joined view every handler and command reads from.
package dataset

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/wavemap/internal/choropleth"
	"github.com/sells-group/wavemap/internal/config"
	"github.com/sells-group/wavemap/internal/fetcher"
	"github.com/sells-group/wavemap/internal/model"
)

// Options locates the two datasets and how to read them.
type Options struct {
	Predictions    string
	Boundaries     string
	BoundaryFormat string
	BoundaryObject string
	SplitNYC       bool
	TempDir        string
	Scale          choropleth.Scale
}

// OptionsFromConfig builds loader options, including the color scale.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	scale, err := choropleth.NewScale(cfg.Scale.Colors)
	if err != nil {
		return Options{}, eris.Wrap(err, "dataset: build scale")
	}
	return Options{
		Predictions:    cfg.Data.Predictions,
		Boundaries:     cfg.Data.Boundaries,
		BoundaryFormat: cfg.Data.BoundaryFormat,
		BoundaryObject: cfg.Data.BoundaryObject,
		SplitNYC:       cfg.Data.SplitNYC,
		TempDir:        cfg.Data.TempDir,
		Scale:          scale,
	}, nil
}

// Dataset is one loaded generation of predictions and boundaries. It is never
// mutated after Load returns.
type Dataset struct {
	ID         uuid.UUID
	LoadedAt   time.Time
	Records    []model.PredictionRecord
	Features   []model.GeoFeature
	Classifier *choropleth.Classifier
}

// Load fetches both datasets concurrently. If either fails the other is
// cancelled and no dataset is returned.
func Load(ctx context.Context, src fetcher.Fetcher, opts Options) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "dataset"))
	start := time.Now()

	if opts.Scale.Buckets() == 0 {
		opts.Scale = choropleth.DefaultScale()
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}

	var (
		records  []model.PredictionRecord
		features []model.GeoFeature
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = LoadPredictions(gctx, src, opts.Predictions, opts.SplitNYC)
		return err
	})
	g.Go(func() error {
		var err error
		features, err = LoadBoundaries(gctx, src, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("dataset load failed", zap.Error(err))
		return nil, eris.Wrap(err, "dataset: load")
	}

	ds := &Dataset{
		ID:         uuid.New(),
		LoadedAt:   time.Now().UTC(),
		Records:    records,
		Features:   features,
		Classifier: choropleth.NewClassifier(records, opts.Scale),
	}

	log.Info("dataset loaded",
		zap.String("dataset", ds.ID.String()),
		zap.Int("records", len(records)),
		zap.Int("indexed", ds.Classifier.Indexed()),
		zap.Int("features", len(features)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}

// Render joins the boundaries to the predictions.
func (d *Dataset) Render(opts choropleth.RenderOptions) *geojson.FeatureCollection {
	return d.Classifier.Render(d.Features, opts)
}

// Autocomplete lists the dataset's records for search.
func (d *Dataset) Autocomplete(opts choropleth.AutocompleteOptions) []choropleth.Entry {
	return choropleth.Autocomplete(d.Records, opts)
}
