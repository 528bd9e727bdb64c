package dataset

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wavemap/internal/fetcher"
	"github.com/sells-group/wavemap/internal/fips"
	"github.com/sells-group/wavemap/internal/model"
)

// LoadPredictions reads the JSON array of prediction records at loc.
func LoadPredictions(ctx context.Context, src fetcher.Fetcher, loc string, splitNYC bool) ([]model.PredictionRecord, error) {
	body, err := src.Download(ctx, loc)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: fetch predictions %s", loc)
	}
	defer body.Close() //nolint:errcheck

	records, err := fetcher.ReadJSONArray[model.PredictionRecord](ctx, body)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: decode predictions %s", loc)
	}

	for i := range records {
		records[i].FIPS = fips.Normalize(records[i].FIPS)
	}
	if splitNYC {
		records = SplitNYC(records)
	}
	return records, nil
}

// SplitNYC replaces each combined New York City record with one record per
// borough carrying the same prediction. Other records keep their order.
func SplitNYC(records []model.PredictionRecord) []model.PredictionRecord {
	out := make([]model.PredictionRecord, 0, len(records))
	for _, r := range records {
		if !fips.IsNYC(r.County, r.State) {
			out = append(out, r)
			continue
		}
		for _, b := range fips.NYCBoroughs {
			out = append(out, model.PredictionRecord{
				FIPS:       b.FIPS,
				County:     b.County,
				State:      r.State,
				Prediction: r.Prediction,
			})
		}
	}
	return out
}
