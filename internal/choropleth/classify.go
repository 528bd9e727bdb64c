package choropleth

import "github.com/sells-group/wavemap/internal/model"

// Match is a record joined to its bucket and fill color.
type Match struct {
	Record model.PredictionRecord
	Bucket Bucket
	Color  string
}

// Classifier joins identifiers to prediction records through an index built
// once from the loaded record set.
type Classifier struct {
	scale   Scale
	records []model.PredictionRecord
	byFIPS  map[string]int
}

// NewClassifier indexes records by FIPS. Records with an empty FIPS stay in
// the record set but are left out of the index; on duplicates the first
// record wins.
func NewClassifier(records []model.PredictionRecord, scale Scale) *Classifier {
	byFIPS := make(map[string]int, len(records))
	for i, r := range records {
		if !r.HasFIPS() {
			continue
		}
		if _, dup := byFIPS[r.FIPS]; dup {
			continue
		}
		byFIPS[r.FIPS] = i
	}
	return &Classifier{
		scale:   scale,
		records: records,
		byFIPS:  byFIPS,
	}
}

// Scale returns the classifier's color scale.
func (c *Classifier) Scale() Scale {
	return c.scale
}

// Records returns the full record set, including records without a FIPS.
func (c *Classifier) Records() []model.PredictionRecord {
	return c.records
}

// Indexed returns the number of joinable identifiers.
func (c *Classifier) Indexed() int {
	return len(c.byFIPS)
}

// Lookup returns the record for fips. An empty or unknown identifier is not
// an error; it reports false.
func (c *Classifier) Lookup(fips string) (model.PredictionRecord, bool) {
	if fips == "" {
		return model.PredictionRecord{}, false
	}
	i, ok := c.byFIPS[fips]
	if !ok {
		return model.PredictionRecord{}, false
	}
	return c.records[i], true
}

// Classify joins fips to its record and classifies the record's prediction.
func (c *Classifier) Classify(fips string) (Match, bool) {
	r, ok := c.Lookup(fips)
	if !ok {
		return Match{}, false
	}
	return Match{
		Record: r,
		Bucket: c.scale.Bucket(r.Prediction),
		Color:  c.scale.Fill(r.Prediction),
	}, true
}
