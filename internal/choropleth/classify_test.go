package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wavemap/internal/model"
)

func testRecords() []model.PredictionRecord {
	return []model.PredictionRecord{
		{FIPS: "55025", County: "Dane", State: "WI", Prediction: 0.92},
		{FIPS: "", County: "Kansas City", State: "Missouri", Prediction: 0.31},
		{FIPS: "55079", County: "Milwaukee", State: "WI", Prediction: 0.4567},
		{FIPS: "55025", County: "Dane (duplicate)", State: "WI", Prediction: 0.01},
		{FIPS: "55999", County: "Unknown", State: "WI", Prediction: 0.2},
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	m, ok := c.Classify("55079")
	require.True(t, ok)
	assert.Equal(t, "Milwaukee", m.Record.County)
	assert.Equal(t, Bucket(3), m.Bucket)
	assert.Equal(t, "#fd8d3c", m.Color)
}

func TestClassifier_FirstRecordWins(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	m, ok := c.Classify("55025")
	require.True(t, ok)
	assert.Equal(t, "Dane", m.Record.County)
	assert.Equal(t, 3, c.Indexed())
}

func TestClassifier_NoMatch(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	for _, id := range []string{"", "55027", "00000", "Kansas City"} {
		m, ok := c.Classify(id)
		assert.False(t, ok, "id=%q", id)
		assert.Equal(t, Match{}, m)
	}
}

func TestClassifier_KeepsRecordsWithoutFIPS(t *testing.T) {
	records := testRecords()
	c := NewClassifier(records, DefaultScale())

	assert.Len(t, c.Records(), len(records))
	assert.Contains(t, c.Records(), records[1])
}

func TestClassifier_EmptyRecordSet(t *testing.T) {
	c := NewClassifier(nil, DefaultScale())

	_, ok := c.Lookup("55025")
	assert.False(t, ok)
	assert.Zero(t, c.Indexed())
}
