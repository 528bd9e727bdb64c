package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wavemap/internal/model"
)

func TestResolve(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	res, ok := c.Resolve(" 55079 ")
	require.True(t, ok)
	assert.Equal(t, Result{
		FIPS:       "55079",
		County:     "Milwaukee",
		State:      "WI",
		Prediction: 0.4567,
		Percent:    "45.67",
		Label:      "Milwaukee, WI",
		Bucket:     3,
		Color:      "#fd8d3c",
		Tooltip:    "Milwaukee, WI<br/>45.67% chance of wave",
		HTML:       `<span style="color: #fd8d3c;">&#x2588;&#x2588;&nbsp;</span>Milwaukee, WI<br/>45.67% chance of wave`,
	}, res)
}

func TestResolve_RestoresLeadingZero(t *testing.T) {
	records := []model.PredictionRecord{{FIPS: "01001", County: "Autauga", State: "Alabama", Prediction: 1}}
	c := NewClassifier(records, DefaultScale())

	res, ok := c.Resolve("1001")
	require.True(t, ok)
	assert.Equal(t, "01001", res.FIPS)
	assert.Equal(t, 8, res.Bucket)
	assert.Equal(t, "#800026", res.Color)
}

func TestResolve_NoMatch(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	for _, in := range []string{"", "   ", "55027", "Dane"} {
		res, ok := c.Resolve(in)
		assert.False(t, ok, "input=%q", in)
		assert.Equal(t, Result{}, res)
	}
}

func TestResolve_UnknownCountyLabel(t *testing.T) {
	c := NewClassifier(testRecords(), DefaultScale())

	res, ok := c.Resolve("55999")
	require.True(t, ok)
	assert.Equal(t, "WI", res.Label)
	assert.Equal(t, "Unknown, WI<br/>20.00% chance of wave", res.Tooltip)
}

func TestResolve_RejectsNonCountyCodes(t *testing.T) {
	records := []model.PredictionRecord{
		{FIPS: "55025", County: "Dane", State: "WI", Prediction: 0.92},
		{FIPS: "550", County: "Short", State: "WI", Prediction: 0.5},
	}
	c := NewClassifier(records, DefaultScale())

	for _, input := range []string{"", "   ", "550", "5502a", "550251", "WI"} {
		_, ok := c.Resolve(input)
		assert.False(t, ok, "input %q", input)
	}

	_, ok := c.Classify("550")
	assert.True(t, ok)
}
