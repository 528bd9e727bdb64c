package choropleth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/wavemap/internal/model"
)

func square(x, y float64) *geom.MultiPolygon {
	return geom.NewMultiPolygonFlat(geom.XY,
		[]float64{x, y, x + 1, y, x + 1, y + 1, x, y + 1, x, y},
		[][]int{{10}},
	)
}

func TestRender_JoinsAndFallsBack(t *testing.T) {
	records := []model.PredictionRecord{
		{FIPS: "55025", County: "Dane", State: "WI", Prediction: 0.92},
	}
	features := []model.GeoFeature{
		{ID: "55025", Properties: map[string]any{"NAME": "Dane"}, Geometry: square(-89.8, 42.8)},
		{ID: "55027", Properties: map[string]any{"NAME": "Dodge"}, Geometry: square(-89.0, 43.2)},
	}

	c := NewClassifier(records, DefaultScale())
	fc := c.Render(features, RenderOptions{})
	require.Len(t, fc.Features, 2)

	dane := fc.Features[0].Properties
	assert.Equal(t, "#800026", dane["fill"])
	assert.Equal(t, 7, dane["bucket"])
	assert.Equal(t, 0.92, dane["prediction"])
	assert.Equal(t, "Dane, WI<br/>92.00% chance of wave", dane["tooltip"])
	assert.Equal(t, "Dane", dane["NAME"])

	dodge := fc.Features[1].Properties
	assert.Equal(t, NoDataFill, dodge["fill"])
	assert.Nil(t, dodge["bucket"])
	assert.Equal(t, "", dodge["tooltip"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string         `json:"id"`
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "55025", decoded.Features[0].ID)
	assert.Equal(t, "MultiPolygon", decoded.Features[0].Geometry.Type)
	assert.Equal(t, float64(0), decoded.Features[1].Properties["fill"])
}

func TestRender_StateFilter(t *testing.T) {
	features := []model.GeoFeature{
		{ID: "55025", Geometry: square(0, 0)},
		{ID: "17031", Geometry: square(1, 1)},
		{ID: "55079", Geometry: square(2, 2)},
	}
	c := NewClassifier(nil, DefaultScale())

	fc := c.Render(features, RenderOptions{State: "55"})
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "55025", fc.Features[0].ID)
	assert.Equal(t, "55079", fc.Features[1].ID)

	assert.Empty(t, c.Render(features, RenderOptions{State: "6"}).Features)
}
