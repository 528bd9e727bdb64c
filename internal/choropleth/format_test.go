package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/wavemap/internal/model"
)

func TestFormatTooltip(t *testing.T) {
	r := model.PredictionRecord{County: "Dane", State: "WI", Prediction: 0.4567}
	assert.Equal(t, "Dane, WI<br/>45.67% chance of wave", FormatTooltip(r))
}

func TestFormatTooltip_UnknownCountyKeepsName(t *testing.T) {
	r := model.PredictionRecord{County: "Unknown", State: "WI", Prediction: 0.1}
	assert.Equal(t, "Unknown, WI<br/>10.00% chance of wave", FormatTooltip(r))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.00", Percent(0))
	assert.Equal(t, "100.00", Percent(1))
	assert.Equal(t, "92.00", Percent(0.92))
	assert.Equal(t, "12.35", Percent(0.123456))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "WI", Label(model.PredictionRecord{County: "Unknown", State: "WI"}))
	assert.Equal(t, "Dane, WI", Label(model.PredictionRecord{County: "Dane", State: "WI"}))
}

func TestTooltipHTML(t *testing.T) {
	m := Match{
		Record: model.PredictionRecord{County: "Dane", State: "WI", Prediction: 0.92},
		Bucket: 7,
		Color:  "#800026",
	}
	assert.Equal(t,
		`<span style="color: #800026;">&#x2588;&#x2588;&nbsp;</span>Dane, WI<br/>92.00% chance of wave`,
		TooltipHTML(m))
}
