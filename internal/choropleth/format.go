package choropleth

import (
	"fmt"
	"strconv"

	"github.com/sells-group/wavemap/internal/model"
)

// Percent renders a probability as a percentage with two decimals.
func Percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 2, 64)
}

// FormatTooltip renders the hover text for a record.
func FormatTooltip(r model.PredictionRecord) string {
	return fmt.Sprintf("%s, %s<br/>%s%% chance of wave", r.County, r.State, Percent(r.Prediction))
}

// Label renders the autocomplete label for a record. Rows the source could
// not attribute to a county show the state alone.
func Label(r model.PredictionRecord) string {
	if r.County == model.UnknownCounty {
		return r.State
	}
	return r.County + ", " + r.State
}

// Swatch renders the colored block that prefixes tooltips.
func Swatch(color string) string {
	return fmt.Sprintf(`<span style="color: %s;">&#x2588;&#x2588;&nbsp;</span>`, color)
}

// TooltipHTML renders a match as swatch plus tooltip.
func TooltipHTML(m Match) string {
	return Swatch(m.Color) + FormatTooltip(m.Record)
}
