package choropleth

import (
	"strings"

	"github.com/sells-group/wavemap/internal/fips"
)

// Result is a lookup answer, formatted for both the map page and the terminal.
type Result struct {
	FIPS       string  `json:"fips"`
	County     string  `json:"county"`
	State      string  `json:"state"`
	Prediction float64 `json:"prediction"`
	Percent    string  `json:"percent"`
	Label      string  `json:"label"`
	Bucket     int     `json:"bucket"`
	Color      string  `json:"color"`
	Tooltip    string  `json:"tooltip"`
	HTML       string  `json:"html"`
}

// NewResult formats a match.
func NewResult(m Match) Result {
	return Result{
		FIPS:       m.Record.FIPS,
		County:     m.Record.County,
		State:      m.Record.State,
		Prediction: m.Record.Prediction,
		Percent:    Percent(m.Record.Prediction),
		Label:      Label(m.Record),
		Bucket:     int(m.Bucket),
		Color:      m.Color,
		Tooltip:    FormatTooltip(m.Record),
		HTML:       TooltipHTML(m),
	}
}

// Resolve looks up user input. Surrounding space is ignored and a 4-digit
// code gets its leading zero back. Blank input, anything that is not a
// 5-digit county code, and unknown codes report false.
func (c *Classifier) Resolve(input string) (Result, bool) {
	code := fips.Normalize(strings.TrimSpace(input))
	if !fips.Valid(code) {
		return Result{}, false
	}
	m, ok := c.Classify(code)
	if !ok {
		return Result{}, false
	}
	return NewResult(m), true
}
