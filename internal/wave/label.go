package wave

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Options controls feature extraction and labelling.
type Options struct {
	// Epsilon is the growth ratio of the moving average, Horizon days out,
	// that counts as a wave.
	Epsilon float64
	// MinDays skips counties with fewer days of data.
	MinDays int
	// Window is the moving-average length in days.
	Window int
	// Horizon is how far ahead the label looks.
	Horizon int
}

// DefaultOptions returns the labelling used for the published model.
func DefaultOptions() Options {
	return Options{Epsilon: 1.05, MinDays: 30, Window: 7, Horizon: 14}
}

// Validate checks that the options leave at least one labelled row.
func (o Options) Validate() error {
	if o.Window < 1 || o.Horizon < 1 {
		return eris.Errorf("wave: window (%d) and horizon (%d) must be positive", o.Window, o.Horizon)
	}
	if o.MinDays < o.Window+o.Horizon+1 {
		return eris.Errorf("wave: min_days %d must exceed window+horizon (%d)", o.MinDays, o.Window+o.Horizon)
	}
	if o.Epsilon <= 0 {
		return eris.Errorf("wave: epsilon must be positive, got %v", o.Epsilon)
	}
	return nil
}

// Row is one day of model input: daily new deaths and cases, the moving
// average of new cases and the wave label.
type Row struct {
	NewDeaths int64
	NewCases  int64
	SMA       float64
	Label     int
}

// String renders the row as a CSV line with values rounded to 4 decimals.
func (r Row) String() string {
	return strings.Join([]string{
		strconv.FormatInt(r.NewDeaths, 10),
		strconv.FormatInt(r.NewCases, 10),
		strconv.FormatFloat(math.Round(r.SMA*1e4)/1e4, 'f', -1, 64),
		strconv.Itoa(r.Label),
	}, ",")
}

// Label computes the rows for a series. It reports false when the series is
// shorter than opts.MinDays. The last Horizon rows have no future to compare
// against and are labelled 0.
func Label(s *Series, opts Options) ([]Row, bool) {
	n := len(s.Days)
	if n < opts.MinDays {
		return nil, false
	}

	newDeaths := make([]int64, n)
	newCases := make([]int64, n)
	for i, d := range s.Days {
		if i == 0 {
			newDeaths[i], newCases[i] = d.Deaths, d.Cases
			continue
		}
		newDeaths[i] = max(d.Deaths-s.Days[i-1].Deaths, 0)
		newCases[i] = max(d.Cases-s.Days[i-1].Cases, 0)
	}

	w := opts.Window
	sma := make([]float64, n-w)
	for i := range sma {
		var sum int64
		for _, c := range newCases[i : i+w] {
			sum += c
		}
		sma[i] = float64(sum) / float64(w)
	}

	rows := make([]Row, len(sma))
	for i := range rows {
		rows[i] = Row{
			NewDeaths: newDeaths[i+w],
			NewCases:  newCases[i+w],
			SMA:       sma[i],
		}
		if i+opts.Horizon < len(sma) {
			base := sma[i]
			if base == 0 {
				base = 1
			}
			if sma[i+opts.Horizon]/base > opts.Epsilon {
				rows[i].Label = 1
			}
		}
	}
	return rows, true
}
