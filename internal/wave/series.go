// Package wave turns cumulative county case counts into the daily feature rows
// and wave labels the prediction model trains on.
package wave

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/wavemap/internal/fetcher"
)

// Day holds one day of cumulative counts.
type Day struct {
	Cases  int64
	Deaths int64
}

// Series is one county's cumulative counts in source order.
type Series struct {
	County string
	State  string
	FIPS   string
	Days   []Day
}

// Key identifies the series as county|state|fips.
func (s *Series) Key() string {
	return s.County + "|" + s.State + "|" + s.FIPS
}

// columns holds the header positions the reader needs.
type columns struct {
	county, state, fips, cases, deaths int
}

func (c columns) max() int {
	return max(c.county, c.state, c.fips, c.cases, c.deaths)
}

func parseHeader(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var c columns
	for name, dst := range map[string]*int{
		"county": &c.county,
		"state":  &c.state,
		"fips":   &c.fips,
		"cases":  &c.cases,
		"deaths": &c.deaths,
	} {
		i, ok := idx[name]
		if !ok {
			return columns{}, eris.Errorf("wave: header missing %q column", name)
		}
		*dst = i
	}
	return c, nil
}

// ReadSeries groups the rows of a us-counties.csv style file by county, in
// first-seen order. A blank deaths value counts as zero.
func ReadSeries(ctx context.Context, r io.Reader) ([]*Series, error) {
	var (
		cols    columns
		order   []*Series
		byKey   = make(map[string]*Series)
		line    = 1
		haveCol bool
	)

	err := fetcher.EachCSVRow(ctx, r, fetcher.CSVOptions{
		HasHeader: true,
		TrimSpace: true,
		OnHeader: func(h []string) error {
			c, err := parseHeader(h)
			if err != nil {
				return err
			}
			cols, haveCol = c, true
			return nil
		},
	}, func(row []string) error {
		line++
		if !haveCol {
			return eris.New("wave: missing header row")
		}
		if len(row) <= cols.max() {
			return eris.Errorf("wave: line %d has %d fields", line, len(row))
		}

		cases, err := parseCount(row[cols.cases])
		if err != nil {
			return eris.Wrapf(err, "wave: line %d cases", line)
		}
		deaths, err := parseCount(row[cols.deaths])
		if err != nil {
			return eris.Wrapf(err, "wave: line %d deaths", line)
		}

		s := &Series{County: row[cols.county], State: row[cols.state], FIPS: row[cols.fips]}
		if existing, ok := byKey[s.Key()]; ok {
			s = existing
		} else {
			byKey[s.Key()] = s
			order = append(order, s)
		}
		s.Days = append(s.Days, Day{Cases: cases, Deaths: deaths})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func parseCount(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(v, 64)
	if ferr != nil {
		return 0, eris.Wrapf(err, "parse %q", v)
	}
	return int64(f), nil
}
