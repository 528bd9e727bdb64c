package wave

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/fetcher"
)

// Summary reports what a preprocessing run produced.
type Summary struct {
	Counties  int
	Skipped   int
	Rows      int
	Positives int
}

// PositiveShare is the fraction of rows labelled as a wave.
func (s Summary) PositiveShare() float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(s.Positives) / float64(s.Rows)
}

// Preprocess reads cumulative counts from r and writes a JSON object mapping
// each county key to its newline-joined rows, keeping first-seen order.
func Preprocess(ctx context.Context, r io.Reader, w io.Writer, opts Options) (Summary, error) {
	var sum Summary
	if err := opts.Validate(); err != nil {
		return sum, err
	}

	series, err := ReadSeries(ctx, r)
	if err != nil {
		return sum, eris.Wrap(err, "wave: read series")
	}

	bw := bufio.NewWriter(w)
	if err := bw.WriteByte('{'); err != nil {
		return sum, eris.Wrap(err, "wave: write output")
	}

	for _, s := range series {
		rows, ok := Label(s, opts)
		if !ok {
			sum.Skipped++
			continue
		}

		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = row.String()
			sum.Positives += row.Label
		}

		key, err := json.Marshal(s.Key())
		if err != nil {
			return sum, eris.Wrapf(err, "wave: encode key %s", s.Key())
		}
		val, err := json.Marshal(strings.Join(lines, "\n"))
		if err != nil {
			return sum, eris.Wrapf(err, "wave: encode rows %s", s.Key())
		}

		if sum.Counties > 0 {
			_ = bw.WriteByte(',')
		}
		_, _ = bw.Write(key)
		_ = bw.WriteByte(':')
		_, _ = bw.Write(val)

		sum.Counties++
		sum.Rows += len(rows)
	}

	if err := bw.WriteByte('}'); err != nil {
		return sum, eris.Wrap(err, "wave: write output")
	}
	if err := bw.Flush(); err != nil {
		return sum, eris.Wrap(err, "wave: flush output")
	}

	zap.L().With(zap.String("component", "wave")).Info("preprocess complete",
		zap.Int("counties", sum.Counties),
		zap.Int("skipped", sum.Skipped),
		zap.Int("rows", sum.Rows),
		zap.Float64("positive_share", sum.PositiveShare()),
	)
	return sum, nil
}

// Run fetches loc through src and preprocesses it into w.
func Run(ctx context.Context, src fetcher.Fetcher, loc string, w io.Writer, opts Options) (Summary, error) {
	body, err := src.Download(ctx, loc)
	if err != nil {
		return Summary{}, eris.Wrapf(err, "wave: fetch %s", loc)
	}
	defer body.Close() //nolint:errcheck

	return Preprocess(ctx, body, w, opts)
}
