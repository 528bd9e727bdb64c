package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV row reader.
type CSVOptions struct {
	Delimiter rune // default ','
	HasHeader bool // if true, the first row goes to OnHeader instead of the row callback
	OnHeader  func(header []string) error
	TrimSpace bool
}

// EachCSVRow reads r row by row and calls fn for each data row. Rows may have
// a variable number of fields. Reading stops at the first error returned by
// a callback.
func EachCSVRow(ctx context.Context, r io.Reader, opts CSVOptions, fn func(row []string) error) error {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if first && opts.HasHeader {
			first = false
			if opts.OnHeader != nil {
				if err := opts.OnHeader(record); err != nil {
					return err
				}
			}
			continue
		}
		first = false

		if err := fn(record); err != nil {
			return err
		}
	}
}
