package choropleth

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/wavemap/internal/model"
)

// Entry is one autocomplete option: the FIPS submitted on lookup and the text
// shown to the user.
type Entry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AutocompleteOptions narrows the autocomplete listing.
type AutocompleteOptions struct {
	// Query matches case- and accent-insensitively against the label, or as a
	// prefix of the FIPS code.
	Query string
	// Limit caps the number of entries; 0 means no limit.
	Limit int
}

// Autocomplete lists records with a FIPS in record order.
func Autocomplete(records []model.PredictionRecord, opts AutocompleteOptions) []Entry {
	query := fold(strings.TrimSpace(opts.Query))

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if !r.HasFIPS() {
			continue
		}
		label := Label(r)
		if query != "" && !strings.HasPrefix(r.FIPS, query) && !strings.Contains(fold(label), query) {
			continue
		}
		entries = append(entries, Entry{Value: r.FIPS, Label: label})
		if opts.Limit > 0 && len(entries) == opts.Limit {
			break
		}
	}
	return entries
}

// fold lowercases s and strips combining marks so "Doña Ana" matches "dona".
func fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
