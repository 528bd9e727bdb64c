package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/wavemap/internal/model"
)

func TestAutocomplete_ExcludesEmptyFIPS(t *testing.T) {
	entries := Autocomplete(testRecords(), AutocompleteOptions{})

	assert.Equal(t, []Entry{
		{Value: "55025", Label: "Dane, WI"},
		{Value: "55079", Label: "Milwaukee, WI"},
		{Value: "55025", Label: "Dane (duplicate), WI"},
		{Value: "55999", Label: "WI"},
	}, entries)
}

func TestAutocomplete_Query(t *testing.T) {
	records := []model.PredictionRecord{
		{FIPS: "35013", County: "Doña Ana", State: "New Mexico"},
		{FIPS: "55025", County: "Dane", State: "Wisconsin"},
		{FIPS: "55079", County: "Milwaukee", State: "Wisconsin"},
	}

	got := Autocomplete(records, AutocompleteOptions{Query: "DONA"})
	assert.Equal(t, []Entry{{Value: "35013", Label: "Doña Ana, New Mexico"}}, got)

	got = Autocomplete(records, AutocompleteOptions{Query: "550"})
	assert.Len(t, got, 2)

	got = Autocomplete(records, AutocompleteOptions{Query: "wisconsin", Limit: 1})
	assert.Equal(t, []Entry{{Value: "55025", Label: "Dane, Wisconsin"}}, got)

	assert.Empty(t, Autocomplete(records, AutocompleteOptions{Query: "texas"}))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "dona ana", fold("Doña Ana"))
	assert.Equal(t, "", fold(""))
}
