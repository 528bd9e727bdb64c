package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/wavemap/internal/choropleth"
	"github.com/sells-group/wavemap/internal/config"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List counties available for lookup",
	RunE:  runCounties,
}

func init() {
	countiesCmd.Flags().String("query", "", "filter by county name or FIPS prefix")
	countiesCmd.Flags().Int("limit", 0, "maximum number of counties (0 for all)")
	rootCmd.AddCommand(countiesCmd)
}

func runCounties(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")

	ds, err := initDataset(cmd.Context(), config.ModeData)
	if err != nil {
		return err
	}

	entries := ds.Autocomplete(choropleth.AutocompleteOptions{Query: query, Limit: limit})

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		mark := "  "
		if m, ok := ds.Classifier.Classify(e.Value); ok {
			mark = swatch(m.Color)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, e.Value, e.Label)
	}
	return tw.Flush()
}
