package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/wavemap/internal/config"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup [fips]",
	Short: "Show the wave prediction for one county",
	Long:  "Looks up a county by its 5-digit FIPS code. Prints nothing when the code is blank or unknown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil
	}

	ds, err := initDataset(cmd.Context(), config.ModeData)
	if err != nil {
		return err
	}

	res, ok := ds.Classifier.Resolve(args[0])
	if !ok {
		return nil
	}

	out := cmd.OutOrStdout()
	if lookupJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprintf(out, "%s %s, %s\n   %s%% chance of wave\n", swatch(res.Color), res.County, res.State, res.Percent)
	return err
}
