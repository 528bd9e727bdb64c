package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/config"
	"github.com/sells-group/wavemap/internal/wave"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Build wave-labelled training rows from county case counts",
	Long:  "Downloads cumulative county case counts, derives daily deaths, cases and a 7-day average, labels upcoming waves, and writes one CSV block per county as JSON.",
	RunE:  runPreprocess,
}

func init() {
	preprocessCmd.Flags().String("source", "", "case count CSV location (default from config)")
	preprocessCmd.Flags().String("out", "", "output JSON file (default from config)")
	rootCmd.AddCommand(preprocessCmd)
}

func runPreprocess(cmd *cobra.Command, _ []string) error {
	source, _ := cmd.Flags().GetString("source")
	out, _ := cmd.Flags().GetString("out")
	if source != "" {
		cfg.Preprocess.SourceURL = source
	}
	if out == "" {
		out = cfg.Preprocess.Output
	}

	if err := cfg.Validate(config.ModePreprocess); err != nil {
		return err
	}

	opts := wave.DefaultOptions()
	opts.Epsilon = cfg.Preprocess.Epsilon
	opts.MinDays = cfg.Preprocess.MinDays

	f, err := os.Create(out)
	if err != nil {
		return eris.Wrapf(err, "preprocess: create %s", out)
	}

	sum, err := wave.Run(cmd.Context(), newSource(), cfg.Preprocess.SourceURL, f, opts)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = eris.Wrapf(closeErr, "preprocess: close %s", out)
	}
	if err != nil {
		_ = os.Remove(out)
		return err
	}

	zap.L().Info("wrote training rows",
		zap.String("out", out),
		zap.Int("counties", sum.Counties),
		zap.Int("rows", sum.Rows),
	)
	return nil
}
