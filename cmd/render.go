package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/choropleth"
	"github.com/sells-group/wavemap/internal/config"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the joined county FeatureCollection as GeoJSON",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("state", "", "only include counties in this 2-digit state FIPS")
	renderCmd.Flags().String("out", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	state, _ := cmd.Flags().GetString("state")
	out, _ := cmd.Flags().GetString("out")

	ds, err := initDataset(cmd.Context(), config.ModeData)
	if err != nil {
		return err
	}

	fc := ds.Render(choropleth.RenderOptions{State: state})
	body, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "render: encode feature collection")
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(append(body, '\n'))
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return eris.Wrapf(err, "render: write %s", out)
	}
	zap.L().Info("rendered counties",
		zap.String("out", out),
		zap.Int("features", len(fc.Features)),
	)
	return nil
}
