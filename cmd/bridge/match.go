package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
)

var (
	matchWind    float64
	matchZone    string
	matchMinTemp float64
	matchMaxTemp float64
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find the catalogued location closest to the given design parameters",
	Example: `  bridge match --wind 44 --zone III
  bridge match --min-temp 2 --max-temp 45`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, closeCatalog, err := openCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer closeCatalog() //nolint:errcheck

		return runMatch(ctx, cmd.OutOrStdout(), cat, queryFromFlags(cmd))
	},
}

// queryFromFlags marks only the flags given on the command line as present.
func queryFromFlags(cmd *cobra.Command) matcher.Query {
	var q matcher.Query
	flags := cmd.Flags()
	if flags.Changed("wind") {
		q.WindSpeed = &matchWind
	}
	if flags.Changed("zone") {
		q.SeismicZone = matchZone
	}
	if flags.Changed("min-temp") {
		q.MinTemp = &matchMinTemp
	}
	if flags.Changed("max-temp") {
		q.MaxTemp = &matchMaxTemp
	}
	return q
}

func runMatch(ctx context.Context, w io.Writer, cat catalog.Provider, q matcher.Query) error {
	locations, err := cat.ListAllLocations(ctx)
	if err != nil {
		return err
	}
	res, err := matcher.FindClosest(q, locations)
	if err != nil {
		return err
	}
	zap.L().Debug("match complete",
		zap.Bool("found", res.Found),
		zap.Float64("confidence", res.Confidence),
		zap.Int("catalog_size", len(locations)),
	)
	return writeJSON(w, matcher.NewResponse(res))
}

func init() {
	matchCmd.Flags().Float64Var(&matchWind, "wind", 0, "basic wind speed, m/s")
	matchCmd.Flags().StringVar(&matchZone, "zone", "", "seismic zone (I to V)")
	matchCmd.Flags().Float64Var(&matchMinTemp, "min-temp", 0, "minimum shade air temperature, °C")
	matchCmd.Flags().Float64Var(&matchMaxTemp, "max-temp", 0, "maximum shade air temperature, °C")
	rootCmd.AddCommand(matchCmd)
}
