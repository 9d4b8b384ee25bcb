package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/geometry"
)

var (
	geomWidth   float64
	geomCurrent geometry.Triple
	geomField   string
	geomValue   float64
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Deck-girder layout solver",
}

var geometryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print the default layout for a carriageway width",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeometryInit(cmd.OutOrStdout(), geomWidth)
	},
}

var geometryEditCmd = &cobra.Command{
	Use:     "edit",
	Short:   "Apply one edit to a layout and print the resolved layout",
	Example: `  bridge geometry edit --width 7.5 --spacing 2.5 --girders 4 --overhang 2.5 --field spacing --value 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := geometry.ParseField(geomField)
		if err != nil {
			return err
		}
		return runGeometryEdit(cmd.OutOrStdout(), geomWidth, geomCurrent, geometry.Edit{Field: field, Value: geomValue})
	},
}

func runGeometryInit(w io.Writer, width float64) error {
	t, err := geometry.Initialize(width)
	if err != nil {
		return err
	}
	return writeJSON(w, geometry.Result{
		CarriagewayWidthM: width,
		OverallWidthM:     geometry.OverallWidth(width),
		Triple:            t,
	})
}

func runGeometryEdit(w io.Writer, width float64, cur geometry.Triple, e geometry.Edit) error {
	overall := geometry.OverallWidth(width)
	next, err := geometry.Apply(overall, cur, e)
	if err != nil {
		return err
	}
	return writeJSON(w, geometry.Result{
		CarriagewayWidthM: width,
		OverallWidthM:     overall,
		Triple:            next,
	})
}

func init() {
	for _, c := range []*cobra.Command{geometryInitCmd, geometryEditCmd} {
		c.Flags().Float64Var(&geomWidth, "width", 0, "carriageway width, m")
		_ = c.MarkFlagRequired("width")
	}
	geometryEditCmd.Flags().Float64Var(&geomCurrent.Spacing, "spacing", geometry.DefaultSpacing, "current girder spacing, m")
	geometryEditCmd.Flags().IntVar(&geomCurrent.Girders, "girders", 0, "current number of girders")
	geometryEditCmd.Flags().Float64Var(&geomCurrent.Overhang, "overhang", 0, "current deck overhang, m")
	geometryEditCmd.Flags().StringVar(&geomField, "field", "", "edited field: spacing, girders or overhang")
	geometryEditCmd.Flags().Float64Var(&geomValue, "value", 0, "new value of the edited field")
	_ = geometryEditCmd.MarkFlagRequired("field")
	_ = geometryEditCmd.MarkFlagRequired("value")

	geometryCmd.AddCommand(geometryInitCmd, geometryEditCmd)
	rootCmd.AddCommand(geometryCmd)
}
