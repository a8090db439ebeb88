package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/planar-kit/planar/pkg/figure"
)

var (
	circleDiameter float64
	squareSide     float64
)

// describeCmd is the parent command for figure description operations.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a plane figure from a single dimension",
}

// circleCmd implements 'planar describe circle'.
var circleCmd = &cobra.Command{
	Use:   "circle",
	Short: "Describe a circle from its diameter",
	Example: `  planar describe circle --diameter 40
  planar describe circle -d 2.5 --config planar.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDescribe("Circle", circleDiameter)
	},
}

// squareCmd implements 'planar describe square'.
var squareCmd = &cobra.Command{
	Use:   "square",
	Short: "Describe a square from its side length",
	Example: `  planar describe square --side 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDescribe("Square", squareSide)
	},
}

func init() {
	circleCmd.Flags().Float64VarP(&circleDiameter, "diameter", "d", 0, "circle diameter")
	_ = circleCmd.MarkFlagRequired("diameter")

	squareCmd.Flags().Float64VarP(&squareSide, "side", "s", 0, "square side length")
	_ = squareCmd.MarkFlagRequired("side")

	describeCmd.AddCommand(circleCmd)
	describeCmd.AddCommand(squareCmd)
	rootCmd.AddCommand(describeCmd)
}

// runDescribe dispatches through the figure registry and prints the
// resulting description.
func runDescribe(kind string, dim float64) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	desc, err := figure.DefaultRegistry().Create(kind, dim)
	if err != nil {
		return err
	}

	printDescriptions(os.Stdout, cfg.Precision, desc)
	return nil
}

// printDescriptions writes descriptions as an aligned table.
func printDescriptions(out io.Writer, precision int, descs ...figure.Description) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAREA\tPERIMETER")
	for _, d := range descs {
		fmt.Fprintf(w, "%s\t%.*f\t%.*f\n", d.Name, precision, d.Area, precision, d.Perimeter)
	}
	w.Flush()
}
