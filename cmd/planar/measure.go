package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/planar-kit/planar/pkg/kernel/sdfx"
	"github.com/planar-kit/planar/pkg/measure"
)

var measureCells int

// measureCmd implements 'planar measure'.
var measureCmd = &cobra.Command{
	Use:   "measure FILE",
	Short: "Numerically cross-check a script's figures against their measures",
	Long: `Evaluate a figure script, build a signed-distance profile for every
figure, and estimate each area by grid sampling. The sampled area is
reported next to the analytic one together with their relative deviation.`,
	Example: `  planar measure design.psc
  planar measure design.psc --cells 800`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cells := cfg.AreaCells
		if cmd.Flags().Changed("cells") {
			cells = measureCells
		}

		s, err := evalFile(args[0], time.Duration(cfg.Timeout))
		if err != nil {
			return err
		}

		reports, err := measure.Measure(s, sdfx.New(), cells)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tAREA\tSAMPLED\tDEVIATION")
		for _, r := range reports {
			fmt.Fprintf(w, "%s\t%s\t%.*f\t%.*f\t%.2f%%\n",
				r.Name, r.Kind,
				cfg.Precision, r.Area,
				cfg.Precision, r.SampledArea,
				r.AreaDeviation()*100)
		}
		w.Flush()
		return nil
	},
}

func init() {
	measureCmd.Flags().IntVar(&measureCells, "cells", 0, "sampling grid resolution")
	rootCmd.AddCommand(measureCmd)
}
