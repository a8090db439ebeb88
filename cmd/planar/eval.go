package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/planar-kit/planar/pkg/engine"
	"github.com/planar-kit/planar/pkg/sheet"
)

// evalCmd implements 'planar eval'.
var evalCmd = &cobra.Command{
	Use:   "eval FILE",
	Short: "Evaluate a figure script and print the resulting sheet",
	Example: `  planar eval design.psc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s, err := evalFile(args[0], time.Duration(cfg.Timeout))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tDIMENSION\tAREA\tPERIMETER")
		for _, e := range s.Figures() {
			fmt.Fprintf(w, "%s\t%s\t%g\t%.*f\t%.*f\n",
				e.Name, e.Kind, e.Dimension,
				cfg.Precision, e.Desc.Area,
				cfg.Precision, e.Desc.Perimeter)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

// evalFile evaluates a script file into a validated sheet. Eval errors and
// validation findings are logged; blocking findings fail the command.
func evalFile(path string, timeout time.Duration) (*sheet.Sheet, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	eng := engine.NewEngine()
	eng.SetTimeout(timeout)
	s, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		// Fatal error (panic, timeout).
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Error().Int("line", e.Line).Str("file", path).Msg(e.Message)
		}
		return nil, fmt.Errorf("%s: %d evaluation error(s)", path, len(evalErrs))
	}

	res := sheet.Validate(s)
	for _, warn := range res.Warnings {
		log.Warn().Msg(warn.Error())
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Error().Msg(e.Error())
		}
		return nil, fmt.Errorf("%s: sheet failed validation with %d error(s)", path, len(res.Errors))
	}

	log.Debug().Int("figures", s.Count()).Str("file", path).Msg("sheet evaluated")
	return s, nil
}
