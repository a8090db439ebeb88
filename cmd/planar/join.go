package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planar-kit/planar/pkg/delim"
)

var joinDelimiter string

// joinCmd implements 'planar join'.
var joinCmd = &cobra.Command{
	Use:   "join [strings...]",
	Short: "Join strings with a delimiter placed between elements",
	Example: `  planar join --delimiter "," a b c
  planar join A`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sep := cfg.Delimiter
		if cmd.Flags().Changed("delimiter") {
			sep = joinDelimiter
		}

		fmt.Println(delim.Join(sep, args))
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVarP(&joinDelimiter, "delimiter", "d", "", "delimiter placed between elements")
	rootCmd.AddCommand(joinCmd)
}
