// Command planar evaluates figure scripts and describes plane figures.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/planar-kit/planar/pkg/config"
)

var (
	configPath string
	verbose    bool
)

// rootCmd is the base command for the planar CLI.
var rootCmd = &cobra.Command{
	Use:   "planar",
	Short: "Plane figure description toolkit",
	Long: `Planar computes named geometric descriptions (area, perimeter) of plane
figures, joins delimited strings, and evaluates figure scripts into
validated sheets with numeric cross-checking.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig returns the file-backed config when --config is set, and the
// defaults otherwise.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	log.Debug().Str("path", configPath).Msg("loaded config")
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
