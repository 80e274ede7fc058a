// Package cmd defines the stillcut command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stillcut/config"
	"stillcut/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stillcut",
	Short: "Build still-image FCPXML timelines from SRT subtitles",
	Long: `Stillcut turns time-stamped subtitle text into a sequence of
still-image clips on an editing timeline.

It splits each subtitle by duration, finds images for the resulting
splits, and exports both a JSON timeline and an FCPXML document that
editing software can import.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}
