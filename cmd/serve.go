package cmd

import (
	"github.com/spf13/cobra"

	"stillcut/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive timeline builder web app",
	Long: `Serve starts an HTTP server where SRT files can be uploaded, images
searched and selected per split, and the finished timeline exported as
JSON and FCPXML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return web.NewServer(cfg, logger).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
