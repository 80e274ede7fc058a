package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stillcut/fcp"
	"stillcut/timeline"
)

var exportCmd = &cobra.Command{
	Use:   "export <timeline.json> <video-title>",
	Short: "Export a JSON timeline to FCPXML",
	Long: `Export converts a previously generated JSON timeline into an FCPXML
document for import into editing software.

Each entry's time range is divided evenly among its images, overlapping
clips are trimmed, and small gaps between clips are bridged.

Examples:
  stillcut export timeline.json "My Movie"
  stillcut export timeline.json "My Movie" -o movie.fcpxml`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output FCPXML path (default: <title>_timeline.fcpxml)")
}

func runExport(cmd *cobra.Command, args []string) error {
	timelinePath := args[0]
	videoTitle := args[1]

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = videoTitle + "_timeline.fcpxml"
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".fcpxml") {
		outputPath += ".fcpxml"
	}

	entries, err := timeline.Load(timelinePath)
	if err != nil {
		return err
	}

	if err := fcp.WriteTimeline(entries, videoTitle, cfg.FrameRate, outputPath); err != nil {
		return fmt.Errorf("error generating FCPXML: %w", err)
	}

	logger.Infow("FCPXML written",
		"input", timelinePath, "output", outputPath, "entries", len(entries), "fps", cfg.FrameRate)
	return nil
}
