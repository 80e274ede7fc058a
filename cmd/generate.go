package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stillcut/search"
	"stillcut/splitter"
	"stillcut/srt"
	"stillcut/stats"
	"stillcut/timeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate <srt-file> <video-title>",
	Short: "Generate an image timeline from an SRT file",
	Long: `Generate parses an SRT subtitle file, splits each subtitle based on
its duration, extracts keywords per split, searches for matching images,
and writes a JSON timeline.

Text splitting is duration-driven: ceil(duration / 3 seconds) splits per
subtitle. "I like to eat an apple" over 6 seconds becomes two splits,
"I like to" (0-3s) and "eat an apple" (3-6s).

Examples:
  stillcut generate movie.srt "My Movie" --api-key YOUR_BRAVE_KEY
  stillcut generate movie.srt "My Movie" --images-per-split 3 --preview
  stillcut generate movie.srt "My Movie" --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("api-key", "k", "", "Brave Search API key (or set BRAVE_API_KEY env var)")
	generateCmd.Flags().StringP("output", "o", "timeline.json", "Output JSON timeline path")
	generateCmd.Flags().Int("images-per-split", 0, "Images to download per split (default from config)")
	generateCmd.Flags().Bool("preview", false, "Show timeline preview after generation")
	generateCmd.Flags().Bool("stats", false, "Show generation statistics")
	generateCmd.Flags().Bool("dry-run", false, "Parse and split without downloading images")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	srtPath := args[0]
	videoTitle := args[1]
	ctx := context.Background()

	if _, err := os.Stat(srtPath); os.IsNotExist(err) {
		return fmt.Errorf("SRT file not found: %s", srtPath)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	outputPath, _ := cmd.Flags().GetString("output")
	imagesPerSplit, _ := cmd.Flags().GetInt("images-per-split")
	showPreview, _ := cmd.Flags().GetBool("preview")
	showStats, _ := cmd.Flags().GetBool("stats")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if apiKey == "" {
		apiKey = os.Getenv("BRAVE_API_KEY")
	}
	if apiKey == "" {
		apiKey = cfg.BraveAPIKey
	}
	if imagesPerSplit <= 0 {
		imagesPerSplit = cfg.ImagesPerSplit
	}

	segments, err := srt.ParseFile(srtPath)
	if err != nil {
		return err
	}

	splits, err := timeline.SplitSegments(segments)
	if err != nil {
		return err
	}

	tracker := stats.NewTracker()
	tracker.SetSegmentsCount(len(segments))
	tracker.SetSplitsCount(len(splits))

	logger.Infow("Split subtitles",
		"input", srtPath, "segments", len(segments), "splits", len(splits))

	assignments := timeline.Assignments{}
	if !dryRun {
		var searcher search.Searcher
		if apiKey != "" {
			searcher = search.NewClient(apiKey, time.Duration(cfg.RateLimitDelay))
		} else {
			logger.Infow("No API key configured, using browser search fallback")
			searcher = search.NewBrowserSearcher()
		}

		downloader := search.NewDownloader(tracker)
		for _, split := range splits {
			assignments[splitKey(split)] = downloader.DownloadForSplit(
				ctx, searcher, split, videoTitle, imagesPerSplit,
				search.GenerateQueries(split.Keywords), cfg.ImageDir)
		}
	}

	entries := timeline.Assemble(splits, assignments)
	if err := timeline.Save(entries, outputPath); err != nil {
		return err
	}
	logger.Infow("Timeline saved", "path", outputPath, "entries", len(entries))

	if showPreview {
		timeline.Preview(entries, 10)
	}
	if showStats {
		summary := tracker.Snapshot()
		fmt.Printf("\nStatistics:\n")
		fmt.Printf("  Total segments: %d\n", summary.TotalSegments)
		fmt.Printf("  Total splits: %d\n", summary.TotalSplits)
		fmt.Printf("  Images downloaded: %d\n", summary.ImagesDownloaded)
		fmt.Printf("  Images failed: %d\n", summary.ImagesFailed)
		fmt.Printf("  Success rate: %.1f%%\n", summary.SuccessRate)
	}

	return nil
}

func splitKey(split splitter.Split) timeline.SplitKey {
	return timeline.SplitKey{Segment: split.SegmentIndex, Split: split.SplitIndex}
}
