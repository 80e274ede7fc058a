package timeline

import (
	"fmt"
	"path/filepath"

	"stillcut/timecode"
)

// Preview prints the first maxItems timeline entries to stdout.
func Preview(entries []Entry, maxItems int) {
	fmt.Printf("Timeline preview (showing first %d items):\n", maxItems)

	shown := entries
	if len(shown) > maxItems {
		shown = shown[:maxItems]
	}

	for i, entry := range shown {
		duration := 0.0
		start, err1 := timecode.ParseTimestamp(entry.Start)
		end, err2 := timecode.ParseTimestamp(entry.End)
		if err1 == nil && err2 == nil {
			duration = end - start
		}

		fmt.Printf("\nEntry %d:\n", i+1)
		fmt.Printf("  Time: %s -> %s (%.1fs)\n", entry.Start, entry.End, duration)
		fmt.Printf("  Images: %d\n", len(entry.Images))
		for _, imagePath := range entry.Images {
			fmt.Printf("    - %s\n", filepath.Base(imagePath))
		}
	}

	if len(entries) > maxItems {
		fmt.Printf("\n... and %d more entries\n", len(entries)-maxItems)
	}
}
