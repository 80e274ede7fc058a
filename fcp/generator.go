package fcp

import (
	"encoding/xml"
	"fmt"
	"os"

	"stillcut/timecode"
	"stillcut/timeline"
)

const (
	formatID     = "r0"
	formatName   = "FFVideoFormatRateUndefined"
	formatWidth  = "1920"
	formatHeight = "1080"
)

// GenerateTimeline serializes timeline entries into a complete FCPXML
// document: one asset per unique image and a flat spine of video and gap
// elements with frame-based offsets and durations.
func GenerateTimeline(entries []timeline.Entry, title string, fps int) ([]byte, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be a positive integer, got %d", fps)
	}

	registry := NewAssetRegistry()

	clips, err := MaterializeClips(entries, registry)
	if err != nil {
		return nil, err
	}
	frameClips := BridgeGaps(Quantize(ResolveOverlaps(clips), fps))

	totalFrames := 0
	if len(entries) > 0 {
		endSeconds, err := timecode.ParseTimestamp(entries[len(entries)-1].End)
		if err != nil {
			return nil, fmt.Errorf("timeline end: %w", err)
		}
		totalFrames = timecode.SecondsToFrames(endSeconds, fps)
	}

	spine := buildSpine(frameClips, fps)

	doc := FCPXML{
		Version: "1.13",
		Resources: Resources{
			Formats: []Format{{
				ID:            formatID,
				Name:          formatName,
				FrameDuration: fmt.Sprintf("1/%ds", fps),
				Width:         formatWidth,
				Height:        formatHeight,
			}},
			Assets: registry.Assets(),
		},
		Library: Library{
			Events: []Event{{
				Name: title,
				Projects: []Project{{
					Name: title,
					Sequences: []Sequence{{
						Format:   formatID,
						Duration: fmt.Sprintf("%d/%ds", totalFrames, fps),
						TCStart:  "0/1s",
						TCFormat: "NDF",
						Spine:    spine,
					}},
				}},
			}},
		},
	}

	output, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal FCPXML: %w", err)
	}

	return []byte(xml.Header + "<!DOCTYPE fcpxml>\n" + string(output)), nil
}

// buildSpine walks the frame clips in order with a running cursor,
// emitting an explicit gap wherever a clip starts past the cursor.
// Clip durations are inclusive of the end frame.
func buildSpine(frameClips []FrameClip, fps int) Spine {
	var spine Spine
	cursor := 0

	for _, clip := range frameClips {
		if clip.StartFrame > cursor {
			gapFrames := clip.StartFrame - cursor
			spine.Gaps = append(spine.Gaps, Gap{
				Name:     "Gap",
				Offset:   fmt.Sprintf("%d/%ds", cursor, fps),
				Start:    "0/1s",
				Duration: fmt.Sprintf("%d/%ds", gapFrames, fps),
			})
			cursor = clip.StartFrame
		}

		durationFrames := clip.EndFrame - clip.StartFrame + 1
		spine.Videos = append(spine.Videos, Video{
			Ref:      clip.AssetID,
			Offset:   fmt.Sprintf("%d/%ds", cursor, fps),
			Name:     clip.Name,
			Start:    "0/1s",
			Duration: fmt.Sprintf("%d/%ds", durationFrames, fps),
			Enabled:  "1",
			AdjustTransform: &AdjustTransform{
				Scale:    "1 1",
				Position: "0 0",
				Anchor:   "0 0",
			},
		})
		cursor += durationFrames
	}

	return spine
}

// WriteTimeline generates the FCPXML document and writes it to disk.
func WriteTimeline(entries []timeline.Entry, title string, fps int, outputPath string) error {
	content, err := GenerateTimeline(entries, title, fps)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, content, 0644)
}
