package fcp

import (
	"fmt"
	"os"
	"sort"

	"stillcut/timecode"
	"stillcut/timeline"
)

// GapThresholdFrames is the largest inter-clip gap that gets absorbed
// into the preceding clip instead of becoming an explicit gap element.
// 12 frames is half a second at 24fps.
const GapThresholdFrames = 12

// Clip is one candidate still-image clip in seconds-based time. The span
// may shrink, or the clip may be dropped, during overlap resolution.
type Clip struct {
	Start     float64
	End       float64
	ImagePath string
	AssetID   string
}

// Name returns the clip's display name, the image file's stem.
func (c Clip) Name() string {
	return imageStem(c.ImagePath)
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// FrameClip is a clip quantized to integer frames. EndFrame is inclusive
// of the last occupied frame.
type FrameClip struct {
	StartFrame int
	EndFrame   int
	AssetID    string
	Name       string
}

// MaterializeClips flattens timeline entries into candidate clips,
// dividing each entry's span evenly among its images in order. Entries
// with no images produce no clips. Images whose paths cannot be resolved
// to a file URL are warned about and skipped, along with their clips.
func MaterializeClips(entries []timeline.Entry, registry *AssetRegistry) ([]Clip, error) {
	var clips []Clip

	for _, entry := range entries {
		if len(entry.Images) == 0 {
			continue
		}

		startSeconds, err := timecode.ParseTimestamp(entry.Start)
		if err != nil {
			return nil, fmt.Errorf("entry start: %w", err)
		}
		endSeconds, err := timecode.ParseTimestamp(entry.End)
		if err != nil {
			return nil, fmt.Errorf("entry end: %w", err)
		}

		imageDuration := (endSeconds - startSeconds) / float64(len(entry.Images))

		for i, imagePath := range entry.Images {
			assetID, err := registry.Register(imagePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: omitting asset %q: %v\n", imagePath, err)
				continue
			}

			clipStart := startSeconds + float64(i)*imageDuration
			clips = append(clips, Clip{
				Start:     clipStart,
				End:       clipStart + imageDuration,
				ImagePath: imagePath,
				AssetID:   assetID,
			})
		}
	}

	return clips, nil
}

// ResolveOverlaps orders clips by end time and removes temporal overlaps
// by trimming each clip's start against the last retained clip, dropping
// clips that end up with zero or negative duration. Sorting by end time
// keeps the retained end monotonic, so trimming holds transitively.
func ResolveOverlaps(clips []Clip) []Clip {
	sorted := make([]Clip, len(clips))
	copy(sorted, clips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].End < sorted[j].End
	})

	var resolved []Clip
	lastKept := -1

	for _, clip := range sorted {
		if lastKept >= 0 && clip.Start < resolved[lastKept].End {
			clip.Start = resolved[lastKept].End
			if clip.Start >= clip.End {
				continue
			}
		}
		resolved = append(resolved, clip)
		lastKept++
	}

	return resolved
}

// Quantize converts resolved clips to integer frame boundaries by
// truncation at the given frame rate.
func Quantize(clips []Clip, fps int) []FrameClip {
	frameClips := make([]FrameClip, 0, len(clips))
	for _, clip := range clips {
		frameClips = append(frameClips, FrameClip{
			StartFrame: timecode.SecondsToFrames(clip.Start, fps),
			EndFrame:   timecode.SecondsToFrames(clip.End, fps),
			AssetID:    clip.AssetID,
			Name:       clip.Name(),
		})
	}
	return frameClips
}

// BridgeGaps extends a clip forward to touch its successor when the gap
// between them is small, leaving larger gaps to be rendered explicitly.
// The gap computation keeps the inclusive-end +1 convention of the
// interchange format; zero and negative gaps are left alone since
// overlaps were already resolved in seconds.
func BridgeGaps(frameClips []FrameClip) []FrameClip {
	var processed []FrameClip

	for i, clip := range frameClips {
		if i > 0 {
			previous := &processed[len(processed)-1]
			gap := clip.StartFrame - previous.EndFrame + 1
			if gap > 0 && gap <= GapThresholdFrames {
				previous.EndFrame = clip.StartFrame
			}
		}
		processed = append(processed, clip)
	}

	return processed
}
