// Package timeline assembles text splits and their image assignments into
// the JSON timeline consumed by the FCPXML export.
package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"stillcut/splitter"
	"stillcut/srt"
)

// ErrNoSegments is returned when a timeline build is attempted with no
// subtitle segments.
var ErrNoSegments = errors.New("no subtitle segments found")

// Entry is one externally visible timeline unit, corresponding 1:1 with a
// text split. Images may be empty, which leaves that span as a gap.
type Entry struct {
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Images []string `json:"image"`
}

// SplitKey identifies a split by its parent segment index and its
// position within that segment.
type SplitKey struct {
	Segment int
	Split   int
}

// Assignments maps split identity to the ordered image paths chosen for
// it. Absent entries mean zero images.
type Assignments map[SplitKey][]string

// SplitSegments runs the duration splitter over every subtitle segment in
// order, returning the flat split list.
func SplitSegments(segments []srt.Segment) ([]splitter.Split, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	var splits []splitter.Split
	for i, segment := range segments {
		segmentSplits, err := splitter.SplitText(segment.Text, segment.Start, segment.End, i)
		if err != nil {
			return nil, err
		}
		splits = append(splits, segmentSplits...)
	}

	return splits, nil
}

// Assemble pairs each split with its assigned images, in split order.
func Assemble(splits []splitter.Split, assignments Assignments) []Entry {
	entries := make([]Entry, 0, len(splits))
	for _, split := range splits {
		images := assignments[SplitKey{Segment: split.SegmentIndex, Split: split.SplitIndex}]
		if images == nil {
			images = []string{}
		}
		entries = append(entries, Entry{
			Start:  split.Start,
			End:    split.End,
			Images: images,
		})
	}
	return entries
}

// Save writes the timeline to a JSON file.
func Save(entries []Entry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}
	return nil
}

// Load reads a timeline back from a JSON file.
func Load(inputPath string) ([]Entry, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse timeline: %w", err)
	}
	return entries, nil
}
