// Package srt parses SRT subtitle files into timed text segments.
package srt

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"stillcut/timecode"
)

// Segment is one parsed subtitle entry. Timestamps stay in their textual
// SRT form; use StartSeconds/EndSeconds for arithmetic.
type Segment struct {
	Index int
	Start string
	End   string
	Text  string
}

// StartSeconds converts the start timestamp to seconds.
func (s Segment) StartSeconds() (float64, error) {
	return timecode.ParseTimestamp(s.Start)
}

// EndSeconds converts the end timestamp to seconds.
func (s Segment) EndSeconds() (float64, error) {
	return timecode.ParseTimestamp(s.End)
}

var (
	blockSplitRegex = regexp.MustCompile(`\n\s*\n`)
	timingRegex     = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)
)

// ParseFile parses an SRT file from disk.
func ParseFile(srtPath string) ([]Segment, error) {
	content, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT file: %w", err)
	}
	return Parse(string(content)), nil
}

// Parse extracts subtitle segments from SRT content. Malformed blocks are
// skipped rather than failing the whole file.
func Parse(content string) []Segment {
	var segments []Segment

	blocks := blockSplitRegex.Split(strings.TrimSpace(content), -1)
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}

		matches := timingRegex.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if matches == nil {
			continue
		}

		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))

		segments = append(segments, Segment{
			Index: index,
			Start: matches[1],
			End:   matches[2],
			Text:  text,
		})
	}

	return segments
}
