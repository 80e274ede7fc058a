// Package splitter partitions subtitle segments into sub-intervals based
// on duration, dividing the text at natural boundaries.
package splitter

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"stillcut/timecode"
)

// targetSplitSeconds is the nominal length of one split; a segment is
// divided into ceil(duration/target) parts.
const targetSplitSeconds = 3.0

// ErrInvalidSplitCount reports a non-positive segment duration, which
// would produce zero splits. It indicates bad upstream timing data.
var ErrInvalidSplitCount = errors.New("invalid split count")

// Split is one sub-interval of a subtitle segment.
type Split struct {
	Text         string
	Start        string
	End          string
	Keywords     []string
	SegmentIndex int
	SplitIndex   int
}

// StartSeconds converts the split's start timestamp to seconds.
func (s Split) StartSeconds() (float64, error) {
	return timecode.ParseTimestamp(s.Start)
}

// EndSeconds converts the split's end timestamp to seconds.
func (s Split) EndSeconds() (float64, error) {
	return timecode.ParseTimestamp(s.End)
}

// SplitText divides a subtitle's time range into equal sub-intervals and
// partitions its text among them. Segments of three seconds or less come
// back as a single split. The final sub-interval always ends at the
// segment's original end time, absorbing floating-point drift.
func SplitText(text, start, end string, segmentIndex int) ([]Split, error) {
	startSeconds, err := timecode.ParseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("segment %d start: %w", segmentIndex, err)
	}
	endSeconds, err := timecode.ParseTimestamp(end)
	if err != nil {
		return nil, fmt.Errorf("segment %d end: %w", segmentIndex, err)
	}

	duration := endSeconds - startSeconds
	if duration <= 0 {
		return nil, fmt.Errorf("%w: segment %d spans %s to %s", ErrInvalidSplitCount, segmentIndex, start, end)
	}

	numSplits := int(math.Ceil(duration / targetSplitSeconds))
	if numSplits <= 1 {
		return []Split{{
			Text:         strings.TrimSpace(text),
			Start:        start,
			End:          end,
			Keywords:     ExtractKeywords(text),
			SegmentIndex: segmentIndex,
			SplitIndex:   0,
		}}, nil
	}

	chunks := splitIntoChunks(text, numSplits)

	// The chunk count can come in under numSplits when the text has fewer
	// words than requested splits; time division follows the chunk count.
	count := len(chunks)
	splitDuration := duration / float64(count)

	splits := make([]Split, 0, count)
	for i, chunk := range chunks {
		splitStart := timecode.FormatTimestamp(startSeconds + float64(i)*splitDuration)
		splitEnd := timecode.FormatTimestamp(startSeconds + float64(i+1)*splitDuration)
		if i == 0 {
			splitStart = start
		}
		if i == count-1 {
			splitEnd = end
		}

		splits = append(splits, Split{
			Text:         strings.TrimSpace(chunk),
			Start:        splitStart,
			End:          splitEnd,
			Keywords:     ExtractKeywords(chunk),
			SegmentIndex: segmentIndex,
			SplitIndex:   i,
		})
	}

	return splits, nil
}

// splitIntoChunks partitions text into at most numChunks pieces. When the
// text has no more words than chunks, every word stands alone. Otherwise
// sentence-like units are distributed evenly, falling back to plain word
// distribution when too few units exist.
func splitIntoChunks(text string, numChunks int) []string {
	if numChunks <= 1 {
		return []string{text}
	}

	words := tokenize(text)
	if len(words) <= numChunks {
		return words
	}

	sentences := splitIntoSentences(text)
	if len(sentences) >= numChunks {
		return distributeEvenly(sentences, numChunks)
	}

	return distributeEvenly(words, numChunks)
}

// Boundary patterns applied as a cascade of increasingly aggressive splits.
var sentencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[.!?]+\s+`),
	regexp.MustCompile(`,\s+(?:and|or|but|so|yet|for|nor)\s+`),
	regexp.MustCompile(`\s+(?:and|or|but|so|yet|for|nor)\s+`),
	regexp.MustCompile(`,\s+`),
}

// splitIntoSentences breaks text into sentence-like units at punctuation
// and coordinating conjunctions.
func splitIntoSentences(text string) []string {
	sentences := []string{text}

	for _, pattern := range sentencePatterns {
		var next []string
		for _, sentence := range sentences {
			for _, part := range pattern.Split(sentence, -1) {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					next = append(next, trimmed)
				}
			}
		}
		sentences = next
	}

	return sentences
}

// distributeEvenly groups units into numChunks chunks, with extra units
// going to the earliest chunks.
func distributeEvenly(units []string, numChunks int) []string {
	base := len(units) / numChunks
	remainder := len(units) % numChunks

	chunks := make([]string, 0, numChunks)
	start := 0
	for i := 0; i < numChunks; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks = append(chunks, strings.Join(units[start:start+size], " "))
		start += size
	}

	return chunks
}
