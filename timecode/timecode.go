// Package timecode converts between SRT-style timestamps, seconds, and
// integer frame counts at a fixed frame rate.
package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultFrameRate is the frame rate used when no rate is configured.
const DefaultFrameRate = 24

// ErrMalformedTimestamp is returned when a timestamp string does not match
// HH:MM:SS,mmm or HH:MM:SS.mmm.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Accepts both the SRT comma form and the VTT dot form. The fractional part
// is optional and may be one to three digits.
var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:[,.](\d{1,3}))?$`)

// ParseTimestamp converts "HH:MM:SS,mmm" or "HH:MM:SS.mmm" to seconds.
// A missing fractional component is treated as zero milliseconds.
func ParseTimestamp(text string) (float64, error) {
	matches := timestampRegex.FindStringSubmatch(text)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])

	millis := 0
	if matches[4] != "" {
		// Right-pad so ",5" means 500ms, not 5ms.
		frac := matches[4]
		for len(frac) < 3 {
			frac += "0"
		}
		millis, _ = strconv.Atoi(frac)
	}

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000.0, nil
}

// FormatTimestamp converts seconds to "HH:MM:SS,mmm" with zero padding.
// ParseTimestamp(FormatTimestamp(x)) == x to millisecond resolution.
func FormatTimestamp(seconds float64) string {
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3600000
	totalMillis -= hours * 3600000
	minutes := totalMillis / 60000
	totalMillis -= minutes * 60000
	secs := totalMillis / 1000
	millis := totalMillis - secs*1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// SecondsToFrames converts seconds to a frame count at the given rate.
// Truncates rather than rounds, so sub-frame time is discarded.
func SecondsToFrames(seconds float64, fps int) int {
	return int(seconds * float64(fps))
}
