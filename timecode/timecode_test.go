package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		seconds float64
	}{
		{"00:00:00,000", 0},
		{"00:00:03,000", 3},
		{"00:00:06,000", 6},
		{"00:01:30,500", 90.5},
		{"01:00:00,001", 3600.001},
		{"00:00:02.350", 2.35},
		{"00:00:02,5", 2.5},
		{"00:00:02,35", 2.35},
		{"00:00:02", 2},
		{"10:59:59,999", 39599.999},
	}

	for _, tt := range tests {
		seconds, err := ParseTimestamp(tt.input)
		assert.NoError(t, err, tt.input)
		assert.InDelta(t, tt.seconds, seconds, 0.0005, tt.input)
	}
}

func TestParseTimestampMalformed(t *testing.T) {
	inputs := []string{
		"",
		"not a time",
		"0:00:00,000",
		"00:0:00,000",
		"00:00:0,000",
		"00:00:00,0000",
		"00:00:00;000",
		"00:00",
		"00:00:00,000 extra",
	}

	for _, input := range inputs {
		_, err := ParseTimestamp(input)
		assert.ErrorIs(t, err, ErrMalformedTimestamp, input)
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:00,000", FormatTimestamp(0))
	assert.Equal(t, "00:00:03,000", FormatTimestamp(3))
	assert.Equal(t, "00:00:04,500", FormatTimestamp(4.5))
	assert.Equal(t, "00:01:30,500", FormatTimestamp(90.5))
	assert.Equal(t, "01:00:00,001", FormatTimestamp(3600.001))
	assert.Equal(t, "10:59:59,999", FormatTimestamp(39599.999))
}

func TestTimestampRoundTrip(t *testing.T) {
	inputs := []string{
		"00:00:00,000",
		"00:00:02,350",
		"00:12:34,567",
		"01:02:03,004",
		"23:59:59,999",
		"00:00:02.350",
	}

	for _, input := range inputs {
		first, err := ParseTimestamp(input)
		assert.NoError(t, err, input)

		second, err := ParseTimestamp(FormatTimestamp(first))
		assert.NoError(t, err, input)
		assert.InDelta(t, first, second, 0.0005, input)
	}
}

func TestSecondsToFramesTruncates(t *testing.T) {
	assert.Equal(t, 0, SecondsToFrames(0, 24))
	assert.Equal(t, 72, SecondsToFrames(3, 24))
	assert.Equal(t, 144, SecondsToFrames(6, 24))
	assert.Equal(t, 60, SecondsToFrames(2.5, 24))
	// Sub-frame time is discarded, never rounded up.
	assert.Equal(t, 23, SecondsToFrames(0.999, 24))
	assert.Equal(t, 71, SecondsToFrames(2.999, 24))
	assert.Equal(t, 30, SecondsToFrames(1, 30))
}
