package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillcut/timecode"
)

func TestSplitTextShortSegment(t *testing.T) {
	splits, err := SplitText("A quick test", "00:00:00,000", "00:00:03,000", 0)
	require.NoError(t, err)
	require.Len(t, splits, 1)

	assert.Equal(t, "A quick test", splits[0].Text)
	assert.Equal(t, "00:00:00,000", splits[0].Start)
	assert.Equal(t, "00:00:03,000", splits[0].End)
	assert.Equal(t, 0, splits[0].SegmentIndex)
	assert.Equal(t, 0, splits[0].SplitIndex)
	assert.Equal(t, []string{"quick", "test"}, splits[0].Keywords)
}

func TestSplitTextAppleScenario(t *testing.T) {
	splits, err := SplitText("I like to eat an apple", "00:00:00,000", "00:00:06,000", 0)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "I like to", splits[0].Text)
	assert.Equal(t, "00:00:00,000", splits[0].Start)
	assert.Equal(t, "00:00:03,000", splits[0].End)

	assert.Equal(t, "eat an apple", splits[1].Text)
	assert.Equal(t, "00:00:03,000", splits[1].Start)
	assert.Equal(t, "00:00:06,000", splits[1].End)

	assert.Equal(t, []string{"like"}, splits[0].Keywords)
	assert.Equal(t, []string{"eat", "apple"}, splits[1].Keywords)
}

func TestSplitTextFewerWordsThanSplits(t *testing.T) {
	// 9 seconds asks for 3 splits, but only two words exist: the split
	// count and the time division both follow the word count.
	splits, err := SplitText("hello world", "00:00:00,000", "00:00:09,000", 2)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "hello", splits[0].Text)
	assert.Equal(t, "world", splits[1].Text)
	assert.Equal(t, "00:00:00,000", splits[0].Start)
	assert.Equal(t, "00:00:04,500", splits[0].End)
	assert.Equal(t, "00:00:04,500", splits[1].Start)
	assert.Equal(t, "00:00:09,000", splits[1].End)

	assert.Equal(t, 2, splits[0].SegmentIndex)
	assert.Equal(t, 0, splits[0].SplitIndex)
	assert.Equal(t, 1, splits[1].SplitIndex)
}

func TestSplitTextPreservesAccentedText(t *testing.T) {
	splits, err := SplitText("Le café était très délicieux ce matin",
		"00:00:00,000", "00:00:06,000", 0)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "Le café était très", splits[0].Text)
	assert.Equal(t, "délicieux ce matin", splits[1].Text)

	assert.Equal(t, []string{"café", "était", "très"}, splits[0].Keywords)
	assert.Equal(t, []string{"délicieux", "matin"}, splits[1].Keywords)
}

func TestSplitTextSentenceBoundaries(t *testing.T) {
	splits, err := SplitText("One two. Three four. Five six. Seven eight nine ten.",
		"00:00:00,000", "00:00:06,000", 0)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	// Four sentence units distributed over two chunks.
	assert.Equal(t, "One two Three four", splits[0].Text)
	assert.Equal(t, "Five six Seven eight nine ten.", splits[1].Text)
}

func TestSplitTextConjunctionBoundaries(t *testing.T) {
	splits, err := SplitText("the sun rises and the moon sets over the quiet hills",
		"00:00:00,000", "00:00:06,000", 0)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "the sun rises", splits[0].Text)
	assert.Equal(t, "the moon sets over the quiet hills", splits[1].Text)
}

func TestSplitTextTilesSpanExactly(t *testing.T) {
	splits, err := SplitText(
		"alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu",
		"00:00:01,250", "00:00:11,750", 0)
	require.NoError(t, err)
	require.Len(t, splits, 4)

	assert.Equal(t, "00:00:01,250", splits[0].Start)
	assert.Equal(t, "00:00:11,750", splits[len(splits)-1].End)

	for i := 1; i < len(splits); i++ {
		assert.Equal(t, splits[i-1].End, splits[i].Start, "split %d should touch its predecessor", i)
	}

	// No gaps, no overlaps in seconds either.
	for i := range splits {
		start, err := splits[i].StartSeconds()
		require.NoError(t, err)
		end, err := splits[i].EndSeconds()
		require.NoError(t, err)
		assert.Less(t, start, end)
	}
}

func TestSplitTextSplitCountFromDuration(t *testing.T) {
	tests := []struct {
		end    string
		splits int
	}{
		{"00:00:02,000", 1},
		{"00:00:03,000", 1},
		{"00:00:03,001", 2},
		{"00:00:06,000", 2},
		{"00:00:07,500", 3},
		{"00:00:12,000", 4},
	}

	longText := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen"
	for _, tt := range tests {
		splits, err := SplitText(longText, "00:00:00,000", tt.end, 0)
		require.NoError(t, err)
		assert.Len(t, splits, tt.splits, "duration up to %s", tt.end)
	}
}

func TestSplitTextInvalidSpan(t *testing.T) {
	_, err := SplitText("text", "00:00:05,000", "00:00:05,000", 0)
	assert.ErrorIs(t, err, ErrInvalidSplitCount)

	_, err = SplitText("text", "00:00:05,000", "00:00:04,000", 0)
	assert.ErrorIs(t, err, ErrInvalidSplitCount)
}

func TestSplitTextMalformedTimestamp(t *testing.T) {
	_, err := SplitText("text", "garbage", "00:00:05,000", 0)
	assert.ErrorIs(t, err, timecode.ErrMalformedTimestamp)

	_, err = SplitText("text", "00:00:00,000", "garbage", 0)
	assert.ErrorIs(t, err, timecode.ErrMalformedTimestamp)
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("The quick brown fox jumps over the lazy dog, the fox!")
	assert.Equal(t, []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}, keywords)
}

func TestExtractKeywordsStripsHTMLAndPunctuation(t *testing.T) {
	keywords := ExtractKeywords("<i>Amazing</i> mountains, rivers... & valleys!")
	assert.Equal(t, []string{"amazing", "mountains", "rivers", "valleys"}, keywords)
}

func TestExtractKeywordsUnicode(t *testing.T) {
	keywords := ExtractKeywords("Über schöne Berge fließt ein Fluß")
	assert.Equal(t, []string{"über", "schöne", "berge", "fließt", "ein", "fluß"}, keywords)

	// Two-rune words are dropped by rune count, not byte length.
	assert.Empty(t, ExtractKeywords("çà là"))
}

func TestExtractKeywordsEmpty(t *testing.T) {
	assert.Empty(t, ExtractKeywords("I am to be"))
	assert.Empty(t, ExtractKeywords(""))
}
