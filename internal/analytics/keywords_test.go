package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	titles := []string{
		"fyp viral dance",
		"#fyp trending now!!!",
	}

	report := ExtractKeywords(titles, 20, 3)
	assert.Equal(t, 6, report.TotalWords)
	assert.Equal(t, 5, report.UniqueWords)

	require.NotEmpty(t, report.Keywords)
	top := report.Keywords[0]
	assert.Equal(t, "fyp", top.Word)
	assert.Equal(t, 2, top.Count)
	assert.InDelta(t, 33.33, top.Percentage, 0.001)
}

func TestExtractKeywords_StopwordsAndLength(t *testing.T) {
	titles := []string{"the cat and the hat ok"}

	report := ExtractKeywords(titles, 20, 3)
	words := make([]string, 0, len(report.Keywords))
	for _, kw := range report.Keywords {
		words = append(words, kw.Word)
	}
	assert.ElementsMatch(t, []string{"cat", "hat"}, words)
}

func TestExtractKeywords_OnlyFixedStopwordsDropped(t *testing.T) {
	report := ExtractKeywords([]string{"just your vibes but not the hat"}, 20, 3)
	words := make([]string, 0, len(report.Keywords))
	for _, kw := range report.Keywords {
		words = append(words, kw.Word)
	}
	assert.ElementsMatch(t, []string{"just", "your", "vibes", "hat"}, words)
}

func TestExtractKeywords_UnicodeWords(t *testing.T) {
	report := ExtractKeywords([]string{"café olé dança — 舞蹈动作!"}, 20, 3)
	words := make([]string, 0, len(report.Keywords))
	for _, kw := range report.Keywords {
		words = append(words, kw.Word)
	}
	assert.ElementsMatch(t, []string{"café", "olé", "dança", "舞蹈动作"}, words)
	assert.Equal(t, 4, report.TotalWords)
}

func TestExtractKeywords_HashtagStripped(t *testing.T) {
	report := ExtractKeywords([]string{"#dance #dance dance"}, 20, 3)
	require.Len(t, report.Keywords, 1)
	assert.Equal(t, "dance", report.Keywords[0].Word)
	assert.Equal(t, 3, report.Keywords[0].Count)
	assert.InDelta(t, 100.0, report.Keywords[0].Percentage, 0.001)
}

func TestExtractKeywords_TiesAlphabetical(t *testing.T) {
	report := ExtractKeywords([]string{"zebra apple"}, 20, 3)
	require.Len(t, report.Keywords, 2)
	assert.Equal(t, "apple", report.Keywords[0].Word)
	assert.Equal(t, "zebra", report.Keywords[1].Word)
}

func TestExtractKeywords_LimitAndEmpty(t *testing.T) {
	report := ExtractKeywords([]string{"one two six ten"}, 2, 3)
	assert.Len(t, report.Keywords, 2)
	assert.Equal(t, 4, report.UniqueWords)

	empty := ExtractKeywords(nil, 0, 0)
	assert.Zero(t, empty.TotalWords)
	assert.Empty(t, empty.Keywords)
}

func TestExtractKeywords_MarkupStripped(t *testing.T) {
	report := ExtractKeywords([]string{"<b>loud</b> &amp; proud"}, 20, 3)
	words := make([]string, 0, len(report.Keywords))
	for _, kw := range report.Keywords {
		words = append(words, kw.Word)
	}
	assert.ElementsMatch(t, []string{"loud", "proud"}, words)
}
