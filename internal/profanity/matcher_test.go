package profanity

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCheck_BlockedWordRedacted(t *testing.T) {
	result := Check("This is a badword message", []string{"badword"})

	assert.False(t, result.IsClean)
	assert.Equal(t, []string{"badword"}, result.BlockedWords)
	assert.Equal(t, "This is a ******* message", result.CleanedText)
}

func TestCheck_CleanText(t *testing.T) {
	result := Check("clean text", []string{"badword"})

	assert.True(t, result.IsClean)
	assert.Empty(t, result.BlockedWords)
	assert.Equal(t, "clean text", result.CleanedText)
}

func TestCheck_EmptyText(t *testing.T) {
	result := Check("", []string{"badword"})

	assert.True(t, result.IsClean)
	assert.Empty(t, result.BlockedWords)
	assert.Equal(t, "", result.CleanedText)
}

func TestCheck_EmptyWordSet(t *testing.T) {
	result := Check("anything goes", nil)

	assert.True(t, result.IsClean)
	assert.Empty(t, result.BlockedWords)
	assert.Equal(t, "anything goes", result.CleanedText)
}

func TestCheck_CaseInsensitive(t *testing.T) {
	result := Check("you BadWord you", []string{"badword"})

	assert.False(t, result.IsClean)
	assert.Contains(t, result.BlockedWords, "badword")
	assert.Equal(t, "you ******* you", result.CleanedText)
}

func TestCheck_SubstringMatchesInsideWords(t *testing.T) {
	// Matching is substring containment, not word-boundary aware.
	// "ass" inside "class" is a known false positive that must stay.
	result := Check("my class", []string{"ass"})

	assert.False(t, result.IsClean)
	assert.Equal(t, []string{"ass"}, result.BlockedWords)
	assert.Equal(t, "my cl***", result.CleanedText)
}

func TestCheck_AllOccurrencesRedacted(t *testing.T) {
	result := Check("spam and SPAM and Spam", []string{"spam"})

	assert.False(t, result.IsClean)
	assert.Equal(t, "**** and **** and ****", result.CleanedText)
}

func TestCheck_MultipleBlockedWords(t *testing.T) {
	result := Check("foo and bar", []string{"foo", "bar"})

	assert.False(t, result.IsClean)
	assert.ElementsMatch(t, []string{"foo", "bar"}, result.BlockedWords)
	assert.Equal(t, "*** and ***", result.CleanedText)
}

func TestCheck_RedactionLengthInvariant(t *testing.T) {
	// Each occurrence is replaced by exactly len(word) asterisks, so
	// the cleaned text keeps the original length.
	inputs := []struct {
		text string
		word string
	}{
		{"short x", "x"},
		{"a reasonably longword here", "longword"},
		{"edge", "edge"},
	}

	for _, in := range inputs {
		result := Check(in.text, []string{in.word})
		assert.Len(t, result.CleanedText, len(in.text))
		assert.Equal(t, strings.Count(strings.ToLower(in.text), in.word),
			strings.Count(result.CleanedText, strings.Repeat("*", len(in.word))))
	}
}

func TestCheck_MultiByteCaseFolding(t *testing.T) {
	// Lowercasing can change byte widths: Ⱥ (2 bytes) lowers to ⱥ
	// (3 bytes), Kelvin K (3 bytes) lowers to k (1 byte). Redaction
	// must not panic, must stay on rune boundaries of the original
	// text, and must still mask the whole match.
	result := Check("Ⱥx", []string{"x"})
	assert.False(t, result.IsClean)
	assert.Equal(t, "Ⱥ*", result.CleanedText)

	result = Check("Ki", []string{"ki"})
	assert.False(t, result.IsClean)
	assert.Equal(t, "**", result.CleanedText)

	result = Check("İx", []string{"x"})
	assert.False(t, result.IsClean)
	assert.True(t, utf8.ValidString(result.CleanedText))
	assert.NotContains(t, result.CleanedText, "x")

	result = Check("ȺⱥKk", []string{"k"})
	assert.False(t, result.IsClean)
	assert.True(t, utf8.ValidString(result.CleanedText))
	assert.Equal(t, "Ⱥⱥ**", result.CleanedText)
}

func TestCheck_SequentialRedaction(t *testing.T) {
	// Redaction is per blocked word, sequentially, over the already
	// redacted string. "bad" is masked first, so "badword" no longer
	// occurs and its pass is a no-op on those characters.
	result := Check("badword", []string{"bad", "badword"})

	assert.False(t, result.IsClean)
	assert.ElementsMatch(t, []string{"bad", "badword"}, result.BlockedWords)
	assert.Equal(t, "***word", result.CleanedText)
}
