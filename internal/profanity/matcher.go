package profanity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CheckResult is the outcome of matching text against a word set
type CheckResult struct {
	IsClean      bool     `json:"is_clean"`
	BlockedWords []string `json:"blocked_words"`
	CleanedText  string   `json:"cleaned_text"`
}

// Check matches text against a word set and produces a redacted copy.
//
// Matching is case-insensitive substring containment, deliberately not
// word-boundary aware: a blocked "ass" matches inside "class". That is
// the established filter behavior and clients depend on it.
//
// Redaction applies one blocked word at a time over the progressively
// redacted string, replacing every case-insensitive occurrence with an
// equal-length run of '*'. Overlaps between blocked words are resolved
// by whatever sequential replacement produces, not simultaneously.
//
// Empty text is always clean.
func Check(text string, words []string) CheckResult {
	if text == "" {
		return CheckResult{IsClean: true, BlockedWords: []string{}, CleanedText: text}
	}

	lowered := strings.ToLower(text)
	blocked := []string{}
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(lowered, word) {
			blocked = append(blocked, word)
		}
	}

	if len(blocked) == 0 {
		return CheckResult{IsClean: true, BlockedWords: []string{}, CleanedText: text}
	}

	cleaned := text
	for _, word := range blocked {
		cleaned = redactWord(cleaned, word)
	}

	return CheckResult{
		IsClean:      false,
		BlockedWords: blocked,
		CleanedText:  cleaned,
	}
}

// redactWord replaces every case-insensitive occurrence of word in s
// with one '*' per rune of word.
//
// Lowercasing can change a rune's byte width (Kelvin K lowers to a
// one-byte k), so offsets into the lowered copy are not offsets into s.
// The search runs over the lowered copy and each of its bytes is mapped
// back to the originating rune's offset in s, keeping every slice on a
// rune boundary of the original text.
func redactWord(s, word string) string {
	var lower strings.Builder
	lower.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offsets = append(offsets, i)
		}
		lower.WriteRune(lr)
	}
	offsets = append(offsets, len(s))
	ls := lower.String()

	mask := strings.Repeat("*", utf8.RuneCountInString(word))

	var b strings.Builder
	b.Grow(len(s))
	i, prev := 0, 0
	for {
		j := strings.Index(ls[i:], word)
		if j < 0 {
			b.WriteString(s[prev:])
			break
		}
		j += i
		b.WriteString(s[prev:offsets[j]])
		b.WriteString(mask)
		i = j + len(word)
		prev = offsets[i]
	}
	return b.String()
}
