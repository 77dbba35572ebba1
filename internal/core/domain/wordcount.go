package domain

import "strings"

// isCJK reports whether a rune counts as a single word on its own.
// Covers CJK Unified Ideographs and Extension A, Hiragana, Katakana,
// and Hangul Syllables, the ranges dense prose in Japanese and Korean
// is written in, where whitespace splitting would undercount badly.
func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // Hangul Syllables
		return true
	}
	return false
}

// CountWords counts semantic words in mixed-language text: every CJK code
// point counts individually, everything else is tokenised on whitespace runs.
func CountWords(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	cjkCount := 0
	var latin strings.Builder
	for _, r := range text {
		if isCJK(r) {
			cjkCount++
			latin.WriteByte(' ')
		} else {
			latin.WriteRune(r)
		}
	}

	return cjkCount + len(strings.Fields(latin.String()))
}

// DocumentWordCount counts words in the full document text projection.
func DocumentWordCount(d Document) int {
	return CountWords(d.TextProjection())
}
