package text

import (
	"strings"
	"unicode"
)

// Fixed classifier thresholds. The predicate is a logical OR over
// independent conditions; evaluation short-circuits for cheap rejection
// but the order never changes the result.
const (
	minLength          = 10
	minValidCharRatio  = 0.8
	maxSpecialRatio    = 0.15
	minWordCount       = 3
	longWordLength     = 20
	maxLongWordRatio   = 0.08
	minAvgWordLength   = 2.0
	maxAvgWordLength   = 15.0
	maxSingleCharRatio = 0.3
	minWordlikeRatio   = 0.4
	repeatWindow       = 5
)

// IsGarbage reports whether s reads as extraction or OCR noise rather
// than meaningful text. Acceptance is the negation.
func IsGarbage(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if len(s) < minLength {
		return true
	}

	runes := []rune(s)
	total := len(runes)

	valid := 0
	special := 0
	for _, r := range runes {
		switch {
		case isValidChar(r):
			valid++
		case !unicode.IsSpace(r):
			special++
		}
	}
	if float64(valid)/float64(total) < minValidCharRatio {
		return true
	}
	if hasRepeatRun(runes) {
		return true
	}
	if float64(special)/float64(total) > maxSpecialRatio {
		return true
	}

	words := strings.Fields(s)
	if len(words) < minWordCount {
		return true
	}

	var longWords, singleChar, wordlike, totalLen int
	for _, w := range words {
		n := len(w)
		totalLen += n
		if n > longWordLength {
			longWords++
		}
		if n == 1 {
			singleChar++
		}
		if n > 1 && isAlphabetic(w) {
			wordlike++
		}
	}
	count := float64(len(words))
	if float64(longWords)/count > maxLongWordRatio {
		return true
	}
	if avg := float64(totalLen) / count; avg < minAvgWordLength || avg > maxAvgWordLength {
		return true
	}
	if float64(singleChar)/count > maxSingleCharRatio {
		return true
	}
	if float64(wordlike)/count < minWordlikeRatio {
		return true
	}

	return false
}

// isValidChar covers ASCII alphanumerics, whitespace, and common
// punctuation expected in prose.
func isValidChar(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
		return true
	}
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '\'', '"', '(', ')', '-':
		return true
	}
	return false
}

// hasRepeatRun reports a window of five identical characters. Runs of x,
// X, and 0 are tolerated: checkbox rows and zero-padded figures produce
// them legitimately.
func hasRepeatRun(runes []rune) bool {
	if len(runes) < repeatWindow {
		return false
	}
	for i := 0; i+repeatWindow <= len(runes); i++ {
		c := runes[i]
		if c == 'x' || c == 'X' || c == '0' {
			continue
		}
		run := true
		for j := 1; j < repeatWindow; j++ {
			if runes[i+j] != c {
				run = false
				break
			}
		}
		if run {
			return true
		}
	}
	return false
}

func isAlphabetic(w string) bool {
	for _, r := range w {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return len(w) > 0
}
