package text

import (
	"fmt"
	"regexp"
	"strings"
)

// Shared, read-only after construction; safe for concurrent use.
var (
	repeatedCharsRE    = regexp.MustCompile(`[|Iil]{3,}`)
	repeatedDotsRE     = regexp.MustCompile(`[.:]{3,}`)
	repeatedDashesRE   = regexp.MustCompile(`[_-]{2,}`)
	whitespaceRE       = regexp.MustCompile(`[ \t]+`)
	multipleNewlinesRE = regexp.MustCompile(`\n\s*\n`)
)

// Clean normalizes text content: line endings become LF, OCR rule and
// leader artifacts collapse, horizontal whitespace runs collapse to a
// single space, and lines that trim to one character or less are dropped.
// Clean(Clean(s)) == Clean(s) for any s.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// Artifact runs collapse before whitespace and line filtering so a
	// single pass reaches the fixed point: removing a glyph run may leave
	// adjacent spaces or an effectively empty line behind, and those are
	// cleaned up by the later stages.
	s = repeatedCharsRE.ReplaceAllString(s, "")
	s = repeatedDotsRE.ReplaceAllString(s, "...")
	s = repeatedDashesRE.ReplaceAllString(s, "--")
	s = whitespaceRE.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 1 {
			kept = append(kept, line)
		}
	}
	s = strings.Join(kept, "\n")

	s = multipleNewlinesRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FormatExtracted wraps extracted document text in the prompt-part
// delimiter tag consumed downstream.
func FormatExtracted(s string) string {
	return "<EXTRACTED_DATA>" + s + "</EXTRACTED_DATA>"
}

// FormatOCR wraps OCR output for a 1-indexed page in its delimiter tag.
func FormatOCR(s string, page int) string {
	return fmt.Sprintf("<OCR PAGE=%d>%s</OCR>", page, s)
}
