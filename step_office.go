package processor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/oeo/processor/text"
)

// OfficeStep extracts text from word-processing and presentation formats.
// The OOXML and OpenDocument families are opened as zip containers and
// their text runs pulled from the relevant XML members; RTF is handled
// with a line-level filter. When structured extraction yields nothing the
// step falls back to a raw read of the whole file, and fails only when
// both paths come up empty.
type OfficeStep struct{}

// Name implements Step.
func (s *OfficeStep) Name() string { return "office_processor" }

// Strategies implements Step.
func (s *OfficeStep) Strategies() []Strategy { return []Strategy{StrategyOffice} }

// Process implements Step.
func (s *OfficeStep) Process(_ context.Context, doc *Document, _ *Config) error {
	extracted, err := extractOffice(doc.FilePath)
	if err != nil {
		return err
	}

	cleaned := text.Clean(extracted)
	if cleaned == "" {
		// Fall back to a raw text read. Legacy binary formats (.doc,
		// .ppt) always land here.
		raw, err := os.ReadFile(doc.FilePath)
		if err != nil {
			return ErrExtractionFailed("read "+doc.FilePath, err)
		}
		cleaned = text.Clean(string(raw))
	}
	if cleaned == "" {
		return ErrExtractionFailed("no usable text in "+doc.FilePath, nil)
	}

	doc.PromptParts = append(doc.PromptParts, text.FormatExtracted(cleaned))
	return nil
}

// extractOffice dispatches structured extraction by extension. Formats
// without a structured reader return empty text and no error.
func extractOffice(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "docx", "docm":
		return extractZipRuns(path, isDocumentMember)
	case "pptx", "pptm":
		return extractZipRuns(path, isSlideMember)
	case "odt", "odp":
		return extractOpenDocument(path)
	case "rtf":
		return extractRTF(path)
	default:
		return "", nil
	}
}

func isDocumentMember(name string) bool {
	return name == "word/document.xml"
}

func isSlideMember(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
}

// extractZipRuns opens an OOXML container and concatenates the text runs
// (<w:t> or <a:t> elements) of every member selected by match, members in
// archive order separated by newlines, runs separated by spaces.
func extractZipRuns(path string, match func(string) bool) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", ErrExtractionFailed("open container "+path, err)
	}
	defer zr.Close()

	var members []*zip.File
	for _, f := range zr.File {
		if match(f.Name) {
			members = append(members, f)
		}
	}

	var parts []string
	for _, member := range members {
		rc, err := member.Open()
		if err != nil {
			return "", ErrExtractionFailed("open member "+member.Name, err)
		}
		runs, err := textRuns(rc)
		rc.Close()
		if err != nil {
			return "", ErrExtractionFailed("parse member "+member.Name, err)
		}
		if runs != "" {
			parts = append(parts, runs)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// textRuns walks an XML stream collecting character data inside <t>
// elements (w:t and a:t both have local name "t"), a space after each
// run.
func textRuns(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				b.Write(t)
				b.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		}
	}
	return b.String(), nil
}

// extractOpenDocument reads content.xml of an ODT/ODP container,
// collecting character data of paragraph and heading elements.
func extractOpenDocument(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", ErrExtractionFailed("open container "+path, err)
	}
	defer zr.Close()

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return "", nil
	}

	rc, err := content.Open()
	if err != nil {
		return "", ErrExtractionFailed("open content.xml", err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var b strings.Builder
	depth := 0 // nesting inside text:p / text:h
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ErrExtractionFailed("parse content.xml", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth++
			}
		case xml.CharData:
			if depth > 0 {
				b.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth--
				b.WriteByte('\n')
			}
		}
	}
	return b.String(), nil
}

// extractRTF maps paragraph markers to newlines and drops control lines.
// RTF payloads predating Unicode are commonly Windows-1252; bytes that
// are not valid UTF-8 are decoded through that code page.
func extractRTF(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", ErrExtractionFailed("read "+path, err)
	}

	content := string(raw)
	if !utf8.ValidString(content) {
		decoded, err := charmap.Windows1252.NewDecoder().String(content)
		if err == nil {
			content = decoded
		}
	}

	content = strings.ReplaceAll(content, `\par`, "\n")
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "}") || strings.HasPrefix(trimmed, `\`) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}
