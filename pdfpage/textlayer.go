package pdfpage

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads the embedded text layer of every page and returns one
// raw string per page, 0-indexed. Pages without a text layer yield empty
// strings. The underlying parser panics on some malformed documents, so
// every page read is panic-guarded; a page that cannot be read yields an
// empty string rather than failing the document.
func ExtractText(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := 0
	func() {
		defer func() { _ = recover() }()
		total = r.NumPage()
	}()
	if total <= 0 {
		return nil, nil
	}

	texts := make([]string, total)
	for i := 1; i <= total; i++ {
		texts[i-1] = pageText(r, i)
	}
	return texts, nil
}

func pageText(r *pdf.Reader, n int) (out string) {
	defer func() { _ = recover() }()

	page := r.Page(n)
	if page.V.IsNull() {
		return ""
	}
	content := page.Content()
	var b strings.Builder
	for _, item := range content.Text {
		b.WriteString(item.S)
		b.WriteByte(' ')
	}
	return b.String()
}
