package pdfpage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeMinimalPDF writes a small but structurally valid PDF with the
// given number of pages, each carrying one line of text, and returns its
// path.
func writeMinimalPDF(t *testing.T, pageCount int) string {
	t.Helper()

	content := "BT /F1 12 Tf 72 720 Td (Hello world from a test page) Tj ET"

	// Object numbering: 1 catalog, 2 page tree, 3 font, then for page i
	// (0-based): 4+2i page, 5+2i content stream.
	type object struct {
		num  int
		body string
	}
	var objects []object

	kids := ""
	for i := 0; i < pageCount; i++ {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		object{1, "<< /Type /Catalog /Pages 2 0 R >>"},
		object{2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pageCount)},
		object{3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"},
	)
	for i := 0; i < pageCount; i++ {
		pageNum := 4 + 2*i
		streamNum := 5 + 2*i
		objects = append(objects,
			object{pageNum, fmt.Sprintf(
				"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				streamNum)},
			object{streamNum, fmt.Sprintf(
				"<< /Length %d >>\nstream\n%s\nendstream", len(content), content)},
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int)
	for _, obj := range objects {
		offsets[obj.num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", obj.num, obj.body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	path := filepath.Join(t.TempDir(), fmt.Sprintf("fixture_%d.pdf", pageCount))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}
