//go:build !ocr

package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oeo/processor/pdfpage"
)

// writePDFFixture builds a structurally valid PDF with the given number
// of pages, one line of text on each.
func writePDFFixture(t *testing.T, pageCount int) string {
	t.Helper()

	content := "BT /F1 12 Tf 72 720 Td (Hello world from a test page) Tj ET"

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

func requireRenderer(t *testing.T, path string) {
	t.Helper()
	r, err := pdfpage.OpenRenderer(path)
	if err != nil {
		t.Skipf("pdf renderer unavailable: %v", err)
	}
	r.Close()
}

func TestPDFStepEmbeddedTextAndAttachments(t *testing.T) {
	path := writePDFFixture(t, 3)
	requireRenderer(t, path)

	doc := &Document{FilePath: path}
	cfg := DefaultConfig()
	step := &PDFStep{}
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(doc.PromptParts) != 1 {
		t.Fatalf("PromptParts = %d, want 1", len(doc.PromptParts))
	}
	part := doc.PromptParts[0]
	if !strings.HasPrefix(part, "<EXTRACTED_DATA>") {
		t.Errorf("embedded text not tagged: %q", part)
	}
	if !strings.Contains(part, "Hello world from a test page") {
		t.Errorf("embedded text missing: %q", part)
	}

	// Three pages, all within the full-render bound.
	if len(doc.Attachments) != 3 {
		t.Fatalf("Attachments = %d, want 3", len(doc.Attachments))
	}
	for i, att := range doc.Attachments {
		if att.Page != i+1 {
			t.Errorf("attachment %d has Page %d, want %d", i, att.Page, i+1)
		}
		if !bytes.HasPrefix(att.Data, []byte{0x89, 'P', 'N', 'G'}) {
			t.Errorf("attachment %d is not PNG-encoded", i)
		}
	}
}

func TestPDFStepSelectsRepresentativePages(t *testing.T) {
	path := writePDFFixture(t, 10)
	requireRenderer(t, path)

	doc := &Document{FilePath: path}
	cfg := DefaultConfig()
	if err := (&PDFStep{}).Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// First two plus last two, ascending.
	wantPages := []int{1, 2, 9, 10}
	if len(doc.Attachments) != len(wantPages) {
		t.Fatalf("Attachments = %d, want %d", len(doc.Attachments), len(wantPages))
	}
	for i, want := range wantPages {
		if doc.Attachments[i].Page != want {
			t.Errorf("attachment %d has Page %d, want %d", i, doc.Attachments[i].Page, want)
		}
	}
}

func TestPDFStepMissingFile(t *testing.T) {
	doc := &Document{FilePath: filepath.Join(t.TempDir(), "gone.pdf")}
	cfg := DefaultConfig()
	err := (&PDFStep{}).Process(context.Background(), doc, &cfg)
	if kind, ok := KindOf(err); !ok || kind != KindConversionFailed {
		t.Fatalf("error = %v, want KindConversionFailed", err)
	}
}

func TestPDFStepUnsetThreadCap(t *testing.T) {
	// threads: 0 in a config file must mean "no cap", not a zero-slot
	// semaphore that blocks the first page worker forever.
	path := writePDFFixture(t, 2)
	requireRenderer(t, path)

	doc := &Document{FilePath: path}
	cfg := DefaultConfig()
	cfg.Threads = 0

	done := make(chan error, 1)
	go func() {
		done <- (&PDFStep{}).Process(context.Background(), doc, &cfg)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("Process did not return with an unset thread cap")
	}
	if len(doc.Attachments) != 2 {
		t.Errorf("Attachments = %d, want 2", len(doc.Attachments))
	}
}
