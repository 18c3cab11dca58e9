//go:build !ocr

package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNGFixture(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageStepAttachesOptimizedFrame(t *testing.T) {
	path := writePNGFixture(t, "scan.png", 640, 480)
	doc := &Document{FilePath: path}
	cfg := DefaultConfig()

	if err := (&ImageStep{}).Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(doc.Attachments) != 1 {
		t.Fatalf("Attachments = %d, want 1", len(doc.Attachments))
	}
	att := doc.Attachments[0]
	if att.Page != 1 {
		t.Errorf("Page = %d, want 1", att.Page)
	}
	if len(att.Data) == 0 {
		t.Error("attachment data is empty")
	}
	// PNG signature.
	if !bytes.HasPrefix(att.Data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("attachment is not PNG-encoded")
	}
	// Recognition is compiled out in this build, so no OCR prompt part.
	if len(doc.PromptParts) != 0 {
		t.Errorf("PromptParts = %v, want none without OCR", doc.PromptParts)
	}
}

func TestImageStepDownscalesLargeInput(t *testing.T) {
	path := writePNGFixture(t, "big.png", 3200, 1600)
	doc := &Document{FilePath: path}
	cfg := DefaultConfig()

	if err := (&ImageStep{}).Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(doc.Attachments[0].Data))
	if err != nil {
		t.Fatalf("decode attachment: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1600 || b.Dy() != 800 {
		t.Errorf("optimized size = %dx%d, want 1600x800", b.Dx(), b.Dy())
	}
}

func TestImageStepRejectsGarbageFile(t *testing.T) {
	path := writeTempFile(t, "broken.png", "definitely not an image")
	doc := &Document{FilePath: path}
	cfg := DefaultConfig()

	err := (&ImageStep{}).Process(context.Background(), doc, &cfg)
	if kind, ok := KindOf(err); !ok || kind != KindImageProcessingFailed {
		t.Fatalf("error = %v, want KindImageProcessingFailed", err)
	}
}
