package pdfpage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is 72 dpi scaled by the fixed 1.5x render factor.
const renderDPI = 108

// Renderer rasterizes pages of a PDF document through MuPDF.
type Renderer struct {
	doc *fitz.Document
}

// OpenRenderer opens a PDF for rasterization. Close must be called when
// done.
func OpenRenderer(path string) (*Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Renderer{doc: doc}, nil
}

// Close releases the underlying document.
func (r *Renderer) Close() error {
	if r.doc == nil {
		return nil
	}
	err := r.doc.Close()
	r.doc = nil
	return err
}

// PageCount returns the number of pages in the document.
func (r *Renderer) PageCount() int {
	return r.doc.NumPage()
}

// Render rasterizes the 0-indexed page at the fixed 1.5x scale in RGB,
// compositing onto a white background when the source carries alpha.
func (r *Renderer) Render(page int) (image.Image, error) {
	img, err := r.doc.ImageDPI(page, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page+1, err)
	}
	return onWhite(img), nil
}

// onWhite flattens alpha onto an opaque white background.
func onWhite(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
