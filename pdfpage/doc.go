// Package pdfpage provides the PDF primitives used by the extraction
// pipeline: the native text layer, bounded page selection, and page
// rasterization.
//
// Text extraction reads the PDF's embedded text layer without rendering.
// Rasterization goes through MuPDF at a fixed 1.5x scale and composites
// transparent content onto a white background. SelectPages bounds how
// many pages are rasterized for large documents.
package pdfpage
