//go:build !ocr

// Package ocr provides optical character recognition for page images and
// scanned documents.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All functions return ErrNotEnabled. To enable OCR, rebuild with
// the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed on the system.
package ocr

// Client is a stub OCR client that returns ErrNotEnabled for all
// operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New(language string) (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub client. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeFile returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeFile(path string) (string, error) {
	return "", ErrNotEnabled
}
