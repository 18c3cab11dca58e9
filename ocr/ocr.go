//go:build ocr

// Package ocr provides optical character recognition for page images and
// scanned documents.
//
// This package wraps the Tesseract OCR engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Build with the "ocr" tag to enable this implementation; without it a
// stub is compiled and every call reports ErrNotEnabled.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations. It is not safe for
// concurrent use; create one client per worker.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client recognizing the given language. Multiple
// languages can be combined with "+", e.g. "eng+fra". The client must be
// closed when no longer needed.
func New(language string) (*Client, error) {
	c := gosseract.NewClient()
	if language != "" {
		if err := c.SetLanguage(strings.Split(language, "+")...); err != nil {
			c.Close()
			return nil, fmt.Errorf("set language %q: %w", language, err)
		}
	}
	return &Client{client: c}, nil
}

// Close releases Tesseract resources. Safe to call on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeFile performs OCR on an image file and returns the recognized
// text with surrounding whitespace trimmed.
func (c *Client) RecognizeFile(path string) (string, error) {
	if err := c.client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image %s: %w", path, err)
	}
	out, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", path, err)
	}
	return strings.TrimSpace(out), nil
}
