package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/oeo/processor/imaging"
	"github.com/oeo/processor/internal/tempdir"
	"github.com/oeo/processor/ocr"
	"github.com/oeo/processor/text"
)

// ImageStep optimizes a standalone image for model consumption and runs
// OCR over the optimized frame. The attachment is always emitted; the OCR
// prompt part only when recognition is available and the text passes the
// quality gate.
type ImageStep struct{}

// Name implements Step.
func (s *ImageStep) Name() string { return "image_processor" }

// Strategies implements Step.
func (s *ImageStep) Strategies() []Strategy { return []Strategy{StrategyImage} }

// Process implements Step.
func (s *ImageStep) Process(_ context.Context, doc *Document, cfg *Config) error {
	img, err := imaging.Decode(doc.FilePath)
	if err != nil {
		return ErrImageProcessing("decode "+doc.FilePath, err)
	}

	_, buf, err := imaging.Optimize(img, cfg.MaxImageSizeMB)
	if err != nil {
		return ErrImageProcessing("optimize "+doc.FilePath, err)
	}

	doc.Attachments = append(doc.Attachments, Attachment{Page: 1, Data: buf})

	recognized, err := runOCRImage(buf, "temp_ocr.png", cfg)
	if err != nil {
		return err
	}
	if recognized != "" {
		doc.PromptParts = append(doc.PromptParts, text.FormatOCR(recognized, 1))
	}
	return nil
}

// runOCRImage recognizes a PNG-encoded frame through a temp file and
// returns the cleaned text, or "" when recognition is unavailable or the
// text fails the garbage gate. Recognition goes through the filesystem
// because the engine takes file paths, not byte slices.
func runOCRImage(buf []byte, filename string, cfg *Config) (string, error) {
	engine, err := ocr.New(cfg.OCRLanguage)
	if err != nil {
		if errors.Is(err, ocr.ErrNotEnabled) {
			return "", nil
		}
		return "", ErrOCRFailed("init engine", err)
	}
	defer engine.Close()

	scratch, err := tempdir.New(cfg.TempDir)
	if err != nil {
		return "", ErrIO("create temp dir", err)
	}
	defer scratch.Release()

	path := scratch.Join(filename)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", ErrIO("write "+path, err)
	}

	recognized, err := engine.RecognizeFile(path)
	if err != nil {
		return "", ErrOCRFailed("recognize "+filepath.Base(path), err)
	}

	if cfg.KeepTemps {
		if err := scratch.Keep(filename, cfg.TempDir); err != nil {
			return "", ErrIO("keep "+filename, err)
		}
	}

	cleaned := text.Clean(recognized)
	if text.IsGarbage(cleaned) {
		return "", nil
	}
	return cleaned, nil
}
