package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oeo/processor/imaging"
	"github.com/oeo/processor/pdfpage"
	"github.com/oeo/processor/text"
)

// PDFStep handles PDF documents on two tracks. The embedded text layer is
// extracted first; when it yields usable text, OCR is skipped entirely. A
// representative selection of pages is rasterized and attached in every
// case, so downstream models see the layout even for text-rich files.
type PDFStep struct {
	logger *slog.Logger
}

// Name implements Step.
func (s *PDFStep) Name() string { return "pdf_processor" }

// Strategies implements Step.
func (s *PDFStep) Strategies() []Strategy { return []Strategy{StrategyPDF} }

// Process implements Step.
func (s *PDFStep) Process(ctx context.Context, doc *Document, cfg *Config) error {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Text layer first. Extraction failures degrade to the OCR track
	// instead of aborting; scanned and malformed files land here often.
	var embedded string
	pages, err := pdfpage.ExtractText(doc.FilePath)
	if err != nil {
		logger.Warn("pdf text layer unavailable", "path", doc.FilePath, "error", err)
	} else {
		var cleaned []string
		for _, page := range pages {
			if c := text.Clean(page); c != "" {
				cleaned = append(cleaned, c)
			}
		}
		joined := strings.Join(cleaned, "\n\n")
		if joined != "" && !text.IsGarbage(joined) {
			embedded = joined
		}
	}
	hasEmbedded := embedded != ""

	renderer, err := pdfpage.OpenRenderer(doc.FilePath)
	if err != nil {
		return ErrConversionFailed("open "+doc.FilePath, err)
	}
	defer renderer.Close()

	selected := pdfpage.SelectPages(renderer.PageCount())

	type pageResult struct {
		ocrText    string
		attachment Attachment
	}
	results := make([]pageResult, len(selected))

	g, ctx := errgroup.WithContext(ctx)
	// SetLimit(0) would block every Go call; a zero or negative cap means
	// unlimited.
	if cfg.Threads > 0 {
		g.SetLimit(cfg.Threads)
	}
	for i, pageIdx := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			img, err := renderer.Render(pageIdx)
			if err != nil {
				return ErrConversionFailed(fmt.Sprintf("render page %d", pageIdx+1), err)
			}
			_, buf, err := imaging.Optimize(img, cfg.MaxImageSizeMB)
			if err != nil {
				return ErrImageProcessing(fmt.Sprintf("optimize page %d", pageIdx+1), err)
			}
			results[i].attachment = Attachment{Page: pageIdx + 1, Data: buf}

			if hasEmbedded {
				return nil
			}
			recognized, err := runOCRImage(buf, fmt.Sprintf("page_%d.png", pageIdx+1), cfg)
			if err != nil {
				return err
			}
			results[i].ocrText = recognized
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if hasEmbedded {
		doc.PromptParts = append(doc.PromptParts, text.FormatExtracted(embedded))
	}
	for i, res := range results {
		if res.ocrText != "" {
			doc.PromptParts = append(doc.PromptParts, text.FormatOCR(res.ocrText, selected[i]+1))
		}
	}
	for _, res := range results {
		doc.Attachments = append(doc.Attachments, res.attachment)
	}
	return nil
}
