package processor

import (
	"context"
	"os"

	"github.com/oeo/processor/text"
)

// TextStep reads a file verbatim and appends it as a single tagged prompt
// part. Unlike the other steps it applies no normalization: plain text is
// passed through exactly as stored.
type TextStep struct{}

// Name implements Step.
func (s *TextStep) Name() string { return "text_processor" }

// Strategies implements Step.
func (s *TextStep) Strategies() []Strategy { return []Strategy{StrategyText} }

// Process implements Step.
func (s *TextStep) Process(_ context.Context, doc *Document, _ *Config) error {
	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return ErrExtractionFailed("read "+doc.FilePath, err)
	}
	doc.PromptParts = append(doc.PromptParts, text.FormatExtracted(string(data)))
	return nil
}
