// Package processor converts heterogeneous input documents into a single
// normalized record for language-model consumption: extracted text parts,
// optional page images, and processing metadata.
//
// A Pipeline resolves an extraction strategy from the input's file
// extension, then runs each registered step that applies to that strategy,
// in registration order, against a shared Document. The first step failure
// aborts the run.
//
// Basic usage:
//
//	doc, err := processor.NewDocument("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	pipe := processor.DefaultPipeline(processor.DefaultConfig())
//	if err := pipe.Run(context.Background(), doc); err != nil {
//	    // handle error
//	}
//	fmt.Println(len(doc.PromptParts), len(doc.Attachments))
package processor

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Step is one unit of extraction work. A step declares which strategies it
// applies to and mutates the shared document when invoked.
type Step interface {
	// Name identifies the step in logs.
	Name() string
	// Strategies returns the strategies this step applies to.
	Strategies() []Strategy
	// Process mutates doc in place. cfg is shared and read-only.
	Process(ctx context.Context, doc *Document, cfg *Config) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used by the pipeline and passed to steps that
// log. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline owns an ordered collection of steps and drives a document
// through them.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
	steps  []Step
}

// New creates an empty pipeline. Steps are added with Register and run in
// registration order.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultPipeline creates a pipeline with the five standard steps
// registered in canonical order: text, spreadsheet, PDF, office, image.
func DefaultPipeline(cfg Config, opts ...Option) *Pipeline {
	p := New(cfg, opts...)
	p.Register(
		&TextStep{},
		&SpreadsheetStep{},
		&PDFStep{logger: p.logger},
		&OfficeStep{},
		&ImageStep{},
	)
	return p
}

// Register appends steps to the pipeline. Registration order is execution
// order.
func (p *Pipeline) Register(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Run resolves the document's strategy from its file extension, executes
// every applicable step in registration order, and stamps completion
// metadata. It is fail-fast: the first step error aborts the run and is
// returned unchanged, leaving no partial result guarantees on doc.
//
// When the configured timeout is positive, the whole run is bounded by it;
// a timeout surfaces as a single fatal error.
func (p *Pipeline) Run(ctx context.Context, doc *Document) error {
	ext := strings.TrimPrefix(filepath.Ext(doc.FilePath), ".")
	if ext == "" {
		return ErrUnsupportedFile("no file extension: " + doc.FilePath)
	}

	// Derived once; never recomputed mid-run.
	strategy := StrategyForExtension(ext)
	doc.FileType = ext
	doc.Strategy = strategy.String()

	if p.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	p.logger.Debug("pipeline run",
		"path", doc.FilePath,
		"file_type", doc.FileType,
		"strategy", doc.Strategy)

	for _, step := range p.steps {
		if !stepApplies(step, strategy) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ErrProcessingFailed("aborted before step "+step.Name(), err)
		}
		p.logger.Debug("running step", "step", step.Name())
		if err := step.Process(ctx, doc, &p.cfg); err != nil {
			return err
		}
	}

	if doc.Metadata != nil {
		doc.Metadata.CompletedAt = time.Now().Unix()
		doc.Metadata.TotalDurationMS = (doc.Metadata.CompletedAt - doc.Metadata.StartedAt) * 1000
	}
	return nil
}

func stepApplies(step Step, s Strategy) bool {
	for _, candidate := range step.Strategies() {
		if candidate == s {
			return true
		}
	}
	return false
}
