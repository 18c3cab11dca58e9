package processor

import (
	"os"
	"time"
)

// DefaultSystemPrompt is the fixed instruction string placed in every
// document shell built by NewDocument.
const DefaultSystemPrompt = "You are a helpful assistant."

// Attachment is a page-numbered encoded image bundled with the document.
// Pages are 1-indexed and unique within a document for the image-bearing
// strategies.
type Attachment struct {
	Page int
	Data []byte // raw encoded image bytes (PNG)
}

// StepRecord describes one completed processing step. The core pipeline
// never populates these; they exist for callers that track per-step
// accounting around the pipeline.
type StepRecord struct {
	Name       string
	DurationMS int64
	Status     string
	MemoryMB   int64
}

// Metadata carries processing accounting for a document run.
type Metadata struct {
	StartedAt        int64 // epoch seconds
	CompletedAt      int64 // epoch seconds, stamped by the pipeline
	TotalDurationMS  int64 // derived from the two stamps
	OriginalFileSize int64
	// Errors is part of the output schema but no pipeline step writes to
	// it; the pipeline is fail-fast and surfaces errors to the caller.
	Errors []string
	Steps  []StepRecord
}

// Document is the record threaded through the pipeline. Steps mutate it in
// place, appending prompt parts and attachments; the pipeline finalizes
// its metadata after the last step.
type Document struct {
	FileType    string // extension without the dot, set by the pipeline
	FilePath    string
	Strategy    string // string form of the resolved strategy
	PromptParts []string
	Attachments []Attachment
	System      string
	Prompt      string // reserved for callers, unused by the pipeline
	Metadata    *Metadata
}

// NewDocument builds the document shell for a file: system prompt filled,
// started_at stamped, original file size recorded. FileType and Strategy
// are left for the pipeline to derive.
func NewDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrIO("stat "+path, err)
	}
	return &Document{
		FilePath: path,
		System:   DefaultSystemPrompt,
		Metadata: &Metadata{
			StartedAt:        time.Now().Unix(),
			OriginalFileSize: info.Size(),
		},
	}, nil
}
