// Package output serializes a processed document for delivery: a JSON
// projection with base64 attachment data, a self-contained HTML report,
// and a compact length-prefixed binary encoding.
package output

import (
	"encoding/base64"
	"encoding/json"

	"github.com/oeo/processor"
)

// Record is the wire-facing projection of a processed document. Attachment
// bytes are base64-encoded so the whole record is valid JSON.
type Record struct {
	FileType    string           `json:"file_type"`
	FilePath    string           `json:"file_path"`
	Strategy    string           `json:"strategy"`
	PromptParts []string         `json:"prompt_parts"`
	Attachments []AttachmentData `json:"attachments"`
	System      string           `json:"system"`
	Prompt      string           `json:"prompt"`
	Metadata    *MetadataRecord  `json:"metadata,omitempty"`
}

// AttachmentData carries one page image, base64-encoded.
type AttachmentData struct {
	Page int    `json:"page"`
	Data string `json:"data"`
}

// MetadataRecord mirrors processor.Metadata in the output schema.
type MetadataRecord struct {
	StartedAt        int64        `json:"started_at"`
	CompletedAt      int64        `json:"completed_at"`
	TotalDurationMS  int64        `json:"total_duration_ms"`
	OriginalFileSize int64        `json:"original_file_size"`
	Errors           []string     `json:"errors"`
	Steps            []StepRecord `json:"steps"`
}

// StepRecord mirrors processor.StepRecord in the output schema.
type StepRecord struct {
	Name       string `json:"name"`
	DurationMS int64  `json:"duration_ms"`
	Status     string `json:"status"`
	MemoryMB   int64  `json:"memory_mb"`
}

// NewRecord projects a document into the output schema.
func NewRecord(doc *processor.Document) *Record {
	rec := &Record{
		FileType:    doc.FileType,
		FilePath:    doc.FilePath,
		Strategy:    doc.Strategy,
		PromptParts: doc.PromptParts,
		System:      doc.System,
		Prompt:      doc.Prompt,
	}
	for _, att := range doc.Attachments {
		rec.Attachments = append(rec.Attachments, AttachmentData{
			Page: att.Page,
			Data: base64.StdEncoding.EncodeToString(att.Data),
		})
	}
	if m := doc.Metadata; m != nil {
		mr := &MetadataRecord{
			StartedAt:        m.StartedAt,
			CompletedAt:      m.CompletedAt,
			TotalDurationMS:  m.TotalDurationMS,
			OriginalFileSize: m.OriginalFileSize,
			Errors:           m.Errors,
		}
		for _, s := range m.Steps {
			mr.Steps = append(mr.Steps, StepRecord{
				Name:       s.Name,
				DurationMS: s.DurationMS,
				Status:     s.Status,
				MemoryMB:   s.MemoryMB,
			})
		}
		rec.Metadata = mr
	}
	return rec
}

// JSON renders the document as indented JSON.
func JSON(doc *processor.Document) ([]byte, error) {
	return json.MarshalIndent(NewRecord(doc), "", "  ")
}
