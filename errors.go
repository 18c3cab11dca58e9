package processor

import (
	"errors"
	"fmt"
)

// Kind classifies a processing failure.
type Kind int

const (
	// KindUnsupportedFile indicates the input file cannot be handled at all.
	KindUnsupportedFile Kind = iota
	// KindExtractionFailed indicates text extraction from the source failed.
	KindExtractionFailed
	// KindConversionFailed indicates a document-to-image conversion failed.
	KindConversionFailed
	// KindProcessingFailed indicates a general pipeline failure.
	KindProcessingFailed
	// KindOCRFailed indicates optical character recognition failed.
	KindOCRFailed
	// KindInvalidProcessor indicates a misconfigured step.
	KindInvalidProcessor
	// KindInvalidFormat indicates the file content does not match its extension.
	KindInvalidFormat
	// KindImageProcessingFailed indicates image decode, resize, or encode failed.
	KindImageProcessingFailed
	// KindIO wraps an underlying I/O failure.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFile:
		return "unsupported file type"
	case KindExtractionFailed:
		return "failed to extract text"
	case KindConversionFailed:
		return "failed to convert document"
	case KindProcessingFailed:
		return "failed to process document"
	case KindOCRFailed:
		return "failed to perform OCR"
	case KindInvalidProcessor:
		return "invalid processor"
	case KindInvalidFormat:
		return "invalid format"
	case KindImageProcessingFailed:
		return "image processing failed"
	case KindIO:
		return "io error"
	default:
		return "unknown error"
	}
}

// Error is a typed processing failure. Every pipeline operation reports
// failures as *Error so callers can branch on Kind with errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind, so that
// errors.Is(err, &Error{Kind: KindOCRFailed}) works without comparing
// messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// ErrUnsupportedFile reports a file that no strategy can handle.
func ErrUnsupportedFile(msg string) *Error {
	return newError(KindUnsupportedFile, msg, nil)
}

// ErrExtractionFailed reports a failed text extraction.
func ErrExtractionFailed(msg string, cause error) *Error {
	return newError(KindExtractionFailed, msg, cause)
}

// ErrConversionFailed reports a failed document conversion.
func ErrConversionFailed(msg string, cause error) *Error {
	return newError(KindConversionFailed, msg, cause)
}

// ErrProcessingFailed reports a general processing failure.
func ErrProcessingFailed(msg string, cause error) *Error {
	return newError(KindProcessingFailed, msg, cause)
}

// ErrOCRFailed reports a failed OCR attempt.
func ErrOCRFailed(msg string, cause error) *Error {
	return newError(KindOCRFailed, msg, cause)
}

// ErrInvalidFormat reports content that does not match its extension.
func ErrInvalidFormat(msg string) *Error {
	return newError(KindInvalidFormat, msg, nil)
}

// ErrImageProcessing reports a failed image operation.
func ErrImageProcessing(msg string, cause error) *Error {
	return newError(KindImageProcessingFailed, msg, cause)
}

// ErrIO wraps an I/O failure.
func ErrIO(msg string, cause error) *Error {
	return newError(KindIO, msg, cause)
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and a
// boolean indicating whether one was found.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
