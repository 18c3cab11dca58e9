package processor

import "strings"

// Strategy identifies which family of extraction steps applies to a document.
type Strategy int

const (
	// StrategyText handles plain text and markup read verbatim.
	StrategyText Strategy = iota
	// StrategySpreadsheet handles tabular workbook formats.
	StrategySpreadsheet
	// StrategyPDF handles PDF documents.
	StrategyPDF
	// StrategyOffice handles word-processing and presentation formats.
	StrategyOffice
	// StrategyImage handles raster images.
	StrategyImage
)

// String returns the lowercase name of the strategy as it appears in the
// output document record.
func (s Strategy) String() string {
	switch s {
	case StrategySpreadsheet:
		return "spreadsheet"
	case StrategyPDF:
		return "pdf"
	case StrategyOffice:
		return "office"
	case StrategyImage:
		return "image"
	default:
		return "text"
	}
}

// SupportedExtensions lists every extension with a dedicated extraction path.
// Files with other extensions are still accepted and fall back to the text
// strategy.
var SupportedExtensions = []string{
	"csv", "txt",
	"doc", "docx", "docm", "odt", "rtf",
	"xls", "xlsx", "xlsm", "ods",
	"ppt", "pptx", "pptm", "odp",
	"html", "htm",
	"bmp", "gif", "jpg", "jpeg", "png", "tiff", "tif", "webp", "heic", "heif",
	"pdf",
}

// StrategyForExtension maps a file extension (without the leading dot,
// any case) to its extraction strategy. Unrecognized extensions map to
// StrategyText; the mapping is total and never fails.
func StrategyForExtension(ext string) Strategy {
	switch strings.ToLower(ext) {
	case "csv", "xls", "xlsx", "xlsm", "ods":
		return StrategySpreadsheet
	case "pdf":
		return StrategyPDF
	case "doc", "docx", "docm", "odt", "rtf",
		"ppt", "pptx", "pptm", "odp":
		return StrategyOffice
	case "bmp", "gif", "jpg", "jpeg", "png",
		"tiff", "tif", "webp", "heic", "heif":
		return StrategyImage
	default:
		// txt, html, htm and anything unknown.
		return StrategyText
	}
}
