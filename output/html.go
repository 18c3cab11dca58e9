package output

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"time"

	"github.com/oeo/processor"
)

// reportTemplate is a single self-contained page: monospace layout, one
// section each for basic information, extracted content, attachments, and
// metadata. Attachment images are inlined as data URIs.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Document Processing Results</title>
    <style>
        * { font-family: monospace; font-size: 13px; margin: 0; padding: 0; box-sizing: border-box; color: #000; }
        body { background: #fff; padding: 40px; }
        .container { max-width: 1200px; margin: 0 auto; }
        .section { margin: 20px 0; }
        hr { border: none; border-top: 1px solid #ddd; margin: 20px 0; }
        .metadata { display: grid; grid-template-columns: 200px 1fr; gap: 12px; }
        .prompt-part { max-height: 400px; overflow-y: auto; background: #f5f5f5; padding: 20px; white-space: pre; margin: 12px 0; }
        .attachment { margin: 20px 0; }
        .attachment img { max-width: 100%; border: 1px solid #ddd; }
        h1, h2, h3 { margin: 0 0 16px 0; }
    </style>
</head>
<body>
<div class="container">
<h1>Document Processing Results</h1>
<div class="section">
<h2>Basic Information</h2>
<div class="metadata">
<div class="label">File Type:</div><div class="value">{{.Doc.FileType}}</div>
<div class="label">File Path:</div><div class="value">{{.Doc.FilePath}}</div>
<div class="label">Strategy:</div><div class="value">{{.Doc.Strategy}}</div>
<div class="label">System Prompt:</div><div class="value">{{.Doc.System}}</div>
</div>
</div>
<hr>
{{if .Doc.PromptParts}}<div class="section">
<h2>Extracted Content</h2>
{{range .Doc.PromptParts}}<div class="prompt-part">{{.}}</div>
{{end}}</div>
<hr>
{{end}}{{if .Doc.Attachments}}<div class="section">
<h2>Attachments</h2>
{{range .Doc.Attachments}}<div class="attachment">
<h3>Page {{.Page}}</h3>
<img src="{{datauri .Data}}" alt="Page {{.Page}}">
</div>
{{end}}</div>
<hr>
{{end}}{{with .Doc.Metadata}}<div class="section">
<h2>Processing Metadata</h2>
<div class="metadata">
<div class="label">Started At:</div><div class="value">{{stamp .StartedAt}}</div>
<div class="label">Completed At:</div><div class="value">{{stamp .CompletedAt}}</div>
<div class="label">Duration:</div><div class="value">{{.TotalDurationMS}} ms</div>
<div class="label">File Size:</div><div class="value">{{.OriginalFileSize}} bytes</div>
{{if .Errors}}<div class="label">Errors:</div><div class="value">{{range .Errors}}<div>{{.}}</div>{{end}}</div>
{{end}}{{if .Steps}}<div class="label">Processing Steps:</div><div class="value">{{range .Steps}}<div>{{.Name}} - {{.DurationMS}} ms ({{.MemoryMB}}MB)</div>{{end}}</div>
{{end}}</div>
</div>
{{end}}</div>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	// Returned as template.URL: the auto-escaper rejects data: schemes in
	// src attributes otherwise.
	"datauri": func(data []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	},
	"stamp": func(epoch int64) string {
		if epoch == 0 {
			return "unknown"
		}
		return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
	},
}).Parse(reportTemplate))

// HTML renders the document as a standalone report page.
func HTML(doc *processor.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, struct{ Doc *processor.Document }{doc}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
