package processor

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Fixed bounds for the spreadsheet range clamp. The configured
// max_rows/max_cols are not consulted here; the clamp enforces these
// constants regardless.
const (
	clampMaxRows = 1000
	clampMaxCols = 100
)

// SpreadsheetStep extracts tabular content from workbook and CSV files:
// first sheet only, range clamped, cells stringified and joined row by
// row into a single prompt part.
type SpreadsheetStep struct{}

// Name implements Step.
func (s *SpreadsheetStep) Name() string { return "spreadsheet_processor" }

// Strategies implements Step.
func (s *SpreadsheetStep) Strategies() []Strategy { return []Strategy{StrategySpreadsheet} }

// Process implements Step.
func (s *SpreadsheetStep) Process(_ context.Context, doc *Document, _ *Config) error {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(doc.FilePath), ".csv") {
		rows, err = readCSV(doc.FilePath)
	} else {
		rows, err = readWorkbook(doc.FilePath)
	}
	if err != nil {
		return err
	}

	out := renderRows(rows)
	if out != "" {
		doc.PromptParts = append(doc.PromptParts, out)
	}
	return nil
}

// ClampRange bounds an inclusive cell range measured from its top-left
// corner: spans beyond 1000 rows or 100 columns are cut, excess silently
// dropped. Start coordinates are never moved.
func ClampRange(startRow, startCol, endRow, endCol int) (int, int, int, int) {
	if endRow-startRow > clampMaxRows {
		endRow = startRow + clampMaxRows
	}
	if endCol-startCol > clampMaxCols {
		endCol = startCol + clampMaxCols
	}
	return startRow, startCol, endRow, endCol
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ErrExtractionFailed("open workbook "+path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// First sheet only; remaining sheets are out of scope for prompt
	// assembly.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrExtractionFailed("read sheet "+sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrExtractionFailed("open csv "+path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, ErrExtractionFailed("parse csv "+path, err)
	}
	return rows, nil
}

// renderRows stringifies the clamped range: empty cells are skipped,
// populated cells space-joined per row, rows newline-joined.
func renderRows(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	_, _, endRow, _ := ClampRange(0, 0, len(rows)-1, 0)

	var lines []string
	for i := 0; i <= endRow; i++ {
		row := rows[i]
		_, _, _, endCol := ClampRange(0, 0, 0, max(len(row)-1, 0))
		if endCol+1 < len(row) {
			row = row[:endCol+1]
		}
		var cells []string
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
