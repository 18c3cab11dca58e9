package processor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name                   string
		startRow, startCol     int
		endRow, endCol         int
		wantEndRow, wantEndCol int
	}{
		{"within bounds", 0, 0, 500, 50, 500, 50},
		{"rows clamped", 0, 0, 2000, 50, 1000, 50},
		{"cols clamped", 0, 0, 50, 500, 50, 100},
		{"both clamped", 0, 0, 5000, 5000, 1000, 100},
		{"offset start preserved", 10, 5, 2000, 200, 1010, 105},
		{"exactly at limit", 0, 0, 1000, 100, 1000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr, sc, er, ec := ClampRange(tt.startRow, tt.startCol, tt.endRow, tt.endCol)
			if sr != tt.startRow || sc != tt.startCol {
				t.Errorf("start moved to (%d,%d)", sr, sc)
			}
			if er != tt.wantEndRow || ec != tt.wantEndCol {
				t.Errorf("end = (%d,%d), want (%d,%d)", er, ec, tt.wantEndRow, tt.wantEndCol)
			}
		})
	}
}

func TestSpreadsheetStepCSV(t *testing.T) {
	path := writeTempFile(t, "data.csv", "name,qty\nwidget,3\ngadget,7\n")
	doc := &Document{FilePath: path}

	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(doc.PromptParts) != 1 {
		t.Fatalf("PromptParts = %d, want 1", len(doc.PromptParts))
	}
	want := "name qty\nwidget 3\ngadget 7"
	if doc.PromptParts[0] != want {
		t.Errorf("rendered = %q, want %q", doc.PromptParts[0], want)
	}
}

func TestSpreadsheetStepRaggedCSV(t *testing.T) {
	path := writeTempFile(t, "ragged.csv", "a,b,c\nd\ne,f\n")
	doc := &Document{FilePath: path}

	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(doc.PromptParts) != 1 {
		t.Fatalf("PromptParts = %d, want 1", len(doc.PromptParts))
	}
	if got := doc.PromptParts[0]; got != "a b c\nd\ne f" {
		t.Errorf("rendered = %q", got)
	}
}

func TestSpreadsheetStepXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	cells := map[string]string{
		"A1": "item", "B1": "count",
		"A2": "alpha", "B2": "1",
		"A3": "beta", "B3": "2",
	}
	for ref, val := range cells {
		if err := f.SetCellValue("Sheet1", ref, val); err != nil {
			t.Fatal(err)
		}
	}
	// Second sheet must be ignored.
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Extra", "A1", "should not appear"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	doc := &Document{FilePath: path}
	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(doc.PromptParts) != 1 {
		t.Fatalf("PromptParts = %d, want 1", len(doc.PromptParts))
	}
	got := doc.PromptParts[0]
	for _, want := range []string{"item count", "alpha 1", "beta 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "should not appear") {
		t.Error("second sheet leaked into the output")
	}
}

func TestSpreadsheetStepSkipsEmptyCells(t *testing.T) {
	// Empty cells must not leave doubled separators behind.
	path := writeTempFile(t, "sparse.csv", "a,,b\nc,d,\n,,\ne,,f\n")
	doc := &Document{FilePath: path}

	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(doc.PromptParts) != 1 {
		t.Fatalf("PromptParts = %d, want 1", len(doc.PromptParts))
	}
	want := "a b\nc d\n\ne f"
	if got := doc.PromptParts[0]; got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestSpreadsheetStepEmptyCSV(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")
	doc := &Document{FilePath: path}

	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	if err := step.Process(context.Background(), doc, &cfg); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(doc.PromptParts) != 0 {
		t.Errorf("empty input should yield no prompt parts, got %v", doc.PromptParts)
	}
}

func TestSpreadsheetStepBadWorkbook(t *testing.T) {
	path := writeTempFile(t, "fake.xlsx", "this is not a zip archive")
	doc := &Document{FilePath: path}

	step := &SpreadsheetStep{}
	cfg := DefaultConfig()
	err := step.Process(context.Background(), doc, &cfg)
	if kind, ok := KindOf(err); !ok || kind != KindExtractionFailed {
		t.Fatalf("error = %v, want KindExtractionFailed", err)
	}
}
