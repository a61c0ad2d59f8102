package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go-compliance/internal/common/apperr"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestExporterCSV(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	payload, err := exporter.Export(sampleResult(), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if payload == nil {
		t.Fatal("Export() returned nil payload")
	}
	if payload.ContentType != "text/csv" {
		t.Errorf("ContentType = %q", payload.ContentType)
	}
	if payload.RecordCount != 3 {
		t.Errorf("RecordCount = %d, want 3", payload.RecordCount)
	}
	if !strings.HasPrefix(payload.Filename, "complaint-export_") || !strings.HasSuffix(payload.Filename, ".csv") {
		t.Errorf("Filename = %q", payload.Filename)
	}
}

func TestExporterEmptyResultIsNoop(t *testing.T) {
	exporter := NewExporter(zap.NewNop())
	empty := &Result{Title: "Nothing Matched", Columns: []string{"A"}, Records: nil}

	for _, format := range []string{FormatCSV, FormatXLSX, FormatPDF, FormatPDFImage} {
		payload, err := exporter.Export(empty, format, Options{})
		if err != nil {
			t.Errorf("format %s: error = %v, want nil", format, err)
		}
		if payload != nil {
			t.Errorf("format %s: payload = %v, want nil", format, payload)
		}
	}
}

func TestExporterUnknownFormat(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	_, err := exporter.Export(sampleResult(), "docx", Options{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type = %T, want *apperr.ValidationError", err)
	}
}

func TestPDFStrategiesProduceValidHeaders(t *testing.T) {
	result := sampleResult()
	result.Summary.Filters = []string{"priority equals High"}

	strategies := map[string]Strategy{
		FormatPDF:      &PDFTableStrategy{},
		FormatPDFImage: &PDFImageStrategy{},
	}
	for name, s := range strategies {
		data, err := s.Render(result, Options{IncludeSummary: true})
		if err != nil {
			t.Fatalf("%s Render() error: %v", name, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("%s output does not start with %%PDF header", name)
		}
		if s.ContentType() != "application/pdf" {
			t.Errorf("%s ContentType = %q", name, s.ContentType())
		}
		if s.Extension() != "pdf" {
			t.Errorf("%s Extension = %q", name, s.Extension())
		}
	}
}

func TestPDFTablePaginatesLongResults(t *testing.T) {
	long := &Result{
		Title:   "Long Export",
		Columns: []string{"ID", "Value"},
		Summary: &Summary{TotalRecords: 200, GeneratedAt: time.Now()},
	}
	for i := 0; i < 200; i++ {
		long.Records = append(long.Records, map[string]any{
			"ID":    float64(i),
			"Value": strings.Repeat("x", 40),
		})
	}

	var s PDFTableStrategy
	data, err := s.Render(long, Options{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	// 200 rows cannot fit on one A4 page
	if n := bytes.Count(data, []byte("/Type /Page")); n < 2 {
		t.Errorf("page objects = %d, want multi-page output", n)
	}
}

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a much longer cell value", 10, "a much ..."},
		{"abc", 2, "ab"},
		{"Müller Straße 12, Gebäude Süd", 10, "Müller ..."},
		{"日本語のテキストが長い場合", 8, "日本語のテ..."},
	}
	for _, tt := range tests {
		got := truncateCell(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncateCell(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateCell(%q, %d) produced invalid UTF-8", tt.in, tt.max)
		}
	}
}

func TestExcelStrategy(t *testing.T) {
	var s ExcelStrategy
	data, err := s.Render(sampleResult(), Options{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	// XLSX files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("xlsx output is not a zip archive")
	}
	if s.Extension() != "xlsx" {
		t.Errorf("Extension = %q", s.Extension())
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer book.Close()
	rows, err := book.GetRows("Report")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("sheet rows = %d, want header + 3 records", len(rows))
	}
	wantHeader := []string{"Complaint ID", "Reported By", "Details"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
}

func TestExportFilename(t *testing.T) {
	name := exportFilename("Open High-Priority Complaints", "pdf")
	if !strings.HasPrefix(name, "open-high-priority-complaints_") {
		t.Errorf("filename = %q", name)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("filename = %q", name)
	}

	if got := exportFilename("", "csv"); !strings.HasPrefix(got, "report_") {
		t.Errorf("empty title filename = %q", got)
	}
}
