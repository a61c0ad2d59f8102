package report

import (
	"context"
	"errors"
	"testing"

	"go-compliance/internal/common/apperr"
	"go-compliance/internal/connectors"
	"go-compliance/internal/features/audit"
	"go-compliance/internal/features/catalog"
	"go-compliance/internal/features/export"

	"go.uber.org/zap"
)

type nopAudit struct{}

func (nopAudit) LogChange(ctx context.Context, action audit.AuditAction, entity, recordID, actorID string, changes map[string]audit.Change) error {
	return nil
}

func newTestService(t *testing.T) (ReportService, connectors.RecordFetcher) {
	t.Helper()
	logger := zap.NewNop()
	fetcher := connectors.NewMockConnector()
	svc := NewReportService(
		NewMemoryRepository(),
		catalog.NewCatalogService(catalog.NewMockProvider(), logger),
		fetcher,
		export.NewExporter(logger),
		nopAudit{},
		logger,
	)
	return svc, fetcher
}

func complaintsConfig() *ReportConfig {
	return &ReportConfig{
		Name:       "Complaints Overview",
		DataSource: "complaints",
		Fields: []SelectedField{
			{FieldID: "complaint_id", Label: "Complaint ID"},
			{FieldID: "property_id", Label: "Property"},
			{FieldID: "complainant_name", Label: "Reported By"},
		},
	}
}

func TestPreviewNoFiltersReturnsEverything(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Preview(context.Background(), complaintsConfig(), 1, 50)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}

	if result.Pagination.Total != 200 {
		t.Errorf("total = %d, want 200", result.Pagination.Total)
	}
	if result.Pagination.TotalPages != 4 {
		t.Errorf("totalPages = %d, want 4", result.Pagination.TotalPages)
	}
	if len(result.Records) != 50 {
		t.Errorf("records = %d, want 50", len(result.Records))
	}
}

func TestPreviewPageBeyondEnd(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Preview(context.Background(), complaintsConfig(), 5, 50)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("records = %d, want 0 past the last page", len(result.Records))
	}
	if result.Pagination.Total != 200 {
		t.Errorf("total = %d, want 200", result.Pagination.Total)
	}
}

func TestPreviewRejectsBadPaging(t *testing.T) {
	svc, _ := newTestService(t)
	var valErr *apperr.ValidationError

	_, err := svc.Preview(context.Background(), complaintsConfig(), 1, 0)
	if !errors.As(err, &valErr) {
		t.Errorf("limit=0: expected ValidationError, got %v", err)
	}
	_, err = svc.Preview(context.Background(), complaintsConfig(), 0, 50)
	if !errors.As(err, &valErr) {
		t.Errorf("page=0: expected ValidationError, got %v", err)
	}
}

func TestPreviewValidatesConfig(t *testing.T) {
	svc, _ := newTestService(t)
	var valErr *apperr.ValidationError

	tests := []struct {
		name string
		cfg  ReportConfig
	}{
		{"missing name", ReportConfig{DataSource: "complaints", Fields: []SelectedField{{FieldID: "a"}}}},
		{"missing source", ReportConfig{Name: "X", Fields: []SelectedField{{FieldID: "a"}}}},
		{"no fields", ReportConfig{Name: "X", DataSource: "complaints"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Preview(context.Background(), &tt.cfg, 1, 50)
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestPreviewUnknownSource(t *testing.T) {
	svc, _ := newTestService(t)
	cfg := complaintsConfig()
	cfg.DataSource = "ghost"

	_, err := svc.Preview(context.Background(), cfg, 1, 50)
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPreviewEndToEndComplaintsScenario(t *testing.T) {
	svc, fetcher := newTestService(t)

	cfg := complaintsConfig()
	p := cfg.AddFilter(0)
	p.SetField("priority")
	p.Value = "High"
	p = cfg.AddFilter(0)
	p.SetField("status")
	p.SetOperator(OpNotEquals)
	p.Value = "Closed"

	// Expected count straight from the raw rows
	raw, err := fetcher.Fetch(context.Background(), "complaints")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	want := 0
	for _, rec := range raw {
		if rec["priority"] == "High" && rec["status"] != "Closed" {
			want++
		}
	}
	if want == 0 {
		t.Fatal("mock data should contain matching rows")
	}

	result, err := svc.Preview(context.Background(), cfg, 1, 50)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if result.Pagination.Total != want {
		t.Errorf("total = %d, want %d", result.Pagination.Total, want)
	}

	// Walk every page and re-check both conditions on raw rows by id
	byID := make(map[string]map[string]any, len(raw))
	for _, rec := range raw {
		byID[rec["complaint_id"].(string)] = rec
	}
	seen := 0
	for page := 1; page <= result.Pagination.TotalPages; page++ {
		pageResult, err := svc.Preview(context.Background(), cfg, page, 50)
		if err != nil {
			t.Fatalf("Preview(page=%d) error: %v", page, err)
		}
		for _, row := range pageResult.Records {
			seen++
			src := byID[row["Complaint ID"].(string)]
			if src["priority"] != "High" {
				t.Errorf("row %v has priority %v, want High", row["Complaint ID"], src["priority"])
			}
			if src["status"] == "Closed" {
				t.Errorf("row %v is Closed", row["Complaint ID"])
			}
		}
	}
	if seen != want {
		t.Errorf("walked %d rows across pages, want %d", seen, want)
	}
}

func TestPreviewProjectionKeys(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Preview(context.Background(), complaintsConfig(), 1, 1)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	row := result.Records[0]
	for _, key := range []string{"Complaint ID", "Property", "Reported By"} {
		if _, ok := row[key]; !ok {
			t.Errorf("projected row missing label key %q", key)
		}
	}
	if _, ok := row["complaint_id"]; ok {
		t.Error("raw field id leaked into projected row")
	}
	if len(row) != 3 {
		t.Errorf("projected row has %d keys, want 3", len(row))
	}
}

func TestPreviewRejectsIllegalOperator(t *testing.T) {
	svc, _ := newTestService(t)

	cfg := complaintsConfig()
	cfg.Filters = []FilterPredicate{
		{ID: "x", FieldID: "resolved", Operator: OpContains, Value: "tru"},
	}

	_, err := svc.Preview(context.Background(), cfg, 1, 50)
	var typeErr *apperr.TypeMismatchError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}
}

func TestExportEmptyResultIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	cfg := complaintsConfig()
	p := cfg.AddFilter(0)
	p.SetField("priority")
	p.Value = "Nonexistent"

	payload, err := svc.Export(context.Background(), cfg, "csv", "tester")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if payload != nil {
		t.Errorf("payload = %v, want nil for empty result set", payload)
	}
}

func TestExportCSVPayload(t *testing.T) {
	svc, _ := newTestService(t)

	payload, err := svc.Export(context.Background(), complaintsConfig(), "csv", "tester")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if payload == nil {
		t.Fatal("expected payload")
	}
	if payload.RecordCount != 200 {
		t.Errorf("record count = %d, want 200", payload.RecordCount)
	}
	if payload.ContentType != "text/csv" {
		t.Errorf("content type = %q", payload.ContentType)
	}
	if payload.Filename == "" {
		t.Error("expected a timestamped filename")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Export(context.Background(), complaintsConfig(), "docx", "tester")
	var valErr *apperr.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
