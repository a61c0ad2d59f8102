package connectors

import (
	"context"
	"fmt"
	"time"

	"go-compliance/internal/common/apperr"
)

// MockConnector serves deterministic in-process rows for the built-in
// compliance sources. Row values are derived from the row index, so a
// test can compute expected filter counts without fixtures.
type MockConnector struct {
	rows map[string][]map[string]any
}

func NewMockConnector() Connector {
	return &MockConnector{
		rows: map[string][]map[string]any{
			"complaints":  mockComplaints(),
			"inspections": mockInspections(),
			"properties":  mockProperties(),
		},
	}
}

func (c *MockConnector) Connect(ctx context.Context, config map[string]interface{}) error {
	return nil
}

func (c *MockConnector) Disconnect(ctx context.Context) error { return nil }

func (c *MockConnector) TestConnection(ctx context.Context) error { return nil }

func (c *MockConnector) GetType() string { return "mock" }

func (c *MockConnector) Fetch(ctx context.Context, sourceID string) ([]map[string]any, error) {
	rows, ok := c.rows[sourceID]
	if !ok {
		return nil, fmt.Errorf("source %q: %w", sourceID, apperr.ErrNotFound)
	}
	// Copy the slice header so callers cannot reorder the shared backing store
	out := make([]map[string]any, len(rows))
	copy(out, rows)
	return out, nil
}

var (
	complainantNames = []string{
		"Maria Lopez", "James O'Brien", "Chen Wei", "Aisha Khan", "Peter Novak",
		"Linda Johnson", "Omar Haddad", "Yuki Tanaka", "Carlos Mendez", "Anna Kowalski",
	}
	complaintCategories = []string{"Noise", "Sanitation", "Structural", "Heating", "Plumbing", "Other"}
	complaintPriorities = []string{"Low", "Medium", "High", "Critical"}
	complaintStatuses   = []string{"Open", "In Progress", "Pending Review", "Closed", "Resolved"}
	inspectorNames      = []string{"R. Alvarez", "S. Kim", "D. Mueller", "T. Nguyen"}
)

func mockComplaints() []map[string]any {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]map[string]any, 0, 200)
	for i := 1; i <= 200; i++ {
		status := complaintStatuses[i%5]
		rows = append(rows, map[string]any{
			"complaint_id":     fmt.Sprintf("CMP-%04d", i),
			"property_id":      fmt.Sprintf("PRP-%03d", (i%40)+1),
			"complainant_name": complainantNames[i%10],
			"category":         complaintCategories[i%6],
			"priority":         complaintPriorities[i%4],
			"status":           status,
			"created_date":     base.AddDate(0, 0, i%180).Format("2006-01-02"),
			"days_open":        float64((i * 7) % 120),
			"resolved":         status == "Closed" || status == "Resolved",
			"details":          fmt.Sprintf("Reported issue #%d pending review by housing office", i),
		})
	}
	return rows
}

func mockInspections() []map[string]any {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]map[string]any, 0, 120)
	for i := 1; i <= 120; i++ {
		score := float64(55 + (i*13)%45)
		rows = append(rows, map[string]any{
			"inspection_id":  fmt.Sprintf("INS-%04d", i),
			"property_id":    fmt.Sprintf("PRP-%03d", (i%40)+1),
			"inspector":      inspectorNames[i%4],
			"score":          score,
			"passed":         score >= 70,
			"inspected_date": base.AddDate(0, 0, i%150).Format("2006-01-02"),
			"notes":          fmt.Sprintf("Routine inspection cycle %d", (i/40)+1),
		})
	}
	return rows
}

func mockProperties() []map[string]any {
	rows := make([]map[string]any, 0, 40)
	for i := 1; i <= 40; i++ {
		rows = append(rows, map[string]any{
			"property_id": fmt.Sprintf("PRP-%03d", i),
			"address":     fmt.Sprintf("%d Harbor Street", 100+i*3),
			"owner_name":  complainantNames[(i*3)%10],
			"units":       float64(4 + (i*5)%28),
			"built_year":  float64(1950 + (i*7)%70),
			"active":      i%7 != 0,
		})
	}
	return rows
}
