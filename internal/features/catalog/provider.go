package catalog

import (
	"context"

	"go-compliance/internal/common/apperr"
)

// SchemaProvider supplies data source schemas. The shipped implementation
// is the static in-process catalog; a deployment backed by a schema
// registry only needs to satisfy this interface.
type SchemaProvider interface {
	ListSources(ctx context.Context) ([]SourceSummary, error)
	GetSource(ctx context.Context, id string) (*DataSource, error)
}

// StaticProvider serves a fixed, ordered set of data sources.
type StaticProvider struct {
	sources []DataSource
	index   map[string]int
}

func NewStaticProvider(sources []DataSource) *StaticProvider {
	index := make(map[string]int, len(sources))
	for i, s := range sources {
		index[s.ID] = i
	}
	return &StaticProvider{sources: sources, index: index}
}

func (p *StaticProvider) ListSources(ctx context.Context) ([]SourceSummary, error) {
	summaries := make([]SourceSummary, 0, len(p.sources))
	for _, s := range p.sources {
		summaries = append(summaries, SourceSummary{ID: s.ID, Name: s.Name})
	}
	return summaries, nil
}

func (p *StaticProvider) GetSource(ctx context.Context, id string) (*DataSource, error) {
	i, ok := p.index[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	src := p.sources[i]
	return &src, nil
}

// NewMockProvider returns the provider used by the demo deployment and
// the test suite, serving the built-in compliance sources.
func NewMockProvider() SchemaProvider {
	return NewStaticProvider(MockSources())
}

// MockSources describes the built-in compliance data sources. The row
// data for them lives in the connectors package.
func MockSources() []DataSource {
	return []DataSource{
		{
			ID:          "complaints",
			Name:        "Complaints",
			Description: "Resident complaints filed against tracked properties",
			Fields: []FieldDescriptor{
				{ID: "complaint_id", Name: "Complaint ID", Type: FieldTypeString},
				{ID: "property_id", Name: "Property ID", Type: FieldTypeString},
				{ID: "complainant_name", Name: "Complainant Name", Type: FieldTypeString},
				{ID: "category", Name: "Category", Type: FieldTypeString,
					Options: []string{"Noise", "Sanitation", "Structural", "Heating", "Plumbing", "Other"}},
				{ID: "priority", Name: "Priority", Type: FieldTypeString,
					Options: []string{"Low", "Medium", "High", "Critical"}},
				{ID: "status", Name: "Status", Type: FieldTypeString,
					Options: []string{"Open", "In Progress", "Pending Review", "Closed", "Resolved"}},
				{ID: "created_date", Name: "Created Date", Type: FieldTypeDate},
				{ID: "days_open", Name: "Days Open", Type: FieldTypeNumber},
				{ID: "resolved", Name: "Resolved", Type: FieldTypeBoolean},
				{ID: "details", Name: "Details", Type: FieldTypeText, Description: "Free-form complaint narrative"},
			},
		},
		{
			ID:          "inspections",
			Name:        "Inspections",
			Description: "Scheduled and completed property inspections",
			Fields: []FieldDescriptor{
				{ID: "inspection_id", Name: "Inspection ID", Type: FieldTypeString},
				{ID: "property_id", Name: "Property ID", Type: FieldTypeString},
				{ID: "inspector", Name: "Inspector", Type: FieldTypeString},
				{ID: "score", Name: "Score", Type: FieldTypeNumber},
				{ID: "passed", Name: "Passed", Type: FieldTypeBoolean},
				{ID: "inspected_date", Name: "Inspected Date", Type: FieldTypeDate},
				{ID: "notes", Name: "Notes", Type: FieldTypeText},
			},
		},
		{
			ID:          "properties",
			Name:        "Properties",
			Description: "Registered properties under compliance tracking",
			Fields: []FieldDescriptor{
				{ID: "property_id", Name: "Property ID", Type: FieldTypeString},
				{ID: "address", Name: "Address", Type: FieldTypeString},
				{ID: "owner_name", Name: "Owner Name", Type: FieldTypeString},
				{ID: "units", Name: "Units", Type: FieldTypeNumber},
				{ID: "built_year", Name: "Built Year", Type: FieldTypeNumber},
				{ID: "active", Name: "Active", Type: FieldTypeBoolean},
			},
		},
	}
}
