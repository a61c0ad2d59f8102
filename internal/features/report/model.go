package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectedField is one user-chosen output column. Position is implicit
// in the owning slice; Label defaults to the catalog field name and may
// be edited, including to empty (projection then falls back to the id).
type SelectedField struct {
	FieldID string `json:"field_id" bson:"field_id"`
	Label   string `json:"label" bson:"label"`
}

// ReportConfig is the in-progress, unsaved definition of a report.
type ReportConfig struct {
	Name        string            `json:"name" bson:"name"`
	Description string            `json:"description" bson:"description"`
	DataSource  string            `json:"data_source" bson:"data_source"`
	Fields      []SelectedField   `json:"fields" bson:"fields"`
	Filters     []FilterPredicate `json:"filters" bson:"filters"`
}

// SetDataSource switches the config to another source. Selected fields
// and filters reference field ids of the old source, so both are
// cleared; stale references are never valid across sources.
func (c *ReportConfig) SetDataSource(id string) {
	if c.DataSource == id {
		return
	}
	c.DataSource = id
	c.Fields = nil
	c.Filters = nil
}

// ReportDefinition is the persisted, identified form of a report config.
type ReportDefinition struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportConfig `bson:",inline"`
	CreatedBy    string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Pagination describes one page of a preview result.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ReportResult is one previewed page: projected rows keyed by the
// chosen labels. Recomputed on every call, never persisted.
type ReportResult struct {
	Records    []map[string]any `json:"records"`
	Pagination Pagination       `json:"pagination"`
}
