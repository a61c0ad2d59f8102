package catalog

// FieldType is the closed set of column types a data source can expose.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean:
		return true
	}
	return false
}

// FieldDescriptor is the schema metadata for one column of a data
// source. Immutable once loaded.
type FieldDescriptor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
	Options     []string  `json:"options,omitempty"` // Enumerated legal values, ordered
}

// DataSource is a named, schema-described record collection.
type DataSource struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Fields      []FieldDescriptor `json:"fields"`
}

// Field returns the descriptor with the given id, nil if absent.
func (d *DataSource) Field(id string) *FieldDescriptor {
	for i := range d.Fields {
		if d.Fields[i].ID == id {
			return &d.Fields[i]
		}
	}
	return nil
}

// SourceSummary is the listing shape for the source picker.
type SourceSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
