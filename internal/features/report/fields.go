package report

import (
	"go-compliance/internal/features/catalog"
)

// AddField appends a selection for the given catalog field. Adding a
// field that is already selected is a no-op.
func (c *ReportConfig) AddField(field catalog.FieldDescriptor) {
	for _, f := range c.Fields {
		if f.FieldID == field.ID {
			return
		}
	}
	c.Fields = append(c.Fields, SelectedField{FieldID: field.ID, Label: field.Name})
}

// RemoveField drops the selection with the given id; absent ids are ignored.
func (c *ReportConfig) RemoveField(id string) {
	for i, f := range c.Fields {
		if f.FieldID == id {
			c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
			return
		}
	}
}

// MoveField moves the element at from to position to, preserving the
// relative order of all others. Out-of-range indexes are ignored.
func (c *ReportConfig) MoveField(from, to int) {
	n := len(c.Fields)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	f := c.Fields[from]
	rest := append(c.Fields[:from], c.Fields[from+1:]...)
	c.Fields = append(rest[:to], append([]SelectedField{f}, rest[to:]...)...)
}

// RenameField overwrites the output label. Empty labels are permitted;
// projection and export fall back to the field id.
func (c *ReportConfig) RenameField(id, label string) {
	for i := range c.Fields {
		if c.Fields[i].FieldID == id {
			c.Fields[i].Label = label
			return
		}
	}
}

// AvailableFields returns the catalog fields not yet selected, in
// catalog order. Always recomputed so it can never go stale.
func (c *ReportConfig) AvailableFields(source *catalog.DataSource) []catalog.FieldDescriptor {
	selected := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		selected[f.FieldID] = true
	}
	var out []catalog.FieldDescriptor
	for _, d := range source.Fields {
		if !selected[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// outputColumn is the projected row key for one selection.
func (f SelectedField) outputColumn() string {
	if f.Label != "" {
		return f.Label
	}
	return f.FieldID
}

// OutputColumns returns the projected row keys in selection order.
func (c *ReportConfig) OutputColumns() []string {
	cols := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		cols = append(cols, f.outputColumn())
	}
	return cols
}

// projectRecord builds the output row for one source record: keys are
// the chosen labels (field id when the label is empty), values come
// from the source field, nil when the record lacks the field.
func projectRecord(rec map[string]any, fields []SelectedField) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		val, ok := rec[f.FieldID]
		if !ok {
			out[f.outputColumn()] = nil
			continue
		}
		out[f.outputColumn()] = val
	}
	return out
}
