package report

import (
	"testing"

	"go-compliance/internal/features/catalog"
)

func TestAddFieldIsIdempotent(t *testing.T) {
	var cfg ReportConfig
	field := catalog.FieldDescriptor{ID: "owner_name", Name: "Owner Name", Type: catalog.FieldTypeString}

	cfg.AddField(field)
	cfg.AddField(field)

	if len(cfg.Fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(cfg.Fields))
	}
	if cfg.Fields[0].Label != "Owner Name" {
		t.Errorf("label = %q, want descriptor name", cfg.Fields[0].Label)
	}
}

func TestRemoveFieldAbsentIsNoop(t *testing.T) {
	cfg := ReportConfig{Fields: []SelectedField{{FieldID: "a", Label: "A"}}}
	cfg.RemoveField("ghost")
	if len(cfg.Fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(cfg.Fields))
	}
	cfg.RemoveField("a")
	if len(cfg.Fields) != 0 {
		t.Fatalf("fields = %d, want 0", len(cfg.Fields))
	}
}

func TestMoveFieldPreservesRelativeOrder(t *testing.T) {
	cfg := ReportConfig{Fields: []SelectedField{
		{FieldID: "a"}, {FieldID: "b"}, {FieldID: "c"}, {FieldID: "d"},
	}}

	cfg.MoveField(0, 2)

	got := make([]string, len(cfg.Fields))
	for i, f := range cfg.Fields {
		got[i] = f.FieldID
	}
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Out-of-range indexes are ignored
	cfg.MoveField(-1, 2)
	cfg.MoveField(0, 99)
	if cfg.Fields[0].FieldID != "b" {
		t.Errorf("out-of-range move mutated the list")
	}
}

func TestRenameFieldAllowsEmptyLabel(t *testing.T) {
	cfg := ReportConfig{Fields: []SelectedField{{FieldID: "owner_name", Label: "Owner"}}}

	cfg.RenameField("owner_name", "")
	if cfg.Fields[0].Label != "" {
		t.Errorf("label = %q, want empty", cfg.Fields[0].Label)
	}
	// Projection falls back to the field id
	if cols := cfg.OutputColumns(); cols[0] != "owner_name" {
		t.Errorf("output column = %q, want field id fallback", cols[0])
	}
}

func TestAvailableFieldsIsSetDifference(t *testing.T) {
	source := testSource()
	cfg := ReportConfig{Fields: []SelectedField{{FieldID: "name"}, {FieldID: "age"}}}

	available := cfg.AvailableFields(source)
	if len(available) != len(source.Fields)-2 {
		t.Fatalf("available = %d, want %d", len(available), len(source.Fields)-2)
	}
	for _, d := range available {
		if d.ID == "name" || d.ID == "age" {
			t.Errorf("selected field %q still offered as available", d.ID)
		}
	}

	// Recomputed after removal, never stale
	cfg.RemoveField("age")
	available = cfg.AvailableFields(source)
	found := false
	for _, d := range available {
		if d.ID == "age" {
			found = true
		}
	}
	if !found {
		t.Error("removed field should be available again")
	}
}

func TestProjectRecordUsesLabelThenID(t *testing.T) {
	fields := []SelectedField{
		{FieldID: "owner_name", Label: "Owner"},
		{FieldID: "units", Label: ""},
	}
	rec := map[string]any{"owner_name": "Maria Lopez", "units": float64(12), "extra": "dropped"}

	out := projectRecord(rec, fields)
	if out["Owner"] != "Maria Lopez" {
		t.Errorf(`out["Owner"] = %v, want Maria Lopez`, out["Owner"])
	}
	if _, ok := out["owner_name"]; ok {
		t.Error("raw field id must not appear when a label is set")
	}
	if out["units"] != float64(12) {
		t.Errorf(`out["units"] = %v, want 12`, out["units"])
	}
	if _, ok := out["extra"]; ok {
		t.Error("unselected fields must not be projected")
	}
}

func TestProjectRecordMissingFieldIsNil(t *testing.T) {
	fields := []SelectedField{{FieldID: "ghost", Label: "Ghost"}}
	out := projectRecord(map[string]any{}, fields)
	v, ok := out["Ghost"]
	if !ok {
		t.Fatal("projected key must exist even when the record lacks the field")
	}
	if v != nil {
		t.Errorf("value = %v, want nil", v)
	}
}

func TestSetDataSourceClearsSelections(t *testing.T) {
	cfg := ReportConfig{
		DataSource: "complaints",
		Fields:     []SelectedField{{FieldID: "a"}},
		Filters:    []FilterPredicate{{FieldID: "a", Operator: OpEquals, Value: "x"}},
	}

	cfg.SetDataSource("complaints") // same source keeps everything
	if len(cfg.Fields) != 1 || len(cfg.Filters) != 1 {
		t.Fatal("setting the same source must not clear selections")
	}

	cfg.SetDataSource("inspections")
	if len(cfg.Fields) != 0 || len(cfg.Filters) != 0 {
		t.Fatal("switching sources must clear fields and filters")
	}
}
