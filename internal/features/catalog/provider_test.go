package catalog

import (
	"context"
	"testing"

	"go-compliance/internal/common/apperr"
)

func TestStaticProviderListOrder(t *testing.T) {
	provider := NewMockProvider()

	summaries, err := provider.ListSources(context.Background())
	if err != nil {
		t.Fatalf("ListSources() error: %v", err)
	}

	want := []string{"complaints", "inspections", "properties"}
	if len(summaries) != len(want) {
		t.Fatalf("len = %d, want %d", len(summaries), len(want))
	}
	for i, id := range want {
		if summaries[i].ID != id {
			t.Errorf("summaries[%d].ID = %q, want %q", i, summaries[i].ID, id)
		}
		if summaries[i].Name == "" {
			t.Errorf("summaries[%d].Name is empty", i)
		}
	}
}

func TestStaticProviderGetSource(t *testing.T) {
	provider := NewMockProvider()

	src, err := provider.GetSource(context.Background(), "complaints")
	if err != nil {
		t.Fatalf("GetSource() error: %v", err)
	}
	if src.Name != "Complaints" {
		t.Errorf("Name = %q", src.Name)
	}
	if len(src.Fields) == 0 {
		t.Fatal("source has no fields")
	}

	field := src.Field("priority")
	if field == nil {
		t.Fatal("Field(priority) = nil")
	}
	if field.Type != FieldTypeString {
		t.Errorf("priority type = %q", field.Type)
	}
	if len(field.Options) != 4 {
		t.Errorf("priority options = %v", field.Options)
	}

	if src.Field("no_such_field") != nil {
		t.Error("Field() for unknown id should be nil")
	}
}

func TestStaticProviderUnknownSource(t *testing.T) {
	provider := NewMockProvider()

	_, err := provider.GetSource(context.Background(), "permits")
	if !apperr.IsNotFound(err) {
		t.Errorf("error = %v, want not-found", err)
	}
}

func TestFieldTypeValid(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeString, FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean} {
		if !ft.Valid() {
			t.Errorf("%q should be valid", ft)
		}
	}
	if FieldType("geo").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestMockSourcesFieldTypesWellFormed(t *testing.T) {
	for _, src := range MockSources() {
		seen := make(map[string]bool)
		for _, f := range src.Fields {
			if seen[f.ID] {
				t.Errorf("%s: duplicate field id %q", src.ID, f.ID)
			}
			seen[f.ID] = true
			if !f.Type.Valid() {
				t.Errorf("%s.%s: invalid type %q", src.ID, f.ID, f.Type)
			}
		}
	}
}
