package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-compliance/internal/common/apperr"
	"go-compliance/internal/features/catalog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Operator is a typed filter comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "notEquals"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "startsWith"
	OpEndsWith    Operator = "endsWith"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpBetween     Operator = "between"
	OpBefore      Operator = "before"
	OpAfter       Operator = "after"
)

// Range is the value shape of a between operator, inclusive both ends.
type Range struct {
	Min any `json:"min" bson:"min"`
	Max any `json:"max" bson:"max"`
}

// FilterPredicate is a single typed condition. Group and Logic are
// presentation-level tags used by the filter builder UI; evaluation
// combines every predicate with AND regardless of them.
type FilterPredicate struct {
	ID       string   `json:"id" bson:"id"`
	FieldID  string   `json:"field" bson:"field"` // may be empty while being edited
	Operator Operator `json:"operator" bson:"operator"`
	Value    any      `json:"value,omitempty" bson:"value,omitempty"`
	Group    int      `json:"group" bson:"group"`
	Logic    string   `json:"logic" bson:"logic"` // "AND" | "OR"
}

// operatorsByType fixes the legal operator set per field type.
var operatorsByType = map[catalog.FieldType][]Operator{
	catalog.FieldTypeString:  {OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith},
	catalog.FieldTypeText:    {OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith},
	catalog.FieldTypeNumber:  {OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpBetween},
	catalog.FieldTypeDate:    {OpEquals, OpNotEquals, OpBefore, OpAfter, OpBetween},
	catalog.FieldTypeBoolean: {OpEquals},
}

// placeholderOperators is offered while no field is selected yet.
var placeholderOperators = []Operator{OpEquals, OpNotEquals, OpContains}

// OperatorsFor returns the legal operator set for a field type. An
// empty type yields the placeholder set.
func OperatorsFor(t catalog.FieldType) []Operator {
	if ops, ok := operatorsByType[t]; ok {
		return ops
	}
	return placeholderOperators
}

func operatorLegal(t catalog.FieldType, op Operator) bool {
	for _, o := range OperatorsFor(t) {
		if o == op {
			return true
		}
	}
	return false
}

// NewFilterPredicate creates an empty predicate in the given group.
func NewFilterPredicate(group int) FilterPredicate {
	return FilterPredicate{
		ID:       uuid.NewString(),
		Operator: OpEquals,
		Group:    group,
		Logic:    "AND",
	}
}

// SetField changes the referenced field. The operator resets to equals
// and the value clears so no type-mismatched residue survives.
func (p *FilterPredicate) SetField(fieldID string) {
	p.FieldID = fieldID
	p.Operator = OpEquals
	p.Value = nil
}

// SetOperator changes the comparison and clears the value, since a
// scalar and a range are not interchangeable.
func (p *FilterPredicate) SetOperator(op Operator) {
	p.Operator = op
	p.Value = nil
}

// AddFilter appends an empty predicate to the given group and returns
// a pointer to it.
func (c *ReportConfig) AddFilter(group int) *FilterPredicate {
	c.Filters = append(c.Filters, NewFilterPredicate(group))
	return &c.Filters[len(c.Filters)-1]
}

// AddFilterGroup allocates the next group number and seeds it with one
// empty predicate.
func (c *ReportConfig) AddFilterGroup() int {
	group := 0
	for _, p := range c.Filters {
		if p.Group >= group {
			group = p.Group + 1
		}
	}
	c.AddFilter(group)
	return group
}

// RemoveFilter drops one predicate by id; absent ids are ignored.
func (c *ReportConfig) RemoveFilter(id string) {
	for i, p := range c.Filters {
		if p.ID == id {
			c.Filters = append(c.Filters[:i], c.Filters[i+1:]...)
			return
		}
	}
}

// RemoveFilterGroup drops every predicate tagged with the group.
// Removing the last group is legal and leaves an empty filter set,
// which passes every record.
func (c *ReportConfig) RemoveFilterGroup(group int) {
	kept := c.Filters[:0]
	for _, p := range c.Filters {
		if p.Group != group {
			kept = append(kept, p)
		}
	}
	c.Filters = kept
}

// FilterGroups returns the distinct group numbers in first-seen order.
func (c *ReportConfig) FilterGroups() []int {
	seen := make(map[int]bool)
	var groups []int
	for _, p := range c.Filters {
		if !seen[p.Group] {
			seen[p.Group] = true
			groups = append(groups, p.Group)
		}
	}
	return groups
}

// ValidateFilters checks every predicate that references a field
// against the source schema: the field must exist and the operator must
// belong to the legal set for its type.
func ValidateFilters(filters []FilterPredicate, source *catalog.DataSource) error {
	for _, p := range filters {
		if p.FieldID == "" {
			continue
		}
		desc := source.Field(p.FieldID)
		if desc == nil {
			return apperr.NewValidation("filters", fmt.Sprintf("unknown field %q", p.FieldID))
		}
		if !operatorLegal(desc.Type, p.Operator) {
			return &apperr.TypeMismatchError{
				FieldID:   p.FieldID,
				FieldType: string(desc.Type),
				Operator:  string(p.Operator),
			}
		}
	}
	return nil
}

// matchesAll reports whether the record satisfies every predicate.
// All groups are flattened into one AND; the group tags only drive the
// builder UI. Predicates still being edited (no field or no value) are
// skipped. An empty set passes everything.
func matchesAll(filters []FilterPredicate, source *catalog.DataSource, record map[string]any) bool {
	for _, p := range filters {
		if p.FieldID == "" || isEmptyValue(p.Value) {
			continue
		}
		desc := source.Field(p.FieldID)
		if desc == nil {
			continue
		}
		if !p.matches(desc.Type, record) {
			return false
		}
	}
	return true
}

func (p *FilterPredicate) matches(t catalog.FieldType, record map[string]any) bool {
	fieldValue, present := record[p.FieldID]

	switch p.Operator {
	case OpEquals:
		if !present {
			return false
		}
		return valuesEqual(t, fieldValue, p.Value)
	case OpNotEquals:
		if !present {
			return true
		}
		return !valuesEqual(t, fieldValue, p.Value)
	case OpContains, OpStartsWith, OpEndsWith:
		if !present {
			return false
		}
		have := strings.ToLower(coerceString(fieldValue))
		want := strings.ToLower(coerceString(p.Value))
		switch p.Operator {
		case OpStartsWith:
			return strings.HasPrefix(have, want)
		case OpEndsWith:
			return strings.HasSuffix(have, want)
		default:
			return strings.Contains(have, want)
		}
	case OpGreaterThan, OpLessThan:
		have, ok1 := coerceNumber(fieldValue)
		want, ok2 := coerceNumber(p.Value)
		if !ok1 || !ok2 {
			return false
		}
		if p.Operator == OpGreaterThan {
			return have > want
		}
		return have < want
	case OpBetween:
		min, max, ok := asRange(p.Value)
		if !ok {
			return false
		}
		if t == catalog.FieldTypeDate {
			have, ok1 := parseDate(fieldValue)
			lo, ok2 := parseDate(min)
			hi, ok3 := parseDate(max)
			if !ok1 || !ok2 || !ok3 {
				return false
			}
			return !have.Before(lo) && !have.After(hi)
		}
		have, ok1 := coerceNumber(fieldValue)
		lo, ok2 := coerceNumber(min)
		hi, ok3 := coerceNumber(max)
		if !ok1 || !ok2 || !ok3 {
			return false
		}
		return have >= lo && have <= hi
	case OpBefore, OpAfter:
		have, ok1 := parseDate(fieldValue)
		want, ok2 := parseDate(p.Value)
		if !ok1 || !ok2 {
			return false
		}
		if p.Operator == OpBefore {
			return have.Before(want)
		}
		return have.After(want)
	}
	return false
}

func valuesEqual(t catalog.FieldType, have, want any) bool {
	switch t {
	case catalog.FieldTypeNumber:
		h, ok1 := coerceNumber(have)
		w, ok2 := coerceNumber(want)
		return ok1 && ok2 && h == w
	case catalog.FieldTypeBoolean:
		h, ok1 := coerceBool(have)
		w, ok2 := coerceBool(want)
		return ok1 && ok2 && h == w
	case catalog.FieldTypeDate:
		h, ok1 := parseDate(have)
		w, ok2 := parseDate(want)
		return ok1 && ok2 && h.Equal(w)
	default:
		return coerceString(have) == coerceString(want)
	}
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	}
	return false
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(val)))
		return b, err == nil
	}
	return false, false
}

// parseDate interprets a value as a local calendar date. Timestamps are
// truncated to their date part so before/after stay calendar semantics.
func parseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return truncateDate(val), true
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, strings.TrimSpace(val)); err == nil {
				return truncateDate(t), true
			}
		}
	}
	return time.Time{}, false
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// asRange extracts the {min,max} pair of a between value. JSON and BSON
// decode it as a generic map, the builder API may hand over the struct.
func asRange(v any) (min, max any, ok bool) {
	switch val := v.(type) {
	case Range:
		return val.Min, val.Max, true
	case *Range:
		return val.Min, val.Max, true
	case map[string]any:
		return val["min"], val["max"], true
	case bson.M:
		return val["min"], val["max"], true
	case bson.D:
		m := val.Map()
		return m["min"], m["max"], true
	}
	return nil, nil, false
}

// Describe renders the predicate as "field operator value" for export
// summary blocks.
func (p *FilterPredicate) Describe(source *catalog.DataSource) string {
	name := p.FieldID
	if source != nil {
		if desc := source.Field(p.FieldID); desc != nil {
			name = desc.Name
		}
	}
	if min, max, ok := asRange(p.Value); ok {
		return fmt.Sprintf("%s %s %s and %s", name, p.Operator, coerceString(min), coerceString(max))
	}
	return fmt.Sprintf("%s %s %s", name, p.Operator, coerceString(p.Value))
}
