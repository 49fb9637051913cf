package vectordb

// FieldType indicates whether a field is internal (system-managed)
// or user-defined (stored under the backend's metadata prefix).
type FieldType int

const (
	// InternalField - system-managed fields stored at top-level
	InternalField FieldType = iota
	// UserField - user-defined fields stored under the metadata prefix
	UserField
)

// FilterCondition is the interface all filter conditions must implement.
// Each backend adapter converts these to its native filter format
// (boolean filter expressions for Zilliz/Milvus).
type FilterCondition interface {
	// IsFilterCondition is a marker method to ensure type safety
	IsFilterCondition()
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with QueryRequest.Filters to filter search results.
//
// Example:
//
//	filters := &FilterSet{
//	    Must: &ConditionSet{
//	        Conditions: []FilterCondition{
//	            &MatchCondition{Field: "app_id", Value: "demo"},
//	        },
//	    },
//	}
type FilterSet struct {
	// Must: All conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: At least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: None of the conditions should match (NOT)
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions,omitempty"`
}

// MatchCondition represents an exact match filter (WHERE field = value).
// Supports string, bool, and numeric values.
type MatchCondition struct {
	Field     string    `json:"field"`
	Value     any       `json:"equalTo"`
	FieldType FieldType `json:"-"`
}

func (c *MatchCondition) IsFilterCondition() {}

// MatchAnyCondition matches if value is one of the given values (IN operator).
// SQL equivalent: WHERE field IN (value1, value2, ...)
type MatchAnyCondition struct {
	Field     string    `json:"field"`
	Values    []any     `json:"anyOf"`
	FieldType FieldType `json:"-"`
}

func (c *MatchAnyCondition) IsFilterCondition() {}

// MatchExceptCondition matches if value is NOT one of the given values (NOT IN).
// SQL equivalent: WHERE field NOT IN (value1, value2, ...)
type MatchExceptCondition struct {
	Field     string    `json:"field"`
	Values    []any     `json:"noneOf"`
	FieldType FieldType `json:"-"`
}

func (c *MatchExceptCondition) IsFilterCondition() {}

// NumericRange defines bounds for numeric filtering.
// Used with NewNumericRange for cleaner constructor calls.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`          // GreaterThan (exclusive)
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"` // GreaterThanOrEqualTo (inclusive)
	Lt  *float64 `json:"lessThan,omitempty"`             // LessThan (exclusive)
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`    // LessThanOrEqualTo (inclusive)
}

// NumericRangeCondition filters on a numeric range. The range bounds are
// inlined in JSON so conditions stay flat ("greaterThan", "lessThan", ...).
// SQL equivalent: WHERE field >= min AND field <= max
type NumericRangeCondition struct {
	Field string `json:"field"`
	NumericRange
	FieldType FieldType `json:"-"`
}

func (c *NumericRangeCondition) IsFilterCondition() {}
