package cql2

import "encoding/json"

// Filter is the top-level cql2-json document: a single boolean
// expression with no extra wrapper keys. Its MarshalJSON/UnmarshalJSON
// pass straight through to the wrapped expression, so a *Filter can be
// embedded directly in a larger request body (e.g. the STAC
// `"filter"` field) without double-wrapping.
type Filter struct {
	Expression BooleanExpression
}

// MarshalJSON renders the filter's expression directly, with no
// {"Expression": ...} wrapper.
func (f *Filter) MarshalJSON() ([]byte, error) {
	if f == nil || f.Expression == nil {
		return []byte("null"), nil
	}
	v, err := RenderJSON(f.Expression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON parses raw cql2-json into f.Expression.
func (f *Filter) UnmarshalJSON(data []byte) error {
	expr, err := ParseJSON(data)
	if err != nil {
		return err
	}
	f.Expression = expr
	return nil
}
