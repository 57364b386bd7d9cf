package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/robert-malhotra/go-stac-client/pkg/cql2"
)

// Builder accumulates filter expressions in a fluent manner.
type Builder struct {
	expr cql2.BooleanExpression
}

// NewBuilder returns an empty Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where sets the expression if none exists or ANDs it with the current expression.
func (b *Builder) Where(expr cql2.Expression) *Builder {
	be := toBooleanExpression(expr)
	if be == nil {
		return b
	}
	if b.expr == nil {
		b.expr = be
		return b
	}
	b.expr = &cql2.And{Args: []cql2.BooleanExpression{b.expr, be}}
	return b
}

// And adds multiple expressions combined with logical AND.
func (b *Builder) And(exprs ...cql2.Expression) *Builder {
	args := make([]cql2.BooleanExpression, 0, len(exprs)+1)
	if b.expr != nil {
		args = append(args, b.expr)
	}
	for _, expr := range exprs {
		if be := toBooleanExpression(expr); be != nil {
			args = append(args, be)
		}
	}
	if len(args) == 0 {
		return b
	}
	if len(args) == 1 {
		b.expr = args[0]
		return b
	}
	b.expr = &cql2.And{Args: args}
	return b
}

// Or combines the current expression with the provided ones using logical OR.
func (b *Builder) Or(exprs ...cql2.Expression) *Builder {
	if b.expr == nil && len(exprs) == 0 {
		return b
	}
	args := make([]cql2.BooleanExpression, 0, len(exprs)+1)
	if b.expr != nil {
		args = append(args, b.expr)
	}
	for _, expr := range exprs {
		if be := toBooleanExpression(expr); be != nil {
			args = append(args, be)
		}
	}
	if len(args) == 0 {
		return b
	}
	if len(args) == 1 {
		b.expr = args[0]
		return b
	}
	b.expr = &cql2.Or{Args: args}
	return b
}

// Not negates the current expression.
func (b *Builder) Not() *Builder {
	if b.expr == nil {
		return b
	}
	b.expr = &cql2.Not{Arg: b.expr}
	return b
}

// Filter returns the built expression.
func (b *Builder) Filter() cql2.BooleanExpression {
	return b.expr
}

// Must returns the built expression or panics if it is empty.
func (b *Builder) Must() cql2.BooleanExpression {
	if b.expr == nil {
		panic("query builder: expression is empty")
	}
	return b.expr
}

// Property constructs a property expression builder.
func Property(name string) PropertyExpression {
	return PropertyExpression{property: cql2.Property(name)}
}

// PropertyExpression exposes fluent helpers for comparisons.
type PropertyExpression struct {
	property *cql2.PropertyRef
}

// Eq creates an equality predicate. Nil values generate an isNull expression.
func (p PropertyExpression) Eq(value any) cql2.BooleanExpression {
	if value == nil {
		return &cql2.IsNull{Value: p.property}
	}
	return &cql2.Comparison{
		Name:  cql2.Equals,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Neq creates an inequality predicate. Nil values generate a negated isNull expression.
func (p PropertyExpression) Neq(value any) cql2.BooleanExpression {
	if value == nil {
		return &cql2.Not{Arg: &cql2.IsNull{Value: p.property}}
	}
	return &cql2.Comparison{
		Name:  cql2.NotEquals,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Lt creates a less-than predicate.
func (p PropertyExpression) Lt(value any) cql2.BooleanExpression {
	return &cql2.Comparison{
		Name:  cql2.LessThan,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Lte creates a less-than-or-equal predicate.
func (p PropertyExpression) Lte(value any) cql2.BooleanExpression {
	return &cql2.Comparison{
		Name:  cql2.LessThanOrEquals,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Gt creates a greater-than predicate.
func (p PropertyExpression) Gt(value any) cql2.BooleanExpression {
	return &cql2.Comparison{
		Name:  cql2.GreaterThan,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Gte creates a greater-than-or-equal predicate.
func (p PropertyExpression) Gte(value any) cql2.BooleanExpression {
	return &cql2.Comparison{
		Name:  cql2.GreaterThanOrEquals,
		Left:  p.property,
		Right: toScalarExpression(value),
	}
}

// Like creates a pattern match predicate.
func (p PropertyExpression) Like(pattern string) cql2.BooleanExpression {
	return &cql2.Like{
		Value:   p.property,
		Pattern: cql2.String{Value: pattern},
	}
}

// In creates a set membership predicate.
func (p PropertyExpression) In(values ...any) cql2.BooleanExpression {
	if len(values) == 1 {
		if slice, ok := maybeSlice(values[0]); ok {
			values = slice
		}
	}
	list := make([]cql2.ScalarExpression, 0, len(values))
	for _, v := range values {
		expr := toScalarExpression(v)
		if expr == nil {
			continue
		}
		list = append(list, expr)
	}
	in, err := cql2.NewIn(p.property, list)
	if err != nil {
		panic(fmt.Errorf("query builder: %w", err))
	}
	return in
}

// Between constrains the property between the provided numeric bounds.
func (p PropertyExpression) Between(low, high any) cql2.BooleanExpression {
	return &cql2.Between{
		Value: p.property,
		Low:   toNumericExpression(low),
		High:  toNumericExpression(high),
	}
}

// IsNull creates an isNull predicate for the property.
func (p PropertyExpression) IsNull() cql2.BooleanExpression {
	return &cql2.IsNull{Value: p.property}
}

// IsNotNull creates a negated isNull predicate for the property.
func (p PropertyExpression) IsNotNull() cql2.BooleanExpression {
	return &cql2.Not{Arg: &cql2.IsNull{Value: p.property}}
}

// BBox builds a spatial intersects expression for the geometry property.
func BBox(minLon, minLat, maxLon, maxLat float64) cql2.BooleanExpression {
	return &cql2.SpatialComparison{
		Name:  cql2.GeometryIntersects,
		Left:  cql2.Property("geometry"),
		Right: &cql2.BoundingBox{Extent: []float64{minLon, minLat, maxLon, maxLat}},
	}
}

// Datetime builds a temporal intersects expression on the datetime property.
func Datetime(start, end time.Time) cql2.BooleanExpression {
	return Between("datetime", start, end)
}

// Between constrains a temporal property between the provided instants (inclusive).
func Between(property string, start, end time.Time) cql2.BooleanExpression {
	start, end = normalizeTimes(start, end)
	return &cql2.TemporalComparison{
		Name: cql2.TimeIntersects,
		Left: cql2.Property(property),
		Right: &cql2.Interval{
			Start: cql2.Timestamp{Value: start},
			End:   cql2.Timestamp{Value: end},
		},
	}
}

// Raw wraps a pre-built structure as a boolean expression. It panics if the value
// cannot be encoded or decoded into a valid filter expression.
func Raw(value any) cql2.BooleanExpression {
	data, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Errorf("query.Raw: %w", err))
	}
	var filter cql2.Filter
	if err := json.Unmarshal(data, &filter); err != nil {
		panic(fmt.Errorf("query.Raw: %w", err))
	}
	return filter.Expression
}

func toBooleanExpression(expr cql2.Expression) cql2.BooleanExpression {
	if expr == nil {
		return nil
	}
	be, ok := expr.(cql2.BooleanExpression)
	if !ok {
		panic("query builder: expression must be boolean")
	}
	return be
}

func toScalarExpression(value any) cql2.ScalarExpression {
	switch v := value.(type) {
	case nil:
		return nil
	case cql2.ScalarExpression:
		return v
	case PropertyExpression:
		return v.property
	case *cql2.PropertyRef:
		return v
	case string:
		return cql2.String{Value: v}
	case fmt.Stringer:
		return cql2.String{Value: v.String()}
	case bool:
		return cql2.Boolean{Value: v}
	case int:
		return cql2.Int(int64(v))
	case int8:
		return cql2.Int(int64(v))
	case int16:
		return cql2.Int(int64(v))
	case int32:
		return cql2.Int(int64(v))
	case int64:
		return cql2.Int(v)
	case uint:
		return cql2.Int(int64(v))
	case uint8:
		return cql2.Int(int64(v))
	case uint16:
		return cql2.Int(int64(v))
	case uint32:
		return cql2.Int(int64(v))
	case uint64:
		return cql2.Int(int64(v))
	case float32:
		return cql2.Float(float64(v))
	case float64:
		return cql2.Float(v)
	case time.Time:
		return cql2.Timestamp{Value: v}
	default:
		return cql2.String{Value: fmt.Sprint(value)}
	}
}

func toNumericExpression(value any) cql2.NumericExpression {
	expr := toScalarExpression(value)
	if expr == nil {
		return nil
	}
	numeric, ok := expr.(cql2.NumericExpression)
	if !ok {
		panic("query builder: expected numeric value")
	}
	return numeric
}

func normalizeTimes(start, end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		end = start
	}
	if start.IsZero() {
		start = end
	}
	if end.Before(start) {
		start, end = end, start
	}
	return start.UTC(), end.UTC()
}

func maybeSlice(value any) ([]any, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	length := rv.Len()
	out := make([]any, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, rv.Index(i).Interface())
	}
	return out, true
}
