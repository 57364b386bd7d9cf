package cql2

// Expression is the root of every node in the AST. All concrete node
// types implement it; the narrower interfaces below constrain which
// expression kinds are accepted in a given grammatical position,
// mirroring the overlapping-context rules of the CQL2 data model
// rather than a class hierarchy.
type Expression interface {
	cql2Expression()
}

// BooleanExpression is anything that can stand in a boolean position:
// the literal Boolean, the logical combinators, every predicate, and
// (per the open question on function refs) a bare FunctionRef.
type BooleanExpression interface {
	Expression
	cql2Boolean()
}

// ScalarExpression is any of the leaf kinds: boolean,
// character, numeric, or a temporal instant, plus the ubiquitous
// PropertyRef/FunctionRef pair.
type ScalarExpression interface {
	Expression
	cql2Scalar()
}

// CharacterExpression is the left operand of LIKE and either operand
// of a string comparison: a literal string, a Casei/Accenti wrapper
// around one, or PropertyRef/FunctionRef.
type CharacterExpression interface {
	Expression
	cql2Character()
}

// PatternExpression is a LIKE pattern: a literal string or a
// Casei/Accenti wrapper. Unlike CharacterExpression, a bare
// PropertyRef or FunctionRef is not accepted here — only Like's left
// operand may be bare.
type PatternExpression interface {
	Expression
	cql2Pattern()
}

// NumericExpression is an Arithmetic node, a number literal, or
// PropertyRef/FunctionRef.
type NumericExpression interface {
	Expression
	cql2Numeric()
}

// TemporalExpression is an instant (date or timestamp), an interval,
// or PropertyRef/FunctionRef.
type TemporalExpression interface {
	Expression
	cql2Temporal()
}

// InstantExpression narrows TemporalExpression to a single point in
// time: Date or Timestamp.
type InstantExpression interface {
	TemporalExpression
	cql2Instant()
}

// SpatialExpression is a geometry literal, a bounding box, or
// PropertyRef/FunctionRef.
type SpatialExpression interface {
	Expression
	cql2Spatial()
}

// ArrayExpression is an array literal or PropertyRef/FunctionRef; it
// is the type of either operand of an array predicate.
type ArrayExpression interface {
	Expression
	cql2Array()
}

// ArrayItemExpression is anything that may appear inside an Array
// literal: any expression kind, including a nested Array.
type ArrayItemExpression interface {
	Expression
	cql2ArrayItem()
}

// Operator is a canonical, JSON-ready operator name. Every operator
// table below (comparison, arithmetic, spatial, temporal, array)
// shares this type so marshaling is free: the string form already is
// the wire form.
type Operator string

// Comparison operators.
const (
	Equals              Operator = "="
	NotEquals           Operator = "<>"
	LessThan            Operator = "<"
	LessThanOrEquals    Operator = "<="
	GreaterThan         Operator = ">"
	GreaterThanOrEquals Operator = ">="
	OpLike              Operator = "like"
	OpBetween           Operator = "between"
	OpIn                Operator = "in"
	OpIsNull            Operator = "isNull"
)

// Arithmetic operators.
const (
	OpAdd    Operator = "+"
	OpSub    Operator = "-"
	OpMul    Operator = "*"
	OpDiv    Operator = "/"
	OpPow    Operator = "^"
	OpMod    Operator = "%"
	OpIntDiv Operator = "div"
)

// Logical operators: the cql2-json "op" spellings the decoder
// dispatches on. And, Or and Not nodes carry no operator field; they
// are distinguished by Go type.
const (
	OpAnd Operator = "and"
	OpOr  Operator = "or"
	OpNot Operator = "not"
)

// And is a flattened conjunction of two or more boolean expressions.
// The AST builder flattens contiguous runs of AND at parse time; a
// run of length 1 collapses to its single child instead of producing
// an And node (see foldAnd in build.go).
type And struct {
	Args []BooleanExpression
}

// Or is a flattened disjunction of two or more boolean expressions.
type Or struct {
	Args []BooleanExpression
}

// Not wraps a single boolean expression. NOT LIKE/BETWEEN/IN/IS NULL
// all desugar to a Not wrapping the corresponding positive predicate.
type Not struct {
	Arg BooleanExpression
}

// NewAnd validates length ≥ 2 and returns an *And, mirroring the
// length invariant the grammar already enforces for AndOr nodes.
func NewAnd(args []BooleanExpression) (*And, error) {
	if len(args) < 2 {
		return nil, &ValidationError{Message: "and requires at least 2 arguments"}
	}
	return &And{Args: args}, nil
}

// NewOr validates length ≥ 2 and returns an *Or.
func NewOr(args []BooleanExpression) (*Or, error) {
	if len(args) < 2 {
		return nil, &ValidationError{Message: "or requires at least 2 arguments"}
	}
	return &Or{Args: args}, nil
}

func (*And) cql2Expression() {}
func (*And) cql2Boolean()    {}
func (*Or) cql2Expression()  {}
func (*Or) cql2Boolean()     {}
func (*Not) cql2Expression() {}
func (*Not) cql2Boolean()    {}

// Comparison is a binary scalar comparison: =, <>, <, <=, >, >=.
type Comparison struct {
	Name  Operator
	Left  ScalarExpression
	Right ScalarExpression
}

func (*Comparison) cql2Expression() {}
func (*Comparison) cql2Boolean()    {}

// Like matches Value against Pattern. Value may be a bare
// PropertyRef/FunctionRef; Pattern may not.
type Like struct {
	Value   CharacterExpression
	Pattern PatternExpression
}

func (*Like) cql2Expression() {}
func (*Like) cql2Boolean()    {}

// Between tests Value against the closed range [Low, High].
type Between struct {
	Value NumericExpression
	Low   NumericExpression
	High  NumericExpression
}

func (*Between) cql2Expression() {}
func (*Between) cql2Boolean()    {}

// In tests Item for membership in List. The grammar guarantees List
// is non-empty.
type In struct {
	Item ScalarExpression
	List []ScalarExpression
}

// NewIn validates the non-empty-list invariant.
func NewIn(item ScalarExpression, list []ScalarExpression) (*In, error) {
	if len(list) == 0 {
		return nil, &ValidationError{Message: "in requires a non-empty list"}
	}
	return &In{Item: item, List: list}, nil
}

func (*In) cql2Expression() {}
func (*In) cql2Boolean()    {}

// IsNull tests Value for nullity. Value is a bare expression (not a
// 1-tuple) in both the Go representation and the JSON encoding, per
// the Python reference implementation this was distilled from.
type IsNull struct {
	Value Expression
}

func (*IsNull) cql2Expression() {}
func (*IsNull) cql2Boolean()    {}

// Arithmetic is a binary numeric operation. Unary minus has no
// dedicated AST node; the builder desugars it into
// Arithmetic{OpMul, Number{-1}, operand}.
type Arithmetic struct {
	Name  Operator
	Left  NumericExpression
	Right NumericExpression
}

func (*Arithmetic) cql2Expression() {}
func (*Arithmetic) cql2Numeric()    {}
func (*Arithmetic) cql2Scalar()     {}

// Function is a named function invocation with zero or more argument
// expressions of any kind.
type Function struct {
	Name string
	Args []Expression
}

// FunctionRef wraps a Function so it can stand in any leaf position:
// scalar, character, numeric, temporal, spatial, array, and (per the
// open question on bare function refs in boolean position) boolean.
type FunctionRef struct {
	Function Function
}

func (*FunctionRef) cql2Expression() {}
func (*FunctionRef) cql2Boolean()    {}
func (*FunctionRef) cql2Scalar()     {}
func (*FunctionRef) cql2Character()  {}
func (*FunctionRef) cql2Numeric()    {}
func (*FunctionRef) cql2Temporal()   {}
func (*FunctionRef) cql2Instant()    {}
func (*FunctionRef) cql2Spatial()    {}
func (*FunctionRef) cql2Array()      {}
func (*FunctionRef) cql2ArrayItem()  {}

// PropertyRef is a reference to a named property. It is accepted in
// every leaf position except PatternExpression (only Like's Value
// operand may be a bare property); it is also not a BooleanExpression.
type PropertyRef struct {
	Property string
}

// NewPropertyRef validates that the property name is non-empty.
func NewPropertyRef(name string) (*PropertyRef, error) {
	if name == "" {
		return nil, &ValidationError{Message: "property name must not be empty"}
	}
	return &PropertyRef{Property: name}, nil
}

func (*PropertyRef) cql2Expression() {}
func (*PropertyRef) cql2Scalar()     {}
func (*PropertyRef) cql2Character()  {}
func (*PropertyRef) cql2Numeric()    {}
func (*PropertyRef) cql2Temporal()   {}
func (*PropertyRef) cql2Instant()    {}
func (*PropertyRef) cql2Spatial()    {}
func (*PropertyRef) cql2Array()      {}
func (*PropertyRef) cql2ArrayItem()  {}

// Property is a convenience constructor used throughout pkg/client
// and query/builder.go; it panics only if given an empty name, which
// would indicate a programming error at a call site rather than bad
// user input.
func Property(name string) *PropertyRef {
	p, err := NewPropertyRef(name)
	if err != nil {
		panic(err)
	}
	return p
}
