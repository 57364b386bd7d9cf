package cql2

// Boolean is the literal TRUE/FALSE.
type Boolean struct {
	Value bool
}

func (Boolean) cql2Expression() {}
func (Boolean) cql2Boolean()    {}
func (Boolean) cql2Scalar()     {}
func (Boolean) cql2ArrayItem()  {}

// Number is the single numeric literal kind in the AST. IsInt records
// whether the JSON source (or a caller constructing the AST
// directly) spelled the value without a fractional part or exponent,
// so the JSON encoder can reproduce an integer literal rather than
// always emitting a float. The text parser applies the same rule:
// every cql2-text number becomes Number with IsInt computed from its
// lexeme.
type Number struct {
	Value float64
	IsInt bool
}

func (Number) cql2Expression() {}
func (Number) cql2Scalar()     {}
func (Number) cql2Numeric()    {}
func (Number) cql2ArrayItem()  {}

// Int constructs an integer Number literal.
func Int(v int64) Number { return Number{Value: float64(v), IsInt: true} }

// Float constructs a floating-point Number literal.
func Float(v float64) Number { return Number{Value: v, IsInt: false} }

// String is a literal character value. It satisfies both
// CharacterExpression and PatternExpression, since a bare string
// literal is valid in either position; only PropertyRef/FunctionRef
// are restricted to CharacterExpression.
type String struct {
	Value string
}

func (String) cql2Expression() {}
func (String) cql2Character()  {}
func (String) cql2Pattern()    {}
func (String) cql2Scalar()     {}
func (String) cql2ArrayItem()  {}

// CaseiChar wraps a CharacterExpression as case-insensitive.
type CaseiChar struct {
	Value CharacterExpression
}

func (*CaseiChar) cql2Expression() {}
func (*CaseiChar) cql2Character()  {}
func (*CaseiChar) cql2Scalar()     {}
func (*CaseiChar) cql2ArrayItem()  {}

// CaseiPattern wraps a PatternExpression as case-insensitive.
type CaseiPattern struct {
	Value PatternExpression
}

func (*CaseiPattern) cql2Expression() {}
func (*CaseiPattern) cql2Pattern()    {}

// AccentiChar wraps a CharacterExpression as accent-insensitive.
type AccentiChar struct {
	Value CharacterExpression
}

func (*AccentiChar) cql2Expression() {}
func (*AccentiChar) cql2Character()  {}
func (*AccentiChar) cql2Scalar()     {}
func (*AccentiChar) cql2ArrayItem()  {}

// AccentiPattern wraps a PatternExpression as accent-insensitive.
type AccentiPattern struct {
	Value PatternExpression
}

func (*AccentiPattern) cql2Expression() {}
func (*AccentiPattern) cql2Pattern()    {}
