package cql2

// Array comparison operators, canonical camelCase spelling.
const (
	ArrayEquals      Operator = "a_equals"
	ArrayContains    Operator = "a_contains"
	ArrayContainedBy Operator = "a_containedBy"
	ArrayOverlaps    Operator = "a_overlaps"
)

// Array is an ordered list literal. Each element may be any
// expression kind, including a nested Array. It satisfies both
// ArrayExpression (it can stand as an ArrayComparison operand) and
// ArrayItemExpression (it can nest inside another Array).
type Array []ArrayItemExpression

func (Array) cql2Expression() {}
func (Array) cql2Array()      {}
func (Array) cql2ArrayItem()  {}

// ArrayComparison is an A_* predicate comparing two array
// expressions (array literals or property/function refs).
type ArrayComparison struct {
	Name  Operator
	Left  ArrayExpression
	Right ArrayExpression
}

func (*ArrayComparison) cql2Expression() {}
func (*ArrayComparison) cql2Boolean()    {}
