package cql2

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// -----------------------------------------------------------------------------
// Lexer
// -----------------------------------------------------------------------------

// wktNestRegex bounds WKT geometry literals to a fixed nesting depth
// (geometry collection of multi-geometries of rings is the deepest
// realistic case) so the lexer can capture a whole geometry literal
// as one token and hand it to orb's WKT decoder rather than hand-
// rolling coordinate-list parsing in the grammar itself.
func wktNestRegex(depth int) string {
	inner := `[^()]*`
	for i := 0; i < depth; i++ {
		inner = `(?:[^()]|\(` + inner + `\))*`
	}
	return inner
}

var cql2Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Geometry", Pattern: `(?i)(POINT|LINESTRING|POLYGON|MULTIPOINT|MULTILINESTRING|MULTIPOLYGON|GEOMETRYCOLLECTION)\s*\(` + wktNestRegex(5) + `\)`},
	{Name: "String", Pattern: `'(?:[^'\\]|''|\\.)*'`},
	{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`},
	{Name: "Punct", Pattern: `<>|<=|>=|\.\.|[(),.=<>^%*/+-]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_:.]*`},
})

var textParser = participle.MustBuild[orExpr](
	participle.Lexer(cql2Lexer),
	participle.CaseInsensitive("Ident"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// ParseText parses cql2-text into a BooleanExpression. Any lexer or
// grammar failure is returned as a *ParseError; there is no partial
// result.
func ParseText(text string) (BooleanExpression, error) {
	tree, err := textParser.ParseString("", text)
	if err != nil {
		return nil, wrapParseError(err)
	}
	expr, err := tree.ToAST()
	if err != nil {
		return nil, err
	}
	boolExpr, err := asBoolean(expr)
	if err != nil {
		return nil, err
	}
	return boolExpr, nil
}

func wrapParseError(err error) error {
	if pe, ok := err.(participle.Error); ok {
		pos := pe.Position()
		return &ParseError{
			Offset:  pos.Offset,
			Line:    pos.Line,
			Column:  pos.Column,
			Message: pe.Message(),
		}
	}
	return &ParseError{Message: err.Error()}
}

// -----------------------------------------------------------------------------
// Grammar: OR < AND < NOT < predicate < additive < multiplicative <
// power (right-assoc) < unary < primary. Each level is a struct with
// a Left operand and a repeated (operator, operand) tail, avoiding
// the left recursion participle (an LL parser) cannot express
// directly.
// -----------------------------------------------------------------------------

type orExpr struct {
	Left *andExpr   `parser:"@@"`
	Rest []*andExpr `parser:"('OR' @@)*"`
}

type andExpr struct {
	Left *notExpr   `parser:"@@"`
	Rest []*notExpr `parser:"('AND' @@)*"`
}

type notExpr struct {
	Not  *notExpr       `parser:"  'NOT' @@"`
	Pred *predicateExpr `parser:"| @@"`
}

// predicateExpr parses a scalar-ish additive expression and an
// optional comparison/LIKE/BETWEEN/IN/IS NULL suffix. When no suffix
// is present, the additive expression must itself resolve to a
// BooleanExpression (a literal boolean, a parenthesized boolean
// expression, a spatial/temporal/array predicate call, or a bare
// FunctionRef) — resolved in ToAST, not in the grammar, matching the
// "disjoint parser rules keep type selection unambiguous by context"
// guidance.
type predicateExpr struct {
	Left   *additiveExpr    `parser:"@@"`
	Suffix *predicateSuffix `parser:"@@?"`
}

type predicateSuffix struct {
	Compare *compareSuffix `parser:"(  @@"`
	Like    *likeSuffix    `parser:" | @@"`
	Between *betweenSuffix `parser:" | @@"`
	In      *inSuffix      `parser:" | @@"`
	IsNull  *isNullSuffix  `parser:" | @@)"`
}

type compareSuffix struct {
	Op    string        `parser:"@('<>' | '<=' | '>=' | '=' | '<' | '>')"`
	Right *additiveExpr `parser:"@@"`
}

type likeSuffix struct {
	Not     bool          `parser:"@'NOT'? 'LIKE'"`
	Pattern *additiveExpr `parser:"@@"`
}

type betweenSuffix struct {
	Not  bool          `parser:"@'NOT'? 'BETWEEN'"`
	Low  *additiveExpr `parser:"@@"`
	High *additiveExpr `parser:"'AND' @@"`
}

type inSuffix struct {
	Not  bool            `parser:"@'NOT'? 'IN'"`
	List []*additiveExpr `parser:"'(' @@ (',' @@)* ')'"`
}

type isNullSuffix struct {
	Not bool `parser:"'IS' @'NOT'? 'NULL'"`
}

type additiveExpr struct {
	Left *multiplicativeExpr   `parser:"@@"`
	Rest []*additiveExprRHS    `parser:"@@*"`
}

type additiveExprRHS struct {
	Op    string                `parser:"@('+' | '-')"`
	Right *multiplicativeExpr   `parser:"@@"`
}

type multiplicativeExpr struct {
	Left *powerExpr                `parser:"@@"`
	Rest []*multiplicativeExprRHS  `parser:"@@*"`
}

type multiplicativeExprRHS struct {
	Op    string     `parser:"@('*' | '/' | '%' | 'DIV')"`
	Right *powerExpr `parser:"@@"`
}

// powerExpr is right-associative: parse it by recursing on the
// right-hand side rather than accumulating a flat list.
type powerExpr struct {
	Left  *unaryExpr `parser:"@@"`
	Op    string     `parser:"(@'^'"`
	Right *powerExpr `parser:" @@)?"`
}

type unaryExpr struct {
	Neg     bool     `parser:"@'-'?"`
	Primary *primary `parser:"@@"`
}

// primary covers every leaf and bracketed form the grammar accepts.
// Alternatives are tried in order with backtracking; Call must be
// tried before PropertyRaw so "FOO(1,2)" isn't mistaken for the
// bare identifier "FOO" followed by a dangling "(1,2)".
type primary struct {
	Paren       *orExpr        `parser:"  '(' @@ ')'"`
	Geometry    *string        `parser:"| @Geometry"`
	True        *bool          `parser:"| @'TRUE'"`
	False       *bool          `parser:"| @'FALSE'"`
	DateLit     *string        `parser:"| 'DATE' '(' @String ')'"`
	TimestampL  *string        `parser:"| 'TIMESTAMP' '(' @String ')'"`
	Interval    *intervalExpr  `parser:"| @@"`
	Bbox        *bboxExpr      `parser:"| @@"`
	Casei       *wrapExpr      `parser:"| 'CASEI' '(' @@ ')'"`
	Accenti     *wrapExpr      `parser:"| 'ACCENTI' '(' @@ ')'"`
	Call        *callExpr      `parser:"| @@"`
	PropertyQ   *string        `parser:"| @QuotedIdent"`
	PropertyRaw *string        `parser:"| @Ident"`
	Number      *string        `parser:"| @Number"`
	Str         *string        `parser:"| @String"`
}

type wrapExpr struct {
	Inner *orExpr `parser:"@@"`
}

type callExpr struct {
	Name string    `parser:"@Ident"`
	Args []*orExpr `parser:"'(' (@@ (',' @@)*)? ')'"`
}

type intervalExpr struct {
	Start *intervalEndpoint `parser:"'INTERVAL' '(' @@"`
	End   *intervalEndpoint `parser:"',' @@ ')'"`
}

type intervalEndpoint struct {
	Open *string    `parser:"  @String"`
	Call *callExpr  `parser:"| @@"`
	Prop *string    `parser:"| @QuotedIdent"`
	Bare *string    `parser:"| @Ident"`
}

type bboxExpr struct {
	Nums []string `parser:"'BBOX' '(' @Number (',' @Number)* ')'"`
}

// -----------------------------------------------------------------------------
// ToAST: grammar tree -> AST, applying the canonicalizations of
// spec.md §4.3 (run-flattening, NOT-sugar desugaring, unary minus,
// operator case-folding, literal unescaping).
// -----------------------------------------------------------------------------

func (e *orExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	if len(e.Rest) == 0 {
		return left, nil
	}
	operands := []BooleanExpression{}
	leftBool, err := asBoolean(left)
	if err != nil {
		return nil, err
	}
	operands = append(operands, leftBool)
	for _, r := range e.Rest {
		v, err := r.ToAST()
		if err != nil {
			return nil, err
		}
		b, err := asBoolean(v)
		if err != nil {
			return nil, err
		}
		operands = append(operands, b)
	}
	return foldOr(operands), nil
}

func (e *andExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	if len(e.Rest) == 0 {
		return left, nil
	}
	operands := []BooleanExpression{}
	leftBool, err := asBoolean(left)
	if err != nil {
		return nil, err
	}
	operands = append(operands, leftBool)
	for _, r := range e.Rest {
		v, err := r.ToAST()
		if err != nil {
			return nil, err
		}
		b, err := asBoolean(v)
		if err != nil {
			return nil, err
		}
		operands = append(operands, b)
	}
	return foldAnd(operands), nil
}

func (e *notExpr) ToAST() (Expression, error) {
	if e.Not != nil {
		inner, err := e.Not.ToAST()
		if err != nil {
			return nil, err
		}
		b, err := asBoolean(inner)
		if err != nil {
			return nil, err
		}
		return negate(b), nil
	}
	return e.Pred.ToAST()
}

func (e *predicateExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	if e.Suffix == nil {
		return left, nil
	}

	var pred BooleanExpression
	switch {
	case e.Suffix.Compare != nil:
		rightExpr, err := e.Suffix.Compare.Right.ToAST()
		if err != nil {
			return nil, err
		}
		l, err := asScalar(left)
		if err != nil {
			return nil, err
		}
		r, err := asScalar(rightExpr)
		if err != nil {
			return nil, err
		}
		name, err := compareOperator(e.Suffix.Compare.Op)
		if err != nil {
			return nil, err
		}
		pred = &Comparison{Name: name, Left: l, Right: r}

	case e.Suffix.Like != nil:
		patExpr, err := e.Suffix.Like.Pattern.ToAST()
		if err != nil {
			return nil, err
		}
		val, err := asCharacter(left)
		if err != nil {
			return nil, err
		}
		pat, err := asPattern(patExpr)
		if err != nil {
			return nil, err
		}
		like := &Like{Value: val, Pattern: pat}
		if e.Suffix.Like.Not {
			pred = negate(like)
		} else {
			pred = like
		}

	case e.Suffix.Between != nil:
		loExpr, err := e.Suffix.Between.Low.ToAST()
		if err != nil {
			return nil, err
		}
		hiExpr, err := e.Suffix.Between.High.ToAST()
		if err != nil {
			return nil, err
		}
		val, err := asNumeric(left)
		if err != nil {
			return nil, err
		}
		lo, err := asNumeric(loExpr)
		if err != nil {
			return nil, err
		}
		hi, err := asNumeric(hiExpr)
		if err != nil {
			return nil, err
		}
		between := &Between{Value: val, Low: lo, High: hi}
		if e.Suffix.Between.Not {
			pred = negate(between)
		} else {
			pred = between
		}

	case e.Suffix.In != nil:
		item, err := asScalar(left)
		if err != nil {
			return nil, err
		}
		list := make([]ScalarExpression, 0, len(e.Suffix.In.List))
		for _, it := range e.Suffix.In.List {
			v, err := it.ToAST()
			if err != nil {
				return nil, err
			}
			sv, err := asScalar(v)
			if err != nil {
				return nil, err
			}
			list = append(list, sv)
		}
		in, err := NewIn(item, list)
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		if e.Suffix.In.Not {
			pred = negate(in)
		} else {
			pred = in
		}

	case e.Suffix.IsNull != nil:
		isNull := &IsNull{Value: left}
		if e.Suffix.IsNull.Not {
			pred = negate(isNull)
		} else {
			pred = isNull
		}
	}

	return pred, nil
}

func (e *additiveExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := r.Right.ToAST()
		if err != nil {
			return nil, err
		}
		l, err := asNumeric(left)
		if err != nil {
			return nil, err
		}
		rr, err := asNumeric(right)
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if r.Op == "-" {
			op = OpSub
		}
		left = &Arithmetic{Name: op, Left: l, Right: rr}
	}
	return left, nil
}

func (e *multiplicativeExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		right, err := r.Right.ToAST()
		if err != nil {
			return nil, err
		}
		l, err := asNumeric(left)
		if err != nil {
			return nil, err
		}
		rr, err := asNumeric(right)
		if err != nil {
			return nil, err
		}
		var op Operator
		switch strings.ToUpper(r.Op) {
		case "*":
			op = OpMul
		case "/":
			op = OpDiv
		case "%":
			op = OpMod
		case "DIV":
			op = OpIntDiv
		}
		left = &Arithmetic{Name: op, Left: l, Right: rr}
	}
	return left, nil
}

func (e *powerExpr) ToAST() (Expression, error) {
	left, err := e.Left.ToAST()
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := e.Right.ToAST()
	if err != nil {
		return nil, err
	}
	l, err := asNumeric(left)
	if err != nil {
		return nil, err
	}
	r, err := asNumeric(right)
	if err != nil {
		return nil, err
	}
	return &Arithmetic{Name: OpPow, Left: l, Right: r}, nil
}

func (e *unaryExpr) ToAST() (Expression, error) {
	v, err := e.Primary.ToAST()
	if err != nil {
		return nil, err
	}
	if !e.Neg {
		return v, nil
	}
	n, err := asNumeric(v)
	if err != nil {
		return nil, err
	}
	// Unary minus has no dedicated JSON form; desugar into
	// multiply-by-(-1), per spec.md §9 / cql2_transformer.py negative().
	return &Arithmetic{Name: OpMul, Left: Number{Value: -1, IsInt: true}, Right: n}, nil
}

func (e *primary) ToAST() (Expression, error) {
	switch {
	case e.Paren != nil:
		return e.Paren.ToAST()
	case e.Geometry != nil:
		return parseWKTLiteral(*e.Geometry)
	case e.True != nil:
		return Boolean{Value: true}, nil
	case e.False != nil:
		return Boolean{Value: false}, nil
	case e.DateLit != nil:
		d, err := ParseDate(unescapeCharLiteral(*e.DateLit))
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		return d, nil
	case e.TimestampL != nil:
		t, err := ParseTimestamp(normalizeTimestampText(unescapeCharLiteral(*e.TimestampL)))
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		return t, nil
	case e.Interval != nil:
		return e.Interval.ToAST()
	case e.Bbox != nil:
		return e.Bbox.ToAST()
	case e.Casei != nil:
		inner, err := e.Casei.Inner.ToAST()
		if err != nil {
			return nil, err
		}
		return &genericCasei{inner: inner}, nil
	case e.Accenti != nil:
		inner, err := e.Accenti.Inner.ToAST()
		if err != nil {
			return nil, err
		}
		return &genericAccenti{inner: inner}, nil
	case e.Call != nil:
		return e.Call.ToAST()
	case e.PropertyQ != nil:
		return NewPropertyRef(unescapeQuotedIdent(*e.PropertyQ))
	case e.PropertyRaw != nil:
		return NewPropertyRef(*e.PropertyRaw)
	case e.Number != nil:
		return parseNumber(*e.Number), nil
	case e.Str != nil:
		return String{Value: unescapeCharLiteral(*e.Str)}, nil
	}
	return nil, &ParseError{Message: "empty primary expression"}
}

func (e *intervalExpr) ToAST() (Expression, error) {
	start, err := e.Start.ToAST()
	if err != nil {
		return nil, err
	}
	end, err := e.End.ToAST()
	if err != nil {
		return nil, err
	}
	var startInst, endInst InstantExpression
	if start != nil {
		startInst, err = asInstant(start)
		if err != nil {
			return nil, err
		}
	}
	if end != nil {
		endInst, err = asInstant(end)
		if err != nil {
			return nil, err
		}
	}
	return &Interval{Start: startInst, End: endInst}, nil
}

func (e *intervalEndpoint) ToAST() (Expression, error) {
	switch {
	case e.Open != nil:
		lit := unescapeCharLiteral(*e.Open)
		if lit == ".." {
			return nil, nil
		}
		return parseInstantLiteral(lit)
	case e.Call != nil:
		return e.Call.ToAST()
	case e.Prop != nil:
		return NewPropertyRef(unescapeQuotedIdent(*e.Prop))
	case e.Bare != nil:
		return NewPropertyRef(*e.Bare)
	}
	return nil, &ParseError{Message: "empty interval endpoint"}
}

// parseInstantLiteral resolves a quoted interval-endpoint string to
// a Date or Timestamp by shape, matching pycql2's DATE/DATE_TIME
// dispatch in cql2_transformer.py.
func parseInstantLiteral(s string) (Expression, error) {
	if len(s) == len("2006-01-02") {
		d, err := ParseDate(s)
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		return d, nil
	}
	t, err := ParseTimestamp(normalizeTimestampText(s))
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	return t, nil
}

// normalizeTimestampText makes the timestamp end in an upper-case "Z"
// before it reaches ParseTimestamp: a trailing "z" is upper-cased and
// a timestamp with no trailing zone letter gets "Z" appended. The
// fractional-second part is left as written.
func normalizeTimestampText(s string) string {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return s[:len(s)-1] + "Z"
	}
	return s + "Z"
}

func (e *bboxExpr) ToAST() (Expression, error) {
	nums := make([]float64, 0, len(e.Nums))
	for _, n := range e.Nums {
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("invalid bbox number %q", n)}
		}
		nums = append(nums, v)
	}
	bb, err := NewBoundingBox(nums)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	return bb, nil
}

func (e *callExpr) ToAST() (Expression, error) {
	name := strings.ToUpper(e.Name)
	if isSpatialOperator(name) || isTemporalOperator(name) || isArrayOperator(name) {
		op, ok := lookupOperator(name)
		if !ok {
			return nil, &ParseError{Message: fmt.Sprintf("unknown operator %q", e.Name)}
		}
		if len(e.Args) != 2 {
			return nil, &ParseError{Message: fmt.Sprintf("%s requires exactly 2 arguments", e.Name)}
		}
		left, err := e.Args[0].ToAST()
		if err != nil {
			return nil, err
		}
		right, err := e.Args[1].ToAST()
		if err != nil {
			return nil, err
		}
		switch {
		case isSpatialOperator(name):
			l, err := asSpatial(left)
			if err != nil {
				return nil, err
			}
			r, err := asSpatial(right)
			if err != nil {
				return nil, err
			}
			return &SpatialComparison{Name: op, Left: l, Right: r}, nil
		case isTemporalOperator(name):
			l, err := asTemporal(left)
			if err != nil {
				return nil, err
			}
			r, err := asTemporal(right)
			if err != nil {
				return nil, err
			}
			return &TemporalComparison{Name: op, Left: l, Right: r}, nil
		default:
			l, err := asArray(left)
			if err != nil {
				return nil, err
			}
			r, err := asArray(right)
			if err != nil {
				return nil, err
			}
			return &ArrayComparison{Name: op, Left: l, Right: r}, nil
		}
	}

	args := make([]Expression, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := a.ToAST()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return &FunctionRef{Function: Function{Name: e.Name, Args: args}}, nil
}

func compareOperator(tok string) (Operator, error) {
	switch tok {
	case "=":
		return Equals, nil
	case "<>":
		return NotEquals, nil
	case "<":
		return LessThan, nil
	case "<=":
		return LessThanOrEquals, nil
	case ">":
		return GreaterThan, nil
	case ">=":
		return GreaterThanOrEquals, nil
	}
	return "", &ParseError{Message: fmt.Sprintf("unknown comparison operator %q", tok)}
}

func parseNumber(lexeme string) Number {
	isInt := !strings.ContainsAny(lexeme, ".eE")
	v, _ := strconv.ParseFloat(lexeme, 64)
	return Number{Value: v, IsInt: isInt}
}

func parseWKTLiteral(text string) (Expression, error) {
	geom, err := unmarshalWKT(text)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	return &Geometry{Value: geom}, nil
}
