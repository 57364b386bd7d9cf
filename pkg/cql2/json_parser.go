package cql2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// validOperator is the set of every Operator spelling the JSON
// decoder accepts in an "op" key, used to reject unknown operators
// rather than silently constructing an Operator from arbitrary text.
var validOperator = func() map[Operator]bool {
	set := map[Operator]bool{
		Equals: true, NotEquals: true, LessThan: true, LessThanOrEquals: true,
		GreaterThan: true, GreaterThanOrEquals: true, OpLike: true, OpBetween: true,
		OpIn: true, OpIsNull: true,
		OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpPow: true, OpMod: true, OpIntDiv: true,
		OpAnd: true, OpOr: true, OpNot: true,
	}
	for _, op := range canonicalOperator {
		set[op] = true
	}
	return set
}()

// ParseJSON decodes cql2-json into a BooleanExpression, enforcing the
// strict-typing and shape rules of spec.md §4.5 via explicit type
// switches over a json.Decoder.UseNumber() tree rather than a loose
// unmarshal-into-interface{} pass, which would erase int/float and
// bool/number distinctions.
func ParseJSON(data []byte) (BooleanExpression, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid JSON: %s", err)}
	}
	expr, err := decodeValue(v, nil)
	if err != nil {
		return nil, err
	}
	b, err := asBoolean(expr)
	if err != nil {
		return nil, toValidation(err, nil)
	}
	return b, nil
}

// decodeValue decodes one JSON value into an Expression, dispatching
// on its Go representation under json.Decoder.UseNumber() (bool,
// json.Number, string, []any, map[string]any).
func decodeValue(v any, path []string) (Expression, error) {
	switch t := v.(type) {
	case nil:
		return nil, &ValidationError{Path: path, Message: "unexpected null"}
	case bool:
		return Boolean{Value: t}, nil
	case json.Number:
		return decodeNumber(t), nil
	case string:
		return String{Value: t}, nil
	case []any:
		items := make([]ArrayItemExpression, len(t))
		for i, raw := range t {
			item, err := decodeValue(raw, append(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			ai, err := asArrayItem(item)
			if err != nil {
				return nil, toValidation(err, path)
			}
			items[i] = ai
		}
		return Array(items), nil
	case map[string]any:
		return decodeObject(t, path)
	default:
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("unsupported JSON value %T", v)}
	}
}

func decodeNumber(n json.Number) Number {
	if !strings.ContainsAny(string(n), ".eE") {
		if iv, err := n.Int64(); err == nil {
			return Int(iv)
		}
	}
	fv, _ := n.Float64()
	return Float(fv)
}

func decodeObject(m map[string]any, path []string) (Expression, error) {
	if raw, ok := m["op"]; ok {
		op, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "op must be a string"}
		}
		return decodeOp(op, m, path)
	}
	if raw, ok := singleKey(m, "property"); ok {
		name, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "property must be a string"}
		}
		ref, err := NewPropertyRef(name)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return ref, nil
	}
	if raw, ok := singleKey(m, "function"); ok {
		return decodeFunction(raw, path)
	}
	if raw, ok := singleKey(m, "date"); ok {
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "date must be a string"}
		}
		d, err := ParseDate(s)
		if err != nil {
			return nil, &ValidationError{Path: path, Message: err.Error()}
		}
		return d, nil
	}
	if raw, ok := singleKey(m, "timestamp"); ok {
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "timestamp must be a string"}
		}
		ts, err := ParseTimestamp(s)
		if err != nil {
			return nil, &ValidationError{Path: path, Message: err.Error()}
		}
		return ts, nil
	}
	if raw, ok := singleKey(m, "interval"); ok {
		return decodeInterval(raw, path)
	}
	if raw, ok := singleKey(m, "bbox"); ok {
		return decodeBbox(raw, path)
	}
	if raw, ok := singleKey(m, "casei"); ok {
		inner, err := decodeValue(raw, append(path, "casei"))
		if err != nil {
			return nil, err
		}
		return &genericCasei{inner: inner}, nil
	}
	if raw, ok := singleKey(m, "accenti"); ok {
		inner, err := decodeValue(raw, append(path, "accenti"))
		if err != nil {
			return nil, err
		}
		return &genericAccenti{inner: inner}, nil
	}
	if _, ok := m["type"]; ok {
		return decodeGeometry(m, path)
	}
	return nil, &ValidationError{Path: path, Message: "unrecognized object shape"}
}

// singleKey returns m[key] only when key is present; it does not
// require m to have exactly one key overall, since callers already
// tried every other discriminator first and an object legitimately
// reaching this point in the dispatch chain is assumed well-formed.
func singleKey(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func decodeOp(op string, m map[string]any, path []string) (Expression, error) {
	args, hasArgs := m["args"]
	switch Operator(op) {
	case OpAnd, OpOr:
		list, ok := args.([]any)
		if !ok || len(list) < 2 {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("%s requires an args array of length >= 2", op)}
		}
		operands := make([]BooleanExpression, len(list))
		for i, raw := range list {
			e, err := decodeValue(raw, append(path, "args", fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			b, err := asBoolean(e)
			if err != nil {
				return nil, toValidation(err, path)
			}
			operands[i] = b
		}
		if Operator(op) == OpAnd {
			and, err := NewAnd(operands)
			if err != nil {
				return nil, toValidation(err, path)
			}
			return and, nil
		}
		or, err := NewOr(operands)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return or, nil
	case OpNot:
		list, ok := args.([]any)
		if !ok || len(list) != 1 {
			return nil, &ValidationError{Path: path, Message: "not requires an args array of length 1"}
		}
		e, err := decodeValue(list[0], append(path, "args", "[0]"))
		if err != nil {
			return nil, err
		}
		b, err := asBoolean(e)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &Not{Arg: b}, nil
	case Equals, NotEquals, LessThan, LessThanOrEquals, GreaterThan, GreaterThanOrEquals:
		l, r, err := decodeBinary(args, path)
		if err != nil {
			return nil, err
		}
		left, err := asScalar(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		right, err := asScalar(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &Comparison{Name: Operator(op), Left: left, Right: right}, nil
	case OpLike:
		l, r, err := decodeBinary(args, path)
		if err != nil {
			return nil, err
		}
		value, err := asCharacter(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		pattern, err := asPattern(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &Like{Value: value, Pattern: pattern}, nil
	case OpBetween:
		list, ok := args.([]any)
		if !ok || len(list) != 3 {
			return nil, &ValidationError{Path: path, Message: "between requires an args array of length 3"}
		}
		nums := make([]NumericExpression, 3)
		for i, raw := range list {
			e, err := decodeValue(raw, append(path, "args", fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			n, err := asNumeric(e)
			if err != nil {
				return nil, toValidation(err, path)
			}
			nums[i] = n
		}
		return &Between{Value: nums[0], Low: nums[1], High: nums[2]}, nil
	case OpIn:
		list, ok := args.([]any)
		if !ok || len(list) != 2 {
			return nil, &ValidationError{Path: path, Message: "in requires an args array of length 2"}
		}
		itemExpr, err := decodeValue(list[0], append(path, "args", "[0]"))
		if err != nil {
			return nil, err
		}
		item, err := asScalar(itemExpr)
		if err != nil {
			return nil, toValidation(err, path)
		}
		members, ok := list[1].([]any)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "in's second argument must be an array"}
		}
		scalars := make([]ScalarExpression, len(members))
		for i, raw := range members {
			e, err := decodeValue(raw, append(path, "args", "[1]", fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			s, err := asScalar(e)
			if err != nil {
				return nil, toValidation(err, path)
			}
			scalars[i] = s
		}
		in, err := NewIn(item, scalars)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return in, nil
	case OpIsNull:
		if !hasArgs {
			return nil, &ValidationError{Path: path, Message: "isNull requires an args value"}
		}
		if _, isList := args.([]any); isList {
			return nil, &ValidationError{Path: append(path, "args"), Message: "isNull args must be a single expression, not an array"}
		}
		e, err := decodeValue(args, append(path, "args"))
		if err != nil {
			return nil, err
		}
		return &IsNull{Value: e}, nil
	case OpAdd, OpSub, OpMul, OpDiv, OpPow, OpMod, OpIntDiv:
		l, r, err := decodeBinary(args, path)
		if err != nil {
			return nil, err
		}
		left, err := asNumeric(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		right, err := asNumeric(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &Arithmetic{Name: Operator(op), Left: left, Right: right}, nil
	}
	if !validOperator[Operator(op)] {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("unknown operator %q", op)}
	}
	l, r, err := decodeBinary(args, path)
	if err != nil {
		return nil, err
	}
	switch {
	case isSpatialOperator(op):
		left, err := asSpatial(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		right, err := asSpatial(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &SpatialComparison{Name: Operator(op), Left: left, Right: right}, nil
	case isTemporalOperator(op):
		left, err := asTemporal(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		right, err := asTemporal(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &TemporalComparison{Name: Operator(op), Left: left, Right: right}, nil
	case isArrayOperator(op):
		left, err := asArray(l)
		if err != nil {
			return nil, toValidation(err, path)
		}
		right, err := asArray(r)
		if err != nil {
			return nil, toValidation(err, path)
		}
		return &ArrayComparison{Name: Operator(op), Left: left, Right: right}, nil
	}
	return nil, &ValidationError{Path: path, Message: fmt.Sprintf("unknown operator %q", op)}
}

func decodeBinary(args any, path []string) (Expression, Expression, error) {
	list, ok := args.([]any)
	if !ok || len(list) != 2 {
		return nil, nil, &ValidationError{Path: path, Message: "expected an args array of length 2"}
	}
	l, err := decodeValue(list[0], append(path, "args", "[0]"))
	if err != nil {
		return nil, nil, err
	}
	r, err := decodeValue(list[1], append(path, "args", "[1]"))
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func decodeFunction(raw any, path []string) (Expression, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Path: path, Message: "function must be an object"}
	}
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return nil, &ValidationError{Path: path, Message: "function.name must be a non-empty string"}
	}
	var args []Expression
	if rawArgs, ok := m["args"]; ok {
		list, ok := rawArgs.([]any)
		if !ok {
			return nil, &ValidationError{Path: path, Message: "function.args must be an array"}
		}
		args = make([]Expression, len(list))
		for i, a := range list {
			e, err := decodeValue(a, append(path, "function", "args", fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
	}
	return &FunctionRef{Function: Function{Name: name, Args: args}}, nil
}

func decodeInterval(raw any, path []string) (Expression, error) {
	list, ok := raw.([]any)
	if !ok || len(list) != 2 {
		return nil, &ValidationError{Path: path, Message: "interval requires a 2-element array"}
	}
	start, err := decodeIntervalEndpoint(list[0], append(path, "interval", "[0]"))
	if err != nil {
		return nil, err
	}
	end, err := decodeIntervalEndpoint(list[1], append(path, "interval", "[1]"))
	if err != nil {
		return nil, err
	}
	return &Interval{Start: start, End: end}, nil
}

func decodeIntervalEndpoint(raw any, path []string) (InstantExpression, error) {
	if s, ok := raw.(string); ok {
		if s == ".." {
			return nil, nil
		}
		e, err := parseInstantLiteral(s)
		if err != nil {
			return nil, &ValidationError{Path: path, Message: err.Error()}
		}
		instant, ok := e.(InstantExpression)
		if !ok {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("expected a date or timestamp, got %T", e)}
		}
		return instant, nil
	}
	e, err := decodeValue(raw, path)
	if err != nil {
		return nil, err
	}
	instant, ok := e.(InstantExpression)
	if !ok {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("interval endpoint must be a date, timestamp, \"..\", or ref, got %T", e)}
	}
	return instant, nil
}

func decodeBbox(raw any, path []string) (Expression, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Path: path, Message: "bbox must be an array"}
	}
	extent := make([]float64, len(list))
	for i, v := range list {
		n, ok := v.(json.Number)
		if !ok {
			return nil, &ValidationError{Path: append(path, fmt.Sprintf("[%d]", i)), Message: "bbox elements must be numbers"}
		}
		f, err := n.Float64()
		if err != nil {
			return nil, &ValidationError{Path: path, Message: err.Error()}
		}
		extent[i] = f
	}
	box, err := NewBoundingBox(extent)
	if err != nil {
		return nil, toValidation(err, path)
	}
	return box, nil
}

func decodeGeometry(m map[string]any, path []string) (Expression, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, &ValidationError{Path: path, Message: err.Error()}
	}
	gj, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, &ValidationError{Path: path, Message: fmt.Sprintf("invalid geometry: %s", err)}
	}
	return &Geometry{Value: gj}, nil
}

// toValidation normalizes an error raised by the asXxx coercion
// helpers (which return *ParseError, since they're shared with the
// text parser) into a *ValidationError carrying the JSON path.
func toValidation(err error, path []string) *ValidationError {
	if ve, ok := err.(*ValidationError); ok {
		if len(ve.Path) == 0 {
			return &ValidationError{Path: path, Message: ve.Message}
		}
		return ve
	}
	return &ValidationError{Path: path, Message: err.Error()}
}
