package cql2

import "fmt"

// RenderJSON encodes an AST node as the structured JSON value its
// cql2-json shape requires — a map[string]any/[]any/primitive tree
// ready for encoding/json.Marshal, not a string. It is total for any
// well-formed AST, mirroring ParseJSON's strictness on the way in.
func RenderJSON(e Expression) (any, error) {
	switch v := e.(type) {
	case *And:
		return opArgs("and", toExprSlice(v.Args))
	case *Or:
		return opArgs("or", toExprSlice(v.Args))
	case *Not:
		return opArgs("not", []Expression{v.Arg})
	case *Comparison:
		return opArgs(string(v.Name), []Expression{v.Left, v.Right})
	case *Like:
		return opArgs("like", []Expression{v.Value, v.Pattern})
	case *Between:
		return opArgs("between", []Expression{v.Value, v.Low, v.High})
	case *In:
		list, err := renderList(toExprSlice(v.List))
		if err != nil {
			return nil, err
		}
		item, err := RenderJSON(v.Item)
		if err != nil {
			return nil, err
		}
		return map[string]any{"op": "in", "args": []any{item, list}}, nil
	case *IsNull:
		arg, err := RenderJSON(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"op": "isNull", "args": arg}, nil
	case *Arithmetic:
		return opArgs(string(v.Name), []Expression{v.Left, v.Right})
	case *SpatialComparison:
		return opArgs(string(v.Name), []Expression{v.Left, v.Right})
	case *TemporalComparison:
		return opArgs(string(v.Name), []Expression{v.Left, v.Right})
	case *ArrayComparison:
		return opArgs(string(v.Name), []Expression{v.Left, v.Right})
	case *FunctionRef:
		fn := map[string]any{"name": v.Function.Name}
		if v.Function.Args != nil {
			args, err := renderList(v.Function.Args)
			if err != nil {
				return nil, err
			}
			fn["args"] = args
		}
		return map[string]any{"function": fn}, nil
	case *PropertyRef:
		return map[string]any{"property": v.Property}, nil
	case Boolean:
		return v.Value, nil
	case Number:
		if v.IsInt {
			return int64(v.Value), nil
		}
		return v.Value, nil
	case String:
		return v.Value, nil
	case *CaseiChar:
		inner, err := RenderJSON(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"casei": inner}, nil
	case *CaseiPattern:
		inner, err := RenderJSON(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"casei": inner}, nil
	case *AccentiChar:
		inner, err := RenderJSON(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"accenti": inner}, nil
	case *AccentiPattern:
		inner, err := RenderJSON(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"accenti": inner}, nil
	case Date:
		return map[string]any{"date": v.String()}, nil
	case Timestamp:
		return map[string]any{"timestamp": v.String()}, nil
	case *Interval:
		start, err := renderInstantJSON(v.Start)
		if err != nil {
			return nil, err
		}
		end, err := renderInstantJSON(v.End)
		if err != nil {
			return nil, err
		}
		return map[string]any{"interval": []any{start, end}}, nil
	case *Geometry:
		gj, err := v.GeoJSON()
		if err != nil {
			return nil, err
		}
		return gj, nil
	case *BoundingBox:
		bbox := make([]any, len(v.Extent))
		for i, n := range v.Extent {
			bbox[i] = n
		}
		return map[string]any{"bbox": bbox}, nil
	case Array:
		return renderList(toExprSlice(v))
	default:
		return nil, fmt.Errorf("cql2: RenderJSON: unsupported node %T", e)
	}
}

func opArgs(op string, args []Expression) (any, error) {
	list, err := renderList(args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"op": op, "args": list}, nil
}

func renderList(items []Expression) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		v, err := RenderJSON(item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// renderInstantJSON renders an interval endpoint: the bare string
// "..", a Date/Timestamp's canonical string form, or a property/
// function ref's object form, per spec.md's interval example.
func renderInstantJSON(e InstantExpression) (any, error) {
	if e == nil {
		return "..", nil
	}
	switch v := e.(type) {
	case Date:
		return v.String(), nil
	case Timestamp:
		return v.String(), nil
	default:
		return RenderJSON(v)
	}
}

func toExprSlice[T Expression](items []T) []Expression {
	out := make([]Expression, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
