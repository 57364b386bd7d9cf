package cql2

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderText serializes an AST node back into cql2-text. It is the
// dual of ParseText up to the normalizations the builder already
// applied (operator case-folding, NOT-sugar desugaring, AND/OR
// flattening, unary-minus desugaring) — round-tripping through
// RenderText(ParseText(x)) reproduces the same AST, not necessarily
// the same bytes. Array literals are written as a parenthesized list
// "(a, b)"; ParseText has no grammar for array literals, so text
// holding one does not parse back.
func RenderText(e Expression) (string, error) {
	var b strings.Builder
	if err := renderText(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderText(b *strings.Builder, e Expression) error {
	switch v := e.(type) {
	case *And:
		return renderJoined(b, "AND", v.Args)
	case *Or:
		return renderJoined(b, "OR", v.Args)
	case *Not:
		b.WriteString("NOT (")
		if err := renderText(b, v.Arg); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	case *Comparison:
		return renderComparison(b, v.Left, string(v.Name), v.Right)
	case *Like:
		if err := renderText(b, v.Value); err != nil {
			return err
		}
		b.WriteString(" LIKE ")
		return renderText(b, v.Pattern)
	case *Between:
		if err := renderText(b, v.Value); err != nil {
			return err
		}
		b.WriteString(" BETWEEN ")
		if err := renderText(b, v.Low); err != nil {
			return err
		}
		b.WriteString(" AND ")
		return renderText(b, v.High)
	case *In:
		if err := renderText(b, v.Item); err != nil {
			return err
		}
		b.WriteString(" IN (")
		for i, item := range v.List {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := renderText(b, item); err != nil {
				return err
			}
		}
		b.WriteString(")")
		return nil
	case *IsNull:
		if err := renderText(b, v.Value); err != nil {
			return err
		}
		b.WriteString(" IS NULL")
		return nil
	case *Arithmetic:
		// Arithmetic{*, -1, x} is the desugared unary minus; write it
		// back as -x so it re-parses to the same node.
		if n, ok := v.Left.(Number); ok && v.Name == OpMul && n.IsInt && n.Value == -1 {
			b.WriteString("-")
			return renderText(b, v.Right)
		}
		return renderBinary(b, v.Left, string(v.Name), v.Right)
	case *SpatialComparison:
		return renderCall(b, string(v.Name), v.Left, v.Right)
	case *TemporalComparison:
		return renderCall(b, string(v.Name), v.Left, v.Right)
	case *ArrayComparison:
		return renderCall(b, string(v.Name), v.Left, v.Right)
	case *FunctionRef:
		return renderFunction(b, v.Function)
	case *PropertyRef:
		b.WriteString(`"`)
		b.WriteString(escapeQuotedIdent(v.Property))
		b.WriteString(`"`)
		return nil
	case Boolean:
		if v.Value {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
		return nil
	case Number:
		b.WriteString(renderNumber(v))
		return nil
	case String:
		b.WriteString("'")
		b.WriteString(escapeCharLiteral(v.Value))
		b.WriteString("'")
		return nil
	case *CaseiChar:
		return renderWrap(b, "CASEI", v.Value)
	case *CaseiPattern:
		return renderWrap(b, "CASEI", v.Value)
	case *AccentiChar:
		return renderWrap(b, "ACCENTI", v.Value)
	case *AccentiPattern:
		return renderWrap(b, "ACCENTI", v.Value)
	case Date:
		b.WriteString("DATE('")
		b.WriteString(v.String())
		b.WriteString("')")
		return nil
	case Timestamp:
		b.WriteString("TIMESTAMP('")
		b.WriteString(v.String())
		b.WriteString("')")
		return nil
	case *Interval:
		b.WriteString("INTERVAL(")
		if err := renderInstant(b, v.Start); err != nil {
			return err
		}
		b.WriteString(", ")
		if err := renderInstant(b, v.End); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	case *Geometry:
		wkt, err := v.WKT()
		if err != nil {
			return err
		}
		b.WriteString(wkt)
		return nil
	case *BoundingBox:
		b.WriteString("BBOX(")
		for i, n := range v.Extent {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(n, 'f', -1, 64))
		}
		b.WriteString(")")
		return nil
	case Array:
		b.WriteString("(")
		for i, item := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := renderText(b, item); err != nil {
				return err
			}
		}
		b.WriteString(")")
		return nil
	default:
		return fmt.Errorf("cql2: RenderText: unsupported node %T", e)
	}
}

func renderJoined(b *strings.Builder, op string, args []BooleanExpression) error {
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(op)
			b.WriteString(" ")
		}
		if err := renderText(b, a); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

// renderBinary renders an Arithmetic node as (<lhs> <op> <rhs>).
// spec.md §4.4 parenthesizes arithmetic so it nests unambiguously
// inside a comparison; see renderComparison for the unparenthesized
// comparison form.
func renderBinary(b *strings.Builder, left Expression, op string, right Expression) error {
	b.WriteString("(")
	if err := renderText(b, left); err != nil {
		return err
	}
	b.WriteString(" ")
	b.WriteString(op)
	b.WriteString(" ")
	if err := renderText(b, right); err != nil {
		return err
	}
	b.WriteString(")")
	return nil
}

// renderComparison renders a Comparison node as <lhs> <op> <rhs>, with
// no outer parens.
func renderComparison(b *strings.Builder, left Expression, op string, right Expression) error {
	if err := renderText(b, left); err != nil {
		return err
	}
	b.WriteString(" ")
	b.WriteString(op)
	b.WriteString(" ")
	return renderText(b, right)
}

// renderCall renders a spatial/temporal/array predicate as
// OP(left, right), with OP upper-cased back to its OGC text spelling.
func renderCall(b *strings.Builder, name string, left, right Expression) error {
	b.WriteString(strings.ToUpper(name))
	b.WriteString("(")
	if err := renderText(b, left); err != nil {
		return err
	}
	b.WriteString(", ")
	if err := renderText(b, right); err != nil {
		return err
	}
	b.WriteString(")")
	return nil
}

func renderFunction(b *strings.Builder, fn Function) error {
	b.WriteString(fn.Name)
	b.WriteString("(")
	for i, arg := range fn.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := renderText(b, arg); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

func renderWrap(b *strings.Builder, name string, inner Expression) error {
	b.WriteString(name)
	b.WriteString("(")
	if err := renderText(b, inner); err != nil {
		return err
	}
	b.WriteString(")")
	return nil
}

// renderInstant renders an interval endpoint, treating a nil value as
// the open ".." marker. Date and Timestamp endpoints are written as
// bare quoted strings, the form the INTERVAL endpoint grammar reads.
func renderInstant(b *strings.Builder, e InstantExpression) error {
	switch v := e.(type) {
	case nil:
		b.WriteString("'..'")
		return nil
	case Date:
		b.WriteString("'" + v.String() + "'")
		return nil
	case Timestamp:
		b.WriteString("'" + v.String() + "'")
		return nil
	}
	return renderText(b, e)
}

// renderNumber writes a non-integer Number with a fractional part or
// exponent even when its value is whole, so it re-parses with IsInt
// false.
func renderNumber(n Number) string {
	if n.IsInt {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// escapeCharLiteral doubles every single quote, the emitter's
// canonical escaping convention regardless of how the source was
// spelled (see unescapeCharLiteral in build.go for the accepted input
// forms).
func escapeCharLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// escapeQuotedIdent doubles every embedded double quote.
func escapeQuotedIdent(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
