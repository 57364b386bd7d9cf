package cql2

import "fmt"

// genericCasei and genericAccenti hold the inner expression parsed
// from a CASEI(...)/ACCENTI(...) primary before its surrounding
// grammatical context (CharacterExpression vs PatternExpression) is
// known. asCharacter/asPattern resolve them to the concrete
// CaseiChar/CaseiPattern (or AccentiChar/AccentiPattern) variant,
// per the kind-parameter guidance in spec.md §9.
type genericCasei struct{ inner Expression }
type genericAccenti struct{ inner Expression }

func (*genericCasei) cql2Expression()   {}
func (*genericAccenti) cql2Expression() {}

// asBoolean coerces a generic parsed expression to BooleanExpression.
// A bare FunctionRef may stand in boolean position; a bare PropertyRef
// is not a BooleanExpression and is rejected.
func asBoolean(e Expression) (BooleanExpression, error) {
	switch v := e.(type) {
	case BooleanExpression:
		return v, nil
	default:
		return nil, typeErr("boolean", e)
	}
}

func asScalar(e Expression) (ScalarExpression, error) {
	switch v := e.(type) {
	case *genericCasei:
		inner, err := asCharacter(v.inner)
		if err != nil {
			return nil, err
		}
		return &CaseiChar{Value: inner}, nil
	case *genericAccenti:
		inner, err := asCharacter(v.inner)
		if err != nil {
			return nil, err
		}
		return &AccentiChar{Value: inner}, nil
	case ScalarExpression:
		return v, nil
	}
	return nil, typeErr("scalar", e)
}

func asNumeric(e Expression) (NumericExpression, error) {
	if v, ok := e.(NumericExpression); ok {
		return v, nil
	}
	return nil, typeErr("numeric", e)
}

func asCharacter(e Expression) (CharacterExpression, error) {
	switch v := e.(type) {
	case *genericCasei:
		inner, err := asCharacter(v.inner)
		if err != nil {
			return nil, err
		}
		return &CaseiChar{Value: inner}, nil
	case *genericAccenti:
		inner, err := asCharacter(v.inner)
		if err != nil {
			return nil, err
		}
		return &AccentiChar{Value: inner}, nil
	case CharacterExpression:
		return v, nil
	}
	return nil, typeErr("character", e)
}

func asPattern(e Expression) (PatternExpression, error) {
	switch v := e.(type) {
	case *genericCasei:
		inner, err := asPattern(v.inner)
		if err != nil {
			return nil, err
		}
		return &CaseiPattern{Value: inner}, nil
	case *genericAccenti:
		inner, err := asPattern(v.inner)
		if err != nil {
			return nil, err
		}
		return &AccentiPattern{Value: inner}, nil
	case *PropertyRef, *FunctionRef:
		return nil, typeErr("pattern (bare property/function not allowed)", e)
	case PatternExpression:
		return v, nil
	}
	return nil, typeErr("pattern", e)
}

func asTemporal(e Expression) (TemporalExpression, error) {
	if v, ok := e.(TemporalExpression); ok {
		return v, nil
	}
	return nil, typeErr("temporal", e)
}

func asInstant(e Expression) (InstantExpression, error) {
	if v, ok := e.(InstantExpression); ok {
		return v, nil
	}
	return nil, typeErr("temporal instant", e)
}

func asSpatial(e Expression) (SpatialExpression, error) {
	if v, ok := e.(SpatialExpression); ok {
		return v, nil
	}
	return nil, typeErr("spatial", e)
}

func asArray(e Expression) (ArrayExpression, error) {
	if v, ok := e.(ArrayExpression); ok {
		return v, nil
	}
	return nil, typeErr("array", e)
}

func asArrayItem(e Expression) (ArrayItemExpression, error) {
	if v, ok := e.(ArrayItemExpression); ok {
		return v, nil
	}
	return nil, typeErr("array element", e)
}

func typeErr(kind string, e Expression) error {
	return &ParseError{Message: fmt.Sprintf("expected %s expression, got %T", kind, e)}
}
