package cql2

import "fmt"

// ParseError is returned when cql2-text fails to lex or parse. It
// carries the position participle reported. ParseText does not fill
// Expected; any expected-token detail participle reports is part of
// Message.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Expected string
	Message  string
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("cql2: parse error at line %d, column %d: %s (expected %s)", e.Line, e.Column, e.Message, e.Expected)
	}
	return fmt.Sprintf("cql2: parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ValidationError is returned when cql2-json fails to decode: wrong
// shape, unknown operator, wrong arity, missing or extraneous key,
// unexpected JSON type, out-of-range literal, or a kind mismatch
// (e.g. boolean where a number is required). Path records the
// sequence of object keys/array indices leading to the failure,
// innermost last.
type ValidationError struct {
	Path    []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("cql2: %s", e.Message)
	}
	path := e.Path[0]
	for _, p := range e.Path[1:] {
		path += "." + p
	}
	return fmt.Sprintf("cql2: at %s: %s", path, e.Message)
}

// withPath returns a copy of e with segment prepended to the path,
// innermost-first as the decoder unwinds back to the caller.
func (e *ValidationError) withPath(segment string) *ValidationError {
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, segment)
	path = append(path, e.Path...)
	return &ValidationError{Path: path, Message: e.Message}
}
