// Package cql2 implements a bidirectional translator between the two
// standard encodings of OGC Common Query Language 2: cql2-text and
// cql2-json. Both encodings converge on a single AST defined in this
// package; ParseText/RenderText and ParseJSON/RenderJSON move between
// the encodings and that AST.
//
// The package is purely syntactic: it does not evaluate expressions
// against data, generate SQL, or validate property names against a
// schema. GeoJSON construction and WKT rendering are delegated to
// github.com/paulmach/orb.
package cql2
