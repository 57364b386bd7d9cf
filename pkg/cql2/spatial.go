package cql2

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// Spatial comparison operators, canonical lowercase s_ spelling.
const (
	GeometryIntersects Operator = "s_intersects"
	GeometryEquals     Operator = "s_equals"
	GeometryDisjoint   Operator = "s_disjoint"
	GeometryTouches    Operator = "s_touches"
	GeometryWithin     Operator = "s_within"
	GeometryOverlaps   Operator = "s_overlaps"
	GeometryCrosses    Operator = "s_crosses"
	GeometryContains   Operator = "s_contains"
)

// Geometry is a GeoJSON geometry literal. Value is either an
// orb.Geometry / *geojson.Geometry (constructed via the helpers in
// pkg/client) or a raw map[string]any decoded straight off the wire —
// both are accepted since the collaborator library's job is only to
// validate and render, not to own the in-memory representation.
type Geometry struct {
	Value any
}

func (*Geometry) cql2Expression() {}
func (*Geometry) cql2Spatial()    {}
func (*Geometry) cql2ArrayItem()  {}

// orbGeometry resolves Value to an orb.Geometry, decoding a raw
// GeoJSON map if that's what was stored.
func (g *Geometry) orbGeometry() (orb.Geometry, error) {
	switch v := g.Value.(type) {
	case orb.Geometry:
		return v, nil
	case *geojson.Geometry:
		return v.Geometry(), nil
	case geojson.Geometry:
		return v.Geometry(), nil
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		gj, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("cql2: invalid geometry: %w", err)
		}
		return gj.Geometry(), nil
	default:
		return nil, fmt.Errorf("cql2: unsupported geometry value %T", v)
	}
}

// WKT renders the geometry using the orb WKT encoder, the collaborator
// the text emitter delegates to for every geometry literal.
func (g *Geometry) WKT() (string, error) {
	geom, err := g.orbGeometry()
	if err != nil {
		return "", err
	}
	return wkt.MarshalString(geom), nil
}

// GeoJSON renders the geometry as a *geojson.Geometry, validating it
// in the process.
func (g *Geometry) GeoJSON() (*geojson.Geometry, error) {
	geom, err := g.orbGeometry()
	if err != nil {
		return nil, err
	}
	return geojson.NewGeometry(geom), nil
}

// unmarshalWKT decodes a WKT geometry literal lexed as a single
// token (see wktNestRegex in text_parser.go) via orb's WKT decoder.
func unmarshalWKT(text string) (orb.Geometry, error) {
	geom, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("invalid WKT geometry: %w", err)
	}
	return geom, nil
}

// BoundingBox is BBOX(n,n,n,n[,n,n]): a 4- or 6-number tuple.
type BoundingBox struct {
	Extent []float64
}

func (*BoundingBox) cql2Expression() {}
func (*BoundingBox) cql2Spatial()    {}

// NewBoundingBox validates the 4- or 6-number arity invariant.
func NewBoundingBox(extent []float64) (*BoundingBox, error) {
	if len(extent) != 4 && len(extent) != 6 {
		return nil, &ValidationError{Message: fmt.Sprintf("bbox must have 4 or 6 numbers, got %d", len(extent))}
	}
	return &BoundingBox{Extent: extent}, nil
}

// SpatialComparison is an S_* predicate comparing two spatial
// expressions (geometry literals, bounding boxes, or property/
// function refs).
type SpatialComparison struct {
	Name  Operator
	Left  SpatialExpression
	Right SpatialExpression
}

func (*SpatialComparison) cql2Expression() {}
func (*SpatialComparison) cql2Boolean()    {}
