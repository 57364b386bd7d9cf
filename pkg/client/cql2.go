// Package client provides a CQL2-JSON filter query builder for STAC API searches.
//
// This implementation wraps the pkg/cql2 translator package to provide a
// convenient, fluent API for building CQL2-JSON filter expressions, with a
// second "ergonomic" layer of helpers (Eq, Lt, Like, ...) that accept bare
// Go values and property names instead of requiring callers to construct
// AST nodes directly.
//
// Example usage:
//
//	f := client.NewFilterBuilder().
//	    And(client.Lt("eo:cloud_cover", 10)).
//	    And(client.SIntersects(
//	        client.BBox(-122.5, 37.5, -122.0, 38.0),
//	    )).
//	    Build()
package client

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/robert-malhotra/go-stac-client/pkg/cql2"
)

// -----------------------------------------------------------------------------
// Re-exports from pkg/cql2 for convenience
// -----------------------------------------------------------------------------

// Filter is the top-level CQL2 filter type.
type Filter = cql2.Filter

// Expression types
type (
	BooleanExpression  = cql2.BooleanExpression
	ScalarExpression   = cql2.ScalarExpression
	SpatialExpression  = cql2.SpatialExpression
	TemporalExpression = cql2.TemporalExpression
	NumericExpression  = cql2.NumericExpression
)

// -----------------------------------------------------------------------------
// Property References
// -----------------------------------------------------------------------------

// Property creates a property reference expression.
// Common STAC properties include:
//   - "datetime" - acquisition datetime
//   - "eo:cloud_cover" - cloud cover percentage
//   - "geometry" - item geometry
//   - "id" - item ID
//   - "collection" - collection ID
func Property(name string) *cql2.PropertyRef {
	return cql2.Property(name)
}

// -----------------------------------------------------------------------------
// Literal Values
// -----------------------------------------------------------------------------

// String creates a string literal.
func String(s string) cql2.String {
	return cql2.String{Value: s}
}

// Number creates a numeric literal.
func Number(n float64) cql2.Number {
	return cql2.Float(n)
}

// Boolean creates a boolean literal.
func Boolean(b bool) cql2.Boolean {
	return cql2.Boolean{Value: b}
}

// toScalar converts a bare Go value (string, bool, any integer or float
// kind) or an existing ScalarExpression into a ScalarExpression, the
// conversion the ergonomic comparison helpers apply to their value
// argument so callers can write Eq("count", 42) instead of
// EqExpr(Property("count"), Number(42)).
func toScalar(value any) cql2.ScalarExpression {
	switch v := value.(type) {
	case cql2.ScalarExpression:
		return v
	case string:
		return cql2.String{Value: v}
	case bool:
		return cql2.Boolean{Value: v}
	case int:
		return cql2.Int(int64(v))
	case int64:
		return cql2.Int(v)
	case float64:
		return cql2.Float(v)
	case float32:
		return cql2.Float(float64(v))
	default:
		return nil
	}
}

// toNumeric is toScalar's counterpart for numeric-only positions
// (Between's operands, arithmetic).
func toNumeric(value any) cql2.NumericExpression {
	switch v := value.(type) {
	case cql2.NumericExpression:
		return v
	case int:
		return cql2.Int(int64(v))
	case int64:
		return cql2.Int(v)
	case float64:
		return cql2.Float(v)
	case float32:
		return cql2.Float(float64(v))
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------
// Comparison Operators — ergonomic (property name + bare value)
// -----------------------------------------------------------------------------

// Eq creates an equality comparison (property = value).
func Eq(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.Equals, Left: Property(property), Right: toScalar(value)}
}

// Neq creates an inequality comparison (property <> value).
func Neq(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.NotEquals, Left: Property(property), Right: toScalar(value)}
}

// Lt creates a less-than comparison (property < value).
func Lt(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.LessThan, Left: Property(property), Right: toScalar(value)}
}

// Lte creates a less-than-or-equal comparison (property <= value).
func Lte(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.LessThanOrEquals, Left: Property(property), Right: toScalar(value)}
}

// Gt creates a greater-than comparison (property > value).
func Gt(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.GreaterThan, Left: Property(property), Right: toScalar(value)}
}

// Gte creates a greater-than-or-equal comparison (property >= value).
func Gte(property string, value any) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.GreaterThanOrEquals, Left: Property(property), Right: toScalar(value)}
}

// Like creates a pattern matching expression against a property.
// Use % for multi-character wildcard and _ for single character wildcard.
func Like(property, pattern string) *cql2.Like {
	return &cql2.Like{Value: Property(property), Pattern: cql2.String{Value: pattern}}
}

// Between creates a range comparison (property BETWEEN low AND high).
func Between(property string, low, high any) *cql2.Between {
	return &cql2.Between{Value: Property(property), Low: toNumeric(low), High: toNumeric(high)}
}

// In creates a membership test (property IN list).
func In(property string, values ...any) *cql2.In {
	list := make([]cql2.ScalarExpression, len(values))
	for i, v := range values {
		list[i] = toScalar(v)
	}
	return &cql2.In{Item: Property(property), List: list}
}

// IsNull creates a null check (property IS NULL).
func IsNull(property string) *cql2.IsNull {
	return &cql2.IsNull{Value: Property(property)}
}

// -----------------------------------------------------------------------------
// Comparison Operators — explicit (caller-built AST operands)
// -----------------------------------------------------------------------------

// EqExpr creates an equality comparison from two expressions.
func EqExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.Equals, Left: left, Right: right}
}

// NeqExpr creates an inequality comparison from two expressions.
func NeqExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.NotEquals, Left: left, Right: right}
}

// LtExpr creates a less-than comparison from two expressions.
func LtExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.LessThan, Left: left, Right: right}
}

// LteExpr creates a less-than-or-equal comparison from two expressions.
func LteExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.LessThanOrEquals, Left: left, Right: right}
}

// GtExpr creates a greater-than comparison from two expressions.
func GtExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.GreaterThan, Left: left, Right: right}
}

// GteExpr creates a greater-than-or-equal comparison from two expressions.
func GteExpr(left, right cql2.ScalarExpression) *cql2.Comparison {
	return &cql2.Comparison{Name: cql2.GreaterThanOrEquals, Left: left, Right: right}
}

// BetweenExpr creates a range comparison from three numeric expressions.
func BetweenExpr(value, low, high cql2.NumericExpression) *cql2.Between {
	return &cql2.Between{Value: value, Low: low, High: high}
}

// InExpr creates a membership test from scalar expressions.
func InExpr(item cql2.ScalarExpression, list ...cql2.ScalarExpression) *cql2.In {
	return &cql2.In{Item: item, List: list}
}

// IsNullExpr creates a null check from an arbitrary expression.
func IsNullExpr(value cql2.Expression) *cql2.IsNull {
	return &cql2.IsNull{Value: value}
}

// -----------------------------------------------------------------------------
// Logical Operators
// -----------------------------------------------------------------------------

// And creates a logical AND of multiple expressions.
func And(exprs ...cql2.BooleanExpression) *cql2.And {
	return &cql2.And{Args: exprs}
}

// Or creates a logical OR of multiple expressions.
func Or(exprs ...cql2.BooleanExpression) *cql2.Or {
	return &cql2.Or{Args: exprs}
}

// Not creates a logical NOT of an expression.
func Not(expr cql2.BooleanExpression) *cql2.Not {
	return &cql2.Not{Arg: expr}
}

// -----------------------------------------------------------------------------
// Spatial Types & Operators
// -----------------------------------------------------------------------------

// Geometry converts an orb.Geometry to a cql2.Geometry for use in spatial
// operations.
//
// Example:
//
//	pt := orb.Point{-122.4194, 37.7749}
//	f := SIntersects(Geometry(pt))
func Geometry(g orb.Geometry) *cql2.Geometry {
	return &cql2.Geometry{Value: geojson.NewGeometry(g)}
}

// GeometryFromGeoJSON creates a cql2.Geometry from a raw GeoJSON map.
// Use this when you have GeoJSON data that's not in orb format.
func GeometryFromGeoJSON(gjson map[string]any) *cql2.Geometry {
	return &cql2.Geometry{Value: gjson}
}

// Point creates a GeoJSON Point geometry from longitude and latitude.
func Point(lon, lat float64) *cql2.Geometry {
	return Geometry(orb.Point{lon, lat})
}

// Point3D creates a GeoJSON Point geometry with elevation.
// Note: orb.Point only supports 2D, so elevation is stored in coordinates array.
func Point3D(lon, lat, elevation float64) *cql2.Geometry {
	return &cql2.Geometry{
		Value: map[string]any{
			"type":        "Point",
			"coordinates": []float64{lon, lat, elevation},
		},
	}
}

// LineString creates a GeoJSON LineString geometry from coordinate pairs.
// Each coordinate is [lon, lat].
func LineString(coords ...[]float64) *cql2.Geometry {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		if len(c) >= 2 {
			ls[i] = orb.Point{c[0], c[1]}
		}
	}
	return Geometry(ls)
}

// LineStringFromOrb creates a cql2.Geometry from an orb.LineString.
func LineStringFromOrb(ls orb.LineString) *cql2.Geometry {
	return Geometry(ls)
}

// Polygon creates a GeoJSON Polygon geometry from rings.
// The first ring is the exterior ring, subsequent rings are holes.
// Each ring is a slice of [lon, lat] coordinates.
func Polygon(rings ...[][]float64) *cql2.Geometry {
	poly := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		r := make(orb.Ring, len(ring))
		for j, c := range ring {
			if len(c) >= 2 {
				r[j] = orb.Point{c[0], c[1]}
			}
		}
		poly[i] = r
	}
	return Geometry(poly)
}

// PolygonFromOrb creates a cql2.Geometry from an orb.Polygon.
func PolygonFromOrb(poly orb.Polygon) *cql2.Geometry {
	return Geometry(poly)
}

// MultiPoint creates a GeoJSON MultiPoint geometry from coordinate pairs.
func MultiPoint(coords ...[]float64) *cql2.Geometry {
	mp := make(orb.MultiPoint, len(coords))
	for i, c := range coords {
		if len(c) >= 2 {
			mp[i] = orb.Point{c[0], c[1]}
		}
	}
	return Geometry(mp)
}

// MultiPointFromOrb creates a cql2.Geometry from an orb.MultiPoint.
func MultiPointFromOrb(mp orb.MultiPoint) *cql2.Geometry {
	return Geometry(mp)
}

// MultiLineString creates a GeoJSON MultiLineString geometry.
func MultiLineString(lines ...[][]float64) *cql2.Geometry {
	mls := make(orb.MultiLineString, len(lines))
	for i, line := range lines {
		ls := make(orb.LineString, len(line))
		for j, c := range line {
			if len(c) >= 2 {
				ls[j] = orb.Point{c[0], c[1]}
			}
		}
		mls[i] = ls
	}
	return Geometry(mls)
}

// MultiLineStringFromOrb creates a cql2.Geometry from an orb.MultiLineString.
func MultiLineStringFromOrb(mls orb.MultiLineString) *cql2.Geometry {
	return Geometry(mls)
}

// MultiPolygon creates a GeoJSON MultiPolygon geometry.
func MultiPolygon(polygons ...[][][]float64) *cql2.Geometry {
	mpoly := make(orb.MultiPolygon, len(polygons))
	for i, poly := range polygons {
		p := make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, c := range ring {
				if len(c) >= 2 {
					r[k] = orb.Point{c[0], c[1]}
				}
			}
			p[j] = r
		}
		mpoly[i] = p
	}
	return Geometry(mpoly)
}

// MultiPolygonFromOrb creates a cql2.Geometry from an orb.MultiPolygon.
func MultiPolygonFromOrb(mpoly orb.MultiPolygon) *cql2.Geometry {
	return Geometry(mpoly)
}

// GeometryCollection creates a GeoJSON GeometryCollection from multiple orb geometries.
func GeometryCollection(geometries ...orb.Geometry) *cql2.Geometry {
	gc := make(orb.Collection, len(geometries))
	copy(gc, geometries)
	return Geometry(gc)
}

// GeometryCollectionFromOrb creates a cql2.Geometry from an orb.Collection.
func GeometryCollectionFromOrb(gc orb.Collection) *cql2.Geometry {
	return Geometry(gc)
}

// BBox creates a 2D bounding box expression.
// Order: minLon, minLat, maxLon, maxLat
func BBox(minLon, minLat, maxLon, maxLat float64) *cql2.BoundingBox {
	return &cql2.BoundingBox{Extent: []float64{minLon, minLat, maxLon, maxLat}}
}

// BBox3D creates a 3D bounding box expression.
// Order: minLon, minLat, minElev, maxLon, maxLat, maxElev
func BBox3D(minLon, minLat, minElev, maxLon, maxLat, maxElev float64) *cql2.BoundingBox {
	return &cql2.BoundingBox{Extent: []float64{minLon, minLat, minElev, maxLon, maxLat, maxElev}}
}

// toSpatialExpression converts various geometry types to cql2.SpatialExpression.
// Accepts: orb.Geometry, *cql2.Geometry, *cql2.BoundingBox, orb.Bound
func toSpatialExpression(geom any) cql2.SpatialExpression {
	switch g := geom.(type) {
	case cql2.SpatialExpression:
		return g
	case orb.Bound:
		// Check orb.Bound before orb.Geometry since Bound implements Geometry
		return &cql2.BoundingBox{Extent: []float64{g.Min.X(), g.Min.Y(), g.Max.X(), g.Max.Y()}}
	case orb.Geometry:
		return Geometry(g)
	default:
		// Return nil for unsupported types - will cause runtime error if used
		return nil
	}
}

// SIntersects creates a spatial intersection test against the "geometry" property.
// Accepts orb.Geometry, orb.Bound, *cql2.Geometry, or *cql2.BoundingBox.
func SIntersects(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryIntersects, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SEquals creates a spatial equality test against the "geometry" property.
func SEquals(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryEquals, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SDisjoint creates a spatial disjoint test against the "geometry" property.
func SDisjoint(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryDisjoint, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// STouches creates a spatial touches test against the "geometry" property.
func STouches(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryTouches, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SWithin creates a spatial within test against the "geometry" property.
func SWithin(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryWithin, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SOverlaps creates a spatial overlaps test against the "geometry" property.
func SOverlaps(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryOverlaps, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SCrosses creates a spatial crosses test against the "geometry" property.
func SCrosses(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryCrosses, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// SContains creates a spatial contains test against the "geometry" property.
func SContains(geom any) *cql2.SpatialComparison {
	return &cql2.SpatialComparison{Name: cql2.GeometryContains, Left: Property("geometry"), Right: toSpatialExpression(geom)}
}

// -----------------------------------------------------------------------------
// Temporal Types & Operators
// -----------------------------------------------------------------------------

// Timestamp creates a timestamp expression from an ISO 8601 string.
func Timestamp(iso8601 string) cql2.Timestamp {
	t, _ := time.Parse(time.RFC3339, iso8601)
	return cql2.Timestamp{Value: t}
}

// TimestampFromTime creates a timestamp expression from a time.Time.
func TimestampFromTime(t time.Time) cql2.Timestamp {
	return cql2.Timestamp{Value: t.UTC()}
}

// Date creates a date expression from a date string (YYYY-MM-DD).
func Date(dateStr string) cql2.Date {
	t, _ := time.Parse(time.DateOnly, dateStr)
	return cql2.Date{Value: t}
}

// DateFromTime creates a date expression from a time.Time.
func DateFromTime(t time.Time) cql2.Date {
	return cql2.Date{Value: t}
}

// Interval creates a time interval expression from start and end instants.
func Interval(start, end cql2.InstantExpression) *cql2.Interval {
	return &cql2.Interval{Start: start, End: end}
}

// IntervalFromStrings creates a time interval from ISO 8601 strings.
// Use empty string or ".." for open-ended intervals.
func IntervalFromStrings(start, end string) *cql2.Interval {
	var startExpr, endExpr cql2.InstantExpression
	if start != "" && start != ".." {
		ts := Timestamp(start)
		startExpr = ts
	}
	if end != "" && end != ".." {
		ts := Timestamp(end)
		endExpr = ts
	}
	return &cql2.Interval{Start: startExpr, End: endExpr}
}

// IntervalFromTimes creates a time interval from time.Time values.
func IntervalFromTimes(start, end time.Time) *cql2.Interval {
	return &cql2.Interval{Start: TimestampFromTime(start), End: TimestampFromTime(end)}
}

// OpenIntervalBefore creates an open-ended interval up to the given time.
func OpenIntervalBefore(end string) *cql2.Interval {
	return &cql2.Interval{Start: nil, End: Timestamp(end)}
}

// OpenIntervalAfter creates an open-ended interval from the given time.
func OpenIntervalAfter(start string) *cql2.Interval {
	return &cql2.Interval{Start: Timestamp(start), End: nil}
}

// TAfter creates a temporal "after" test.
func TAfter(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeAfter, Left: left, Right: right}
}

// TBefore creates a temporal "before" test.
func TBefore(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeBefore, Left: left, Right: right}
}

// TContains creates a temporal "contains" test.
func TContains(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeContains, Left: left, Right: right}
}

// TDisjoint creates a temporal "disjoint" test.
func TDisjoint(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeDisjoint, Left: left, Right: right}
}

// TDuring creates a temporal "during" test.
func TDuring(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeDuring, Left: left, Right: right}
}

// TEquals creates a temporal "equals" test.
func TEquals(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeEquals, Left: left, Right: right}
}

// TFinishedBy creates a temporal "finished by" test.
func TFinishedBy(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeFinishedBy, Left: left, Right: right}
}

// TFinishes creates a temporal "finishes" test.
func TFinishes(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeFinishes, Left: left, Right: right}
}

// TIntersects creates a temporal "intersects" test.
func TIntersects(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeIntersects, Left: left, Right: right}
}

// TMeets creates a temporal "meets" test.
func TMeets(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeMeets, Left: left, Right: right}
}

// TMetBy creates a temporal "met by" test.
func TMetBy(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeMetBy, Left: left, Right: right}
}

// TOverlappedBy creates a temporal "overlapped by" test.
func TOverlappedBy(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeOverlappedBy, Left: left, Right: right}
}

// TOverlaps creates a temporal "overlaps" test.
func TOverlaps(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeOverlaps, Left: left, Right: right}
}

// TStartedBy creates a temporal "started by" test.
func TStartedBy(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeStartedBy, Left: left, Right: right}
}

// TStarts creates a temporal "starts" test.
func TStarts(left, right cql2.TemporalExpression) *cql2.TemporalComparison {
	return &cql2.TemporalComparison{Name: cql2.TimeStarts, Left: left, Right: right}
}

// -----------------------------------------------------------------------------
// Array Operators
// -----------------------------------------------------------------------------

// Array creates an array literal from items.
func Array(items ...cql2.ArrayItemExpression) cql2.Array {
	return cql2.Array(items)
}

// AEquals tests if two arrays are equal.
func AEquals(left, right cql2.ArrayExpression) *cql2.ArrayComparison {
	return &cql2.ArrayComparison{Name: cql2.ArrayEquals, Left: left, Right: right}
}

// AContains tests if the first array contains all elements of the second.
func AContains(left, right cql2.ArrayExpression) *cql2.ArrayComparison {
	return &cql2.ArrayComparison{Name: cql2.ArrayContains, Left: left, Right: right}
}

// AContainedBy tests if all elements of the first array are in the second.
func AContainedBy(left, right cql2.ArrayExpression) *cql2.ArrayComparison {
	return &cql2.ArrayComparison{Name: cql2.ArrayContainedBy, Left: left, Right: right}
}

// AOverlaps tests if two arrays have at least one common element.
func AOverlaps(left, right cql2.ArrayExpression) *cql2.ArrayComparison {
	return &cql2.ArrayComparison{Name: cql2.ArrayOverlaps, Left: left, Right: right}
}

// -----------------------------------------------------------------------------
// Filter Builder
// -----------------------------------------------------------------------------

// FilterBuilder provides a fluent interface for building CQL2 filters.
type FilterBuilder struct {
	exprs []cql2.BooleanExpression
}

// NewFilterBuilder creates a new FilterBuilder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Where sets the initial filter expression.
func (b *FilterBuilder) Where(expr cql2.BooleanExpression) *FilterBuilder {
	b.exprs = []cql2.BooleanExpression{expr}
	return b
}

// And adds an AND condition to the existing filter.
func (b *FilterBuilder) And(expr cql2.BooleanExpression) *FilterBuilder {
	b.exprs = append(b.exprs, expr)
	return b
}

// Or creates an OR branch with the given expressions.
func (b *FilterBuilder) Or(exprs ...cql2.BooleanExpression) *FilterBuilder {
	b.exprs = append(b.exprs, Or(exprs...))
	return b
}

// Build returns the Filter that can be used in search requests.
func (b *FilterBuilder) Build() *cql2.Filter {
	if len(b.exprs) == 0 {
		return nil
	}
	if len(b.exprs) == 1 {
		return &cql2.Filter{Expression: b.exprs[0]}
	}
	return &cql2.Filter{Expression: And(b.exprs...)}
}
