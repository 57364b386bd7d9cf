package query

import (
	"testing"
	"time"

	"github.com/robert-malhotra/go-stac-client/pkg/cql2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Where(t *testing.T) {
	t.Run("first call sets the expression", func(t *testing.T) {
		b := NewBuilder().Where(Property("status").Eq("published"))
		cmp, ok := b.Filter().(*cql2.Comparison)
		require.True(t, ok)
		assert.Equal(t, cql2.Equals, cmp.Name)
	})

	t.Run("second call ANDs with the first", func(t *testing.T) {
		b := NewBuilder().
			Where(Property("status").Eq("published")).
			Where(Property("eo:cloud_cover").Lt(10))
		and, ok := b.Filter().(*cql2.And)
		require.True(t, ok)
		assert.Len(t, and.Args, 2)
	})

	t.Run("nil boolean expression is ignored", func(t *testing.T) {
		b := NewBuilder().Where(nil)
		assert.Nil(t, b.Filter())
	})

	t.Run("non-boolean expression panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().Where(cql2.String{Value: "not a predicate"})
		})
	})
}

func TestBuilder_And(t *testing.T) {
	t.Run("collapses to a single arg without wrapping", func(t *testing.T) {
		b := NewBuilder().And(Property("status").Eq("published"))
		_, ok := b.Filter().(*cql2.Comparison)
		require.True(t, ok)
	})

	t.Run("combines multiple args", func(t *testing.T) {
		b := NewBuilder().And(
			Property("status").Eq("published"),
			Property("eo:cloud_cover").Lt(10),
			Property("collection").Eq("sentinel-2"),
		)
		and, ok := b.Filter().(*cql2.And)
		require.True(t, ok)
		assert.Len(t, and.Args, 3)
	})

	t.Run("folds into an existing expression", func(t *testing.T) {
		b := NewBuilder().Where(Property("status").Eq("published"))
		b.And(Property("eo:cloud_cover").Lt(10))
		and, ok := b.Filter().(*cql2.And)
		require.True(t, ok)
		assert.Len(t, and.Args, 2)
	})

	t.Run("no args leaves the builder empty", func(t *testing.T) {
		b := NewBuilder().And()
		assert.Nil(t, b.Filter())
	})
}

func TestBuilder_Or(t *testing.T) {
	t.Run("combines multiple args", func(t *testing.T) {
		b := NewBuilder().Or(
			Property("status").Eq("published"),
			Property("status").Eq("draft"),
		)
		or, ok := b.Filter().(*cql2.Or)
		require.True(t, ok)
		assert.Len(t, or.Args, 2)
	})

	t.Run("single arg collapses without wrapping", func(t *testing.T) {
		b := NewBuilder().Or(Property("status").Eq("published"))
		_, ok := b.Filter().(*cql2.Comparison)
		require.True(t, ok)
	})
}

func TestBuilder_Not(t *testing.T) {
	b := NewBuilder().Where(Property("status").Eq("published")).Not()
	not, ok := b.Filter().(*cql2.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*cql2.Comparison)
	require.True(t, ok)
}

func TestBuilder_Must(t *testing.T) {
	t.Run("returns the built expression", func(t *testing.T) {
		b := NewBuilder().Where(Property("status").Eq("published"))
		assert.NotNil(t, b.Must())
	})

	t.Run("panics when empty", func(t *testing.T) {
		assert.Panics(t, func() { NewBuilder().Must() })
	})
}

func TestPropertyExpression_Comparisons(t *testing.T) {
	tests := []struct {
		name     string
		expr     cql2.BooleanExpression
		expected cql2.Operator
	}{
		{"eq", Property("status").Eq("published"), cql2.Equals},
		{"neq", Property("status").Neq("draft"), cql2.NotEquals},
		{"lt", Property("eo:cloud_cover").Lt(10), cql2.LessThan},
		{"lte", Property("eo:cloud_cover").Lte(10), cql2.LessThanOrEquals},
		{"gt", Property("eo:cloud_cover").Gt(10), cql2.GreaterThan},
		{"gte", Property("eo:cloud_cover").Gte(10), cql2.GreaterThanOrEquals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := tt.expr.(*cql2.Comparison)
			require.True(t, ok)
			assert.Equal(t, tt.expected, cmp.Name)
		})
	}
}

func TestPropertyExpression_EqNilIsNull(t *testing.T) {
	isNull, ok := Property("optional").Eq(nil).(*cql2.IsNull)
	require.True(t, ok)
	prop, ok := isNull.Value.(*cql2.PropertyRef)
	require.True(t, ok)
	assert.Equal(t, "optional", prop.Property)
}

func TestPropertyExpression_NeqNilIsNegatedIsNull(t *testing.T) {
	not, ok := Property("optional").Neq(nil).(*cql2.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*cql2.IsNull)
	require.True(t, ok)
}

func TestPropertyExpression_Like(t *testing.T) {
	like, ok := Property("name").Like("Smith%").(*cql2.Like)
	require.True(t, ok)
	pattern, ok := like.Pattern.(cql2.String)
	require.True(t, ok)
	assert.Equal(t, "Smith%", pattern.Value)
}

func TestPropertyExpression_In(t *testing.T) {
	t.Run("variadic values", func(t *testing.T) {
		in, ok := Property("collection").In("sentinel-2", "landsat-8").(*cql2.In)
		require.True(t, ok)
		assert.Len(t, in.List, 2)
	})

	t.Run("single slice argument is expanded", func(t *testing.T) {
		in, ok := Property("collection").In([]string{"sentinel-2", "landsat-8", "naip"}).(*cql2.In)
		require.True(t, ok)
		assert.Len(t, in.List, 3)
	})

	t.Run("empty list panics", func(t *testing.T) {
		assert.Panics(t, func() { Property("collection").In() })
	})
}

func TestPropertyExpression_Between(t *testing.T) {
	between, ok := Property("eo:cloud_cover").Between(10, 20).(*cql2.Between)
	require.True(t, ok)
	low, ok := between.Low.(cql2.Number)
	require.True(t, ok)
	assert.Equal(t, 10.0, low.Value)
}

func TestPropertyExpression_IsNullIsNotNull(t *testing.T) {
	_, ok := Property("optional").IsNull().(*cql2.IsNull)
	require.True(t, ok)

	not, ok := Property("optional").IsNotNull().(*cql2.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*cql2.IsNull)
	require.True(t, ok)
}

func TestBBox(t *testing.T) {
	sp, ok := BBox(-122.5, 37.5, -122.0, 38.0).(*cql2.SpatialComparison)
	require.True(t, ok)
	assert.Equal(t, cql2.GeometryIntersects, sp.Name)
	bbox, ok := sp.Right.(*cql2.BoundingBox)
	require.True(t, ok)
	assert.Equal(t, []float64{-122.5, 37.5, -122.0, 38.0}, bbox.Extent)
}

func TestDatetime(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	tc, ok := Datetime(start, end).(*cql2.TemporalComparison)
	require.True(t, ok)
	assert.Equal(t, cql2.TimeIntersects, tc.Name)
	interval, ok := tc.Right.(*cql2.Interval)
	require.True(t, ok)
	ts, ok := interval.Start.(cql2.Timestamp)
	require.True(t, ok)
	assert.Equal(t, start, ts.Value)
}

func TestBetween_NormalizesSwappedTimes(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

	tc, ok := Between("datetime", later, early).(*cql2.TemporalComparison)
	require.True(t, ok)
	interval, ok := tc.Right.(*cql2.Interval)
	require.True(t, ok)
	start, ok := interval.Start.(cql2.Timestamp)
	require.True(t, ok)
	assert.True(t, start.Value.Equal(early))
}

func TestRaw(t *testing.T) {
	expr := Raw(map[string]any{
		"op":   "=",
		"args": []any{map[string]string{"property": "city"}, "Toronto"},
	})
	cmp, ok := expr.(*cql2.Comparison)
	require.True(t, ok)
	assert.Equal(t, cql2.Equals, cmp.Name)
}

func TestRaw_PanicsOnInvalidFilter(t *testing.T) {
	assert.Panics(t, func() {
		Raw(map[string]any{"op": "bogus", "args": []any{}})
	})
}
