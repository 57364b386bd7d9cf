package cql2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnd_RequiresAtLeastTwoArgs(t *testing.T) {
	_, err := NewAnd([]BooleanExpression{Boolean{Value: true}})
	require.Error(t, err)

	and, err := NewAnd([]BooleanExpression{Boolean{Value: true}, Boolean{Value: false}})
	require.NoError(t, err)
	assert.Len(t, and.Args, 2)
}

func TestNewOr_RequiresAtLeastTwoArgs(t *testing.T) {
	_, err := NewOr([]BooleanExpression{Boolean{Value: true}})
	require.Error(t, err)

	or, err := NewOr([]BooleanExpression{Boolean{Value: true}, Boolean{Value: false}})
	require.NoError(t, err)
	assert.Len(t, or.Args, 2)
}

func TestNewIn_RequiresNonEmptyList(t *testing.T) {
	_, err := NewIn(String{Value: "x"}, nil)
	require.Error(t, err)

	in, err := NewIn(String{Value: "x"}, []ScalarExpression{String{Value: "a"}})
	require.NoError(t, err)
	assert.Len(t, in.List, 1)
}

func TestNewBoundingBox_RequiresFourOrSixNumbers(t *testing.T) {
	_, err := NewBoundingBox([]float64{1, 2, 3})
	require.Error(t, err)

	bbox, err := NewBoundingBox([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, bbox.Extent, 4)

	bbox3d, err := NewBoundingBox([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Len(t, bbox3d.Extent, 6)
}

func TestNewPropertyRef_RejectsEmptyName(t *testing.T) {
	_, err := NewPropertyRef("")
	require.Error(t, err)

	ref, err := NewPropertyRef("eo:cloud_cover")
	require.NoError(t, err)
	assert.Equal(t, "eo:cloud_cover", ref.Property)
}

func TestProperty_PanicsOnEmptyName(t *testing.T) {
	assert.Panics(t, func() { Property("") })
	assert.NotPanics(t, func() { Property("id") })
}

// PropertyRef and FunctionRef satisfy the leaf interfaces simultaneously,
// per the overlapping-context rule of the data model. Neither is a
// PatternExpression, and only FunctionRef is a BooleanExpression.
func TestPropertyRefSatisfiesEveryLeafInterface(t *testing.T) {
	p := Property("id")
	var (
		_ ScalarExpression     = p
		_ CharacterExpression  = p
		_ NumericExpression    = p
		_ TemporalExpression   = p
		_ InstantExpression    = p
		_ SpatialExpression    = p
		_ ArrayExpression      = p
		_ ArrayItemExpression  = p
		_ BooleanExpression    = (*FunctionRef)(nil)
		_ CharacterExpression  = (*FunctionRef)(nil)
		_ NumericExpression    = (*FunctionRef)(nil)
		_ TemporalExpression   = (*FunctionRef)(nil)
		_ InstantExpression    = (*FunctionRef)(nil)
		_ SpatialExpression    = (*FunctionRef)(nil)
		_ ArrayExpression      = (*FunctionRef)(nil)
		_ ArrayItemExpression  = (*FunctionRef)(nil)
	)
}
