package rtree_test

import (
	"testing"

	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_IsNull(t *testing.T) {
	require.True(t, rtree.NullEnvelope().IsNull())
	require.False(t, rtree.NewEnvelope(1, 2, 1, 2).IsNull())

	// a non-canonically ordered envelope (Xmax < Xmin) is still real extent, not "no extent yet".
	require.False(t, rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0).IsNull())
}

func TestEnvelope_Expand(t *testing.T) {
	a := rtree.NewEnvelope(0, 1, 0, 1)
	b := rtree.NewEnvelope(2, 3, 2, 3)

	union := a.Expand(b)
	require.Equal(t, rtree.NewEnvelope(0, 3, 0, 3), union)

	require.Equal(t, a, a.Expand(rtree.NullEnvelope()))
	require.Equal(t, b, rtree.NullEnvelope().Expand(b))

	// expanding a null envelope with a non-canonically ordered one carries it through verbatim.
	inverted := rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0)
	require.Equal(t, inverted, rtree.NullEnvelope().Expand(inverted))
}

func TestEnvelope_CoversPoint(t *testing.T) {
	box := rtree.NewEnvelope(0, 10, 0, 10)

	require.True(t, box.CoversPoint(5, 5))
	require.True(t, box.CoversPoint(0, 0))
	require.True(t, box.CoversPoint(10, 10))
	require.False(t, box.CoversPoint(11, 5))
	require.False(t, rtree.NullEnvelope().CoversPoint(0, 0))
}

func TestEnvelope_Covers(t *testing.T) {
	outer := rtree.NewEnvelope(0, 10, 0, 10)
	inner := rtree.NewEnvelope(2, 3, 2, 3)
	overlapping := rtree.NewEnvelope(5, 15, 5, 15)

	require.True(t, outer.Covers(inner))
	require.False(t, outer.Covers(overlapping))
	require.False(t, inner.Covers(outer))
}

func TestEnvelope_Intersects(t *testing.T) {
	a := rtree.NewEnvelope(0, 10, 0, 10)
	b := rtree.NewEnvelope(5, 15, 5, 15)
	c := rtree.NewEnvelope(20, 30, 20, 30)

	require.True(t, a.Intersects(b))
	require.False(t, a.Intersects(c))
	require.False(t, rtree.NullEnvelope().Intersects(a))
}

func TestEnvelope_Enlargement(t *testing.T) {
	a := rtree.NewEnvelope(0, 10, 0, 10)
	inside := rtree.NewEnvelope(2, 3, 2, 3)
	outside := rtree.NewEnvelope(0, 20, 0, 10)

	require.InDelta(t, 0, a.Enlargement(inside), 0.0001)
	require.InDelta(t, 100, a.Enlargement(outside), 0.0001)
}

func TestEnvelope_SliceRoundTrip(t *testing.T) {
	original := rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0)

	slice := original.Slice()
	decoded, err := rtree.EnvelopeFromSlice(slice[:])
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestEnvelopeFromSlice_WrongWidth(t *testing.T) {
	_, err := rtree.EnvelopeFromSlice([]float64{1, 2, 3})
	require.ErrorIs(t, err, rtree.ErrEncoderMismatch)
}

func TestEnvelope_Centroid(t *testing.T) {
	box := rtree.NewEnvelope(0, 10, 0, 20)

	x, y := box.Centroid()
	require.InDelta(t, 5, x, 0.0001)
	require.InDelta(t, 10, y, 0.0001)
}
