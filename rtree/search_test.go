package rtree_test

import (
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

// TestSearchIntersectWindow_BruteForceEquivalence indexes a grid of geometries and checks SearchIntersectWindow
// against a brute-force scan of the same fixtures, covering both fully-covered and merely-intersecting candidates.
func TestSearchIntersectWindow_BruteForceEquivalence(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 8, 2)

	var envs []rtree.Envelope

	for i := 0; i < 100; i++ {
		x := float64(i % 10)
		y := float64(i / 10)

		env := rtree.NewEnvelope(x, x+0.8, y, y+0.8)
		envs = append(envs, env)
		addGeometry(t, ctx, store, idx, env)
	}

	window := rtree.NewEnvelope(2, 5, 2, 5)

	var expected int

	for _, env := range envs {
		if env.Intersects(window) {
			expected++
		}
	}

	records, err := idx.SearchIntersectWindow(ctx, window, nil)
	require.NoError(t, err)
	require.Len(t, records, expected)
}

// TestSearchIntersectWindow_RefinesWithGeometry checks the two-phase refinement: a bbox-intersecting-but-not-covered
// candidate is only kept if it actually intersects the supplied window geometry.
func TestSearchIntersectWindow_RefinesWithGeometry(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 8, 2)

	// fully inside the window: kept unconditionally.
	covered := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(1, 2, 1, 2))

	// bbox intersects the window but the geometry (also a Rectangle, so intersects iff bboxes do) does intersect.
	partial := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(4, 6, 4, 6))

	// bbox doesn't even intersect the window.
	outside := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(20, 21, 20, 21))

	window := rtree.NewEnvelope(0, 5, 0, 5)
	winGeom := rtree.Rectangle{Bounds: window}

	records, err := idx.SearchIntersectWindow(ctx, window, winGeom)
	require.NoError(t, err)

	var hits []uint64

	for _, r := range records {
		hits = append(hits, r.Geometry.Uint64())
	}

	require.Contains(t, hits, covered.Uint64())
	require.Contains(t, hits, partial.Uint64())
	require.NotContains(t, hits, outside.Uint64())
}

func TestGet_NotIndexedFailsCleanly(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	var otherID graph.ID

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		id, err := txn.CreateVertex(ctx)
		otherID = id
		return err
	}))

	_, err := idx.Get(ctx, otherID)
	require.ErrorIs(t, err, rtree.ErrNotIndexed)
}
