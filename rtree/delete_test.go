package rtree_test

import (
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

func TestRemove_SingleGeometry(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	geom := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1))

	require.NoError(t, idx.Remove(ctx, geom, false))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	_, err = idx.Get(ctx, geom)
	require.ErrorIs(t, err, rtree.ErrNotIndexed)
}

func TestRemove_DeletesGeometryVertexWhenAsked(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	geom := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1))

	require.NoError(t, idx.Remove(ctx, geom, true))

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		exists, err := txn.VertexExists(ctx, geom)
		require.NoError(t, err)
		require.False(t, exists)
		return nil
	}))
}

// TestRemove_AddRemoveRoundTrip verifies the multiset law: adding N geometries then removing a subset leaves exactly
// the complement indexed, regardless of underflow/eviction churn along the way.
func TestRemove_AddRemoveRoundTrip(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 2)

	var ids []graph.ID

	for i := 0; i < 40; i++ {
		x := float64(i)
		ids = append(ids, addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.9, x, x+0.9)))
	}

	// remove every third geometry
	var kept int

	for i, id := range ids {
		if i%3 == 0 {
			require.NoError(t, idx.Remove(ctx, id, false))
		} else {
			kept++
		}
	}

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(kept), count)

	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, kept)

	for i, id := range ids {
		_, err := idx.Get(ctx, id)

		if i%3 == 0 {
			require.ErrorIs(t, err, rtree.ErrNotIndexed)
		} else {
			require.NoError(t, err)
		}
	}
}

// TestRemoveAll_DeletesGeometryVertices matches the documented removeAll(true, ...) fixture: four geometries are
// removed entirely, including their vertices, and the count returns to zero.
func TestRemoveAll_DeletesGeometryVertices(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	fixtures := []rtree.Envelope{
		rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0),
		rtree.NewEnvelope(1.2, 4.0, 7.0, 2.0),
		rtree.NewEnvelope(2.2, 3.0, 6.0, 8.0),
		rtree.NewEnvelope(1.9, 4.5, 5.0, 9.0),
	}

	var ids []graph.ID

	for _, f := range fixtures {
		ids = append(ids, addGeometry(t, ctx, store, idx, f))
	}

	require.NoError(t, idx.RemoveAll(ctx, true, nil))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		for _, id := range ids {
			exists, err := txn.VertexExists(ctx, id)
			require.NoError(t, err)
			require.False(t, exists)
		}

		return nil
	}))
}

// TestClear_ReinitialisesEmptyLayer verifies Clear leaves the layer ready for further inserts.
func TestClear_ReinitialisesEmptyLayer(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	addGeometry(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1))

	require.NoError(t, idx.Clear(ctx, nil))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	geom := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(2, 3, 2, 3))

	record, err := idx.Get(ctx, geom)
	require.NoError(t, err)
	require.Equal(t, geom, record.Geometry)
}

// TestRemove_Underflow forces eviction-and-reinsertion: shrinking a small-fanout tree below minChildren on a branch
// must not lose any geometry, and every surviving geometry must still be reachable afterward.
func TestRemove_Underflow(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 2)

	var ids []graph.ID

	for i := 0; i < 24; i++ {
		x := float64(i)
		ids = append(ids, addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.9, x, x+0.9)))
	}

	for i := 0; i < 20; i++ {
		require.NoError(t, idx.Remove(ctx, ids[i], false))
	}

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i := 20; i < 24; i++ {
		_, err := idx.Get(ctx, ids[i])
		require.NoError(t, err)
	}
}
