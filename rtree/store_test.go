package rtree_test

import (
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

func TestOpen_FreshLayerIsEmpty(t *testing.T) {
	ctx, _, _, idx := newLayer(t, 51, 1)

	empty, err := idx.IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	require.Equal(t, 51, idx.MaxChildren())
	require.Equal(t, 1, idx.MinChildren())
}

func TestOpen_PersistsFanoutAcrossReopen(t *testing.T) {
	ctx, store, layerID, idx := newLayer(t, 51, 1)

	addGeometry(t, ctx, store, idx, rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0))

	reopened, err := rtree.Open(ctx, store, layerID, rtree.BBoxEncoder{}, 999, 999)
	require.NoError(t, err)

	// the already-created metadata vertex's persisted fanout bounds win over the caller's new arguments.
	require.Equal(t, 51, reopened.MaxChildren())
	require.Equal(t, 1, reopened.MinChildren())

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestAdd_SingleGeometry(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	env := rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0)
	addGeometry(t, ctx, store, idx, env)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

// TestAdd_SingleGeometry_RootBBoxMatchesFixture exercises the documented single-insert scenario: one geometry's
// literal bbox becomes the root's own bbox verbatim, and the root carries exactly one REFERENCE edge.
func TestAdd_SingleGeometry_RootBBoxMatchesFixture(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	env := rtree.NewEnvelope(1.2, 1.0, 2.0, 3.0)
	addGeometry(t, ctx, store, idx, env)

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		refCount := 0

		if err := txn.IterateOut(ctx, idx.Root(), rtree.EdgeReference, func(graph.ID, graph.ID) (bool, error) {
			refCount++
			return true, nil
		}); err != nil {
			return err
		}

		require.Equal(t, 1, refCount)

		rootBBox, err := txn.GetProperty(ctx, idx.Root(), rtree.PropertyBBox)
		if err != nil {
			return err
		}

		values, err := rootBBox.Float64Slice()
		if err != nil {
			return err
		}

		decoded, err := rtree.EnvelopeFromSlice(values)
		if err != nil {
			return err
		}

		require.Equal(t, env, decoded)
		return nil
	}))
}
