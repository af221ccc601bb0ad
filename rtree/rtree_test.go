package rtree_test

import (
	"context"
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/specterops/geoidx/rtree/rtreetest"
	"github.com/stretchr/testify/require"
)

// newLayer opens a fresh Index over a newly created layer vertex, backed by an in-memory store.
func newLayer(t *testing.T, maxChildren, minChildren int) (context.Context, *rtreetest.Store, graph.ID, *rtree.Index) {
	t.Helper()

	ctx := context.Background()
	store := rtreetest.New()

	var layerID graph.ID

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		id, err := txn.CreateVertex(ctx)
		layerID = id
		return err
	}))

	idx, err := rtree.Open(ctx, store, layerID, rtree.BBoxEncoder{}, maxChildren, minChildren)
	require.NoError(t, err)

	return ctx, store, layerID, idx
}

// addGeometry creates a geometry vertex carrying env as its bbox and indexes it, returning its ID.
func addGeometry(t *testing.T, ctx context.Context, store *rtreetest.Store, idx *rtree.Index, env rtree.Envelope) graph.ID {
	t.Helper()

	var geomID graph.ID

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		id, err := txn.CreateVertex(ctx)
		if err != nil {
			return err
		}

		geomID = id
		return rtree.BBoxEncoder{}.EncodeGeometry(ctx, txn, rtree.Rectangle{Bounds: env}, id)
	}))

	require.NoError(t, idx.Add(ctx, geomID))
	return geomID
}
