package rtree_test

import (
	"context"
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/specterops/geoidx/rtree/rtreetest"
	"github.com/stretchr/testify/require"
)

// addGeometryWithProps is addGeometry plus a set of extra properties written onto the geometry vertex, for
// exercising dynamic-layer predicates.
func addGeometryWithProps(t *testing.T, ctx context.Context, store *rtreetest.Store, idx *rtree.Index, env rtree.Envelope, props map[string]any) graph.ID {
	t.Helper()

	id := addGeometry(t, ctx, store, idx, env)

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		for key, value := range props {
			if err := txn.SetProperty(ctx, id, key, value); err != nil {
				return err
			}
		}

		return nil
	}))

	return id
}

func TestDynamicLayer_StructuralPredicate_PropertyFilter(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	residential := addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1), map[string]any{"highway": "residential"})
	addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(2, 3, 2, 3), map[string]any{"highway": "motorway"})

	layer := rtree.NewDynamicLayer(idx, "highway:residential", rtree.StructuralPredicate{
		Properties: map[string]any{"highway": "residential"},
	})

	records, err := layer.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, residential, records[0].Geometry)
}

func TestDynamicLayer_StructuralPredicate_StepFollowsEdge(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	geom := addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1), map[string]any{"name": "Main St"})

	tagKind := graph.StringKind("TAGGED")

	var tagID graph.ID

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		id, err := txn.CreateVertex(ctx)
		if err != nil {
			return err
		}

		tagID = id

		if err := txn.SetProperty(ctx, tagID, "category", "arterial"); err != nil {
			return err
		}

		_, err = txn.Connect(ctx, geom, tagID, tagKind)
		return err
	}))

	layer := rtree.NewDynamicLayer(idx, "arterial-streets", rtree.StructuralPredicate{
		Step: &rtree.StructuralStep{
			Kind:      tagKind,
			Direction: graph.DirectionOutbound,
			Next: rtree.StructuralPredicate{
				Properties: map[string]any{"category": "arterial"},
			},
		},
	})

	records, err := layer.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, geom, records[0].Geometry)
}

func TestDynamicLayer_ExpressionPredicate(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 51, 1)

	match := addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(0, 1, 0, 1), map[string]any{"lanes": 4, "surface": "paved"})
	addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(2, 3, 2, 3), map[string]any{"lanes": 2, "surface": "paved"})
	addGeometryWithProps(t, ctx, store, idx, rtree.NewEnvelope(4, 5, 4, 5), map[string]any{"lanes": 4, "surface": "gravel"})

	expr := rtree.And{
		rtree.PropertyEquals{Key: "lanes", Value: 4},
		rtree.PropertyEquals{Key: "surface", Value: "paved"},
	}

	layer := rtree.NewDynamicLayer(idx, "wide-paved", rtree.ExpressionPredicate{Expr: expr})

	records, err := layer.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, match, records[0].Geometry)
}

func TestDynamicLayer_ReadOnly(t *testing.T) {
	ctx, _, _, idx := newLayer(t, 51, 1)

	layer := rtree.NewDynamicLayer(idx, "anything", rtree.StructuralPredicate{})

	require.ErrorIs(t, layer.Add(ctx, 0), rtree.ErrReadOnlyView)
	require.ErrorIs(t, layer.Remove(ctx, 0, false), rtree.ErrReadOnlyView)
}
