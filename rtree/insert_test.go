package rtree_test

import (
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

// TestAdd_ExactlyMaxChildrenNoSplit exercises the fanout boundary: filling a leaf to exactly maxChildren entries
// must not trigger a split.
func TestAdd_ExactlyMaxChildrenNoSplit(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 1)

	for i := 0; i < 4; i++ {
		x := float64(i)
		addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.5, 0, 0.5))
	}

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	// the root is still a leaf: every reference hangs directly off it, so a window covering everything returns all.
	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
}

// TestAdd_QuadrantSplit matches the documented 4-quadrant-plus-centre fixture: five geometries tiling the unit
// square trigger exactly one split, with both resulting children honouring minChildren and their bboxes' union
// covering the square.
func TestAdd_QuadrantSplit(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 2)

	quadrants := []rtree.Envelope{
		rtree.NewEnvelope(0, 0.4, 0, 0.4),
		rtree.NewEnvelope(0.6, 1, 0, 0.4),
		rtree.NewEnvelope(0, 0.4, 0.6, 1),
		rtree.NewEnvelope(0.6, 1, 0.6, 1),
		rtree.NewEnvelope(0.4, 0.6, 0.4, 0.6),
	}

	for _, q := range quadrants {
		addGeometry(t, ctx, store, idx, q)
	}

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), count)

	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)

	var (
		children  []graph.ID
		childEnvs []rtree.Envelope
	)

	require.NoError(t, rtree.WithTxn(ctx, store, func(txn rtree.Txn) error {
		if err := txn.IterateOut(ctx, idx.Root(), rtree.EdgeChild, func(_, child graph.ID) (bool, error) {
			children = append(children, child)
			return true, nil
		}); err != nil {
			return err
		}

		for _, child := range children {
			refCount := 0

			if err := txn.IterateOut(ctx, child, rtree.EdgeReference, func(graph.ID, graph.ID) (bool, error) {
				refCount++
				return true, nil
			}); err != nil {
				return err
			}

			require.GreaterOrEqual(t, refCount, idx.MinChildren())

			bboxVal, err := txn.GetProperty(ctx, child, rtree.PropertyBBox)
			if err != nil {
				return err
			}

			raw, err := bboxVal.Float64Slice()
			if err != nil {
				return err
			}

			env, err := rtree.EnvelopeFromSlice(raw)
			if err != nil {
				return err
			}

			childEnvs = append(childEnvs, env)
		}

		return nil
	}))

	require.Len(t, children, 2)

	union := childEnvs[0].Expand(childEnvs[1])
	require.Equal(t, rtree.NewEnvelope(0, 1, 0, 1), union)
}

func TestAdd_Many_CountMatches(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 8, 2)

	for i := 0; i < 100; i++ {
		x := float64(i)
		addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.9, x, x+0.9))
	}

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(100), count)

	records, err := idx.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 100)
}
