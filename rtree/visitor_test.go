package rtree_test

import (
	"context"
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
	"github.com/stretchr/testify/require"
)

// countingListener records every Begin/Worked/Done call it receives.
type countingListener struct {
	begun  bool
	total  int
	worked int
	done   bool
}

func (l *countingListener) Begin(total int) { l.begun = true; l.total = total }
func (l *countingListener) Worked(n int)    { l.worked += n }
func (l *countingListener) Done()           { l.done = true }

func TestRemoveAll_ReportsProgress(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 8, 2)

	for i := 0; i < 17; i++ {
		x := float64(i)
		addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.5, x, x+0.5))
	}

	listener := &countingListener{}
	require.NoError(t, idx.RemoveAll(ctx, false, listener))

	require.True(t, listener.begun)
	require.Equal(t, 17, listener.total)
	require.Equal(t, 17, listener.worked)
	require.True(t, listener.done)
}

// TestAbstractIntersection_RefinesViaCallback exercises the onHit callback path, accepting only references whose
// envelope is not just intersecting but fully covered by the search envelope.
func TestAbstractIntersection_RefinesViaCallback(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 8, 2)

	covered := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(1, 2, 1, 2))
	partial := addGeometry(t, ctx, store, idx, rtree.NewEnvelope(4, 10, 4, 10))

	envelope := rtree.NewEnvelope(0, 5, 0, 5)

	records, err := idx.AbstractIntersection(ctx, envelope, func(_ context.Context, _ rtree.Adapter, _ graph.ID, geomBBox rtree.Envelope) (bool, error) {
		return envelope.Covers(geomBBox), nil
	})
	require.NoError(t, err)

	var hits []uint64

	for _, r := range records {
		hits = append(hits, r.Geometry.Uint64())
	}

	require.Contains(t, hits, covered.Uint64())
	require.NotContains(t, hits, partial.Uint64())
}

// boundedVisitor only descends into subtrees whose bbox intersects limit and counts every NeedsToVisit call, used to
// test that NeedsToVisit pruning actually stops traversal rather than merely filtering results after the fact.
type boundedVisitor struct {
	limit   rtree.Envelope
	visited int
	hits    []graph.ID
}

func (v *boundedVisitor) NeedsToVisit(bbox rtree.Envelope) bool {
	v.visited++
	return bbox.Intersects(v.limit)
}

func (v *boundedVisitor) OnIndexReference(_ context.Context, _ rtree.Adapter, geom graph.ID) error {
	v.hits = append(v.hits, geom)
	return nil
}

func TestVisit_PrunesSubtreesOutsideBBox(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 2)

	for i := 0; i < 40; i++ {
		x := float64(i)
		addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.5, 0, 0.5))
	}

	visitor := &boundedVisitor{limit: rtree.NewEnvelope(100, 200, 100, 200)}
	require.NoError(t, idx.Visit(ctx, visitor))
	require.Empty(t, visitor.hits)
	require.Equal(t, 1, visitor.visited)
}

func TestVisitInTx_MatchesVisit(t *testing.T) {
	ctx, store, _, idx := newLayer(t, 4, 2)

	for i := 0; i < 30; i++ {
		x := float64(i)
		addGeometry(t, ctx, store, idx, rtree.NewEnvelope(x, x+0.5, 0, 0.5))
	}

	var inTxHits, plainHits []graph.ID

	require.NoError(t, idx.VisitInTx(ctx, collectorVisitor{dest: &inTxHits}))
	require.NoError(t, idx.Visit(ctx, collectorVisitor{dest: &plainHits}))

	require.ElementsMatch(t, plainHits, inTxHits)
}

type collectorVisitor struct {
	dest *[]graph.ID
}

func (collectorVisitor) NeedsToVisit(rtree.Envelope) bool { return true }

func (c collectorVisitor) OnIndexReference(_ context.Context, _ rtree.Adapter, geom graph.ID) error {
	*c.dest = append(*c.dest, geom)
	return nil
}
