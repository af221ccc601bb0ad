package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

// Record is one hit of a search, in visit order. DecodedGeometry is nil unless the search needed to decode the
// geometry to refine a bbox-level candidate (e.g. SearchIntersectWindow's polygon refinement step).
type Record struct {
	Geometry        graph.ID
	DecodedGeometry Geometry
}

// allVisitor implements SearchAll: every vertex is worth visiting, every leaf reference is a hit.
type allVisitor struct {
	results []Record
}

func (v *allVisitor) NeedsToVisit(Envelope) bool { return true }

func (v *allVisitor) OnIndexReference(_ context.Context, _ Adapter, geom graph.ID) error {
	v.results = append(v.results, Record{Geometry: geom})
	return nil
}

// SearchAll returns every geometry indexed by this layer, in visit order.
func (idx *Index) SearchAll(ctx context.Context) ([]Record, error) {
	visitor := &allVisitor{}

	if err := idx.Visit(ctx, visitor); err != nil {
		return nil, err
	}

	return visitor.results, nil
}

// intersectWindowVisitor implements SearchIntersectWindow's two-phase bbox-then-geometry refinement: a subtree is
// descended only if its bbox intersects the window; a leaf reference whose bbox is fully covered by the window is
// accepted directly, one whose bbox merely intersects the window is decoded and refined against the window
// geometry, and one that doesn't even intersect at the bbox level is skipped without ever being decoded.
type intersectWindowVisitor struct {
	idx     *Index
	window  Envelope
	winGeom Geometry
	results []Record
}

func (v *intersectWindowVisitor) NeedsToVisit(bbox Envelope) bool {
	return bbox.Intersects(v.window)
}

func (v *intersectWindowVisitor) OnIndexReference(ctx context.Context, txn Adapter, geom graph.ID) error {
	geomBBox, err := v.idx.encoder.DecodeEnvelope(ctx, txn, geom)
	if err != nil {
		return err
	}

	if v.window.Covers(geomBBox) {
		v.results = append(v.results, Record{Geometry: geom})
		return nil
	}

	if !v.window.Intersects(geomBBox) {
		return nil
	}

	decoded, err := v.idx.encoder.DecodeGeometry(ctx, txn, geom)
	if err != nil {
		return err
	}

	if v.winGeom == nil || decoded.Intersects(v.winGeom) {
		v.results = append(v.results, Record{Geometry: geom, DecodedGeometry: decoded})
	}

	return nil
}

// SearchIntersectWindow returns every geometry whose envelope intersects window, refining bbox-level candidates by
// actually decoding and testing the geometry. If winGeom is non-nil, it is used for the polygon-level refinement
// test (geom.Intersects(winGeom)); if nil, the bbox-level intersects test alone decides membership.
func (idx *Index) SearchIntersectWindow(ctx context.Context, window Envelope, winGeom Geometry) ([]Record, error) {
	visitor := &intersectWindowVisitor{idx: idx, window: window, winGeom: winGeom}

	if err := idx.Visit(ctx, visitor); err != nil {
		return nil, err
	}

	return visitor.results, nil
}

// OnEnvelopeIntersection is called by AbstractIntersection for every leaf reference whose envelope intersects the
// search geometry's envelope, so callers can refine further (containment, touches, etc.) without subclassing.
type OnEnvelopeIntersection func(ctx context.Context, txn Adapter, geom graph.ID, geomBBox Envelope) (bool, error)

// abstractIntersectionVisitor implements AbstractIntersection: needsToVisit prunes on envelope intersection against
// the search geometry's own envelope; on reference, candidates whose bbox intersects are dispatched to onHit for
// the caller-supplied refinement.
type abstractIntersectionVisitor struct {
	idx      *Index
	envelope Envelope
	onHit    OnEnvelopeIntersection
	results  []Record
}

func (v *abstractIntersectionVisitor) NeedsToVisit(bbox Envelope) bool {
	return bbox.Intersects(v.envelope)
}

func (v *abstractIntersectionVisitor) OnIndexReference(ctx context.Context, txn Adapter, geom graph.ID) error {
	geomBBox, err := v.idx.encoder.DecodeEnvelope(ctx, txn, geom)
	if err != nil {
		return err
	}

	if !geomBBox.Intersects(v.envelope) {
		return nil
	}

	accepted, err := v.onHit(ctx, txn, geom, geomBBox)
	if err != nil {
		return err
	}

	if accepted {
		v.results = append(v.results, Record{Geometry: geom})
	}

	return nil
}

// AbstractIntersection runs a search pruned to envelope, dispatching every bbox-intersecting reference to onHit for
// refinement, in place of the base-class-and-override pattern the original used.
func (idx *Index) AbstractIntersection(ctx context.Context, envelope Envelope, onHit OnEnvelopeIntersection) ([]Record, error) {
	visitor := &abstractIntersectionVisitor{idx: idx, envelope: envelope, onHit: onHit}

	if err := idx.Visit(ctx, visitor); err != nil {
		return nil, err
	}

	return visitor.results, nil
}

// Get returns the single record for geom, failing with ErrNotIndexed if it is not reachable from this layer's root.
func (idx *Index) Get(ctx context.Context, geom graph.ID) (Record, error) {
	var record Record

	err := WithTxn(ctx, idx.store, func(txn Txn) error {
		if _, err := idx.findLeafContainingGeometry(ctx, txn, geom); err != nil {
			return err
		}

		record = Record{Geometry: geom}
		return nil
	})

	return record, err
}
