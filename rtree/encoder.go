package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

// Rectangle is the simplest possible Geometry: an axis-aligned box, equal to its own envelope. It is what
// BBoxEncoder decodes every geometry vertex into.
type Rectangle struct {
	Bounds Envelope
}

// Envelope implements Geometry.
func (r Rectangle) Envelope() Envelope { return r.Bounds }

// Intersects implements Geometry. Against another Rectangle this is exact; against any other Geometry it falls back
// to comparing envelopes, since Rectangle carries no finer shape than its own bbox.
func (r Rectangle) Intersects(other Geometry) bool {
	return r.Bounds.Intersects(other.Envelope())
}

// BBoxEncoder is a GeometryEncoder for geometry vertices that carry their envelope directly as a PropertyBBox
// property, with no richer shape. It is the degenerate case the spec's pluggable encoder capability allows (point
// and axis-aligned-rectangle layers never need more than their bbox to answer intersects), and is what Open's
// callers should reach for absent a domain-specific encoder.
type BBoxEncoder struct{}

// DecodeEnvelope implements GeometryEncoder.
func (BBoxEncoder) DecodeEnvelope(ctx context.Context, adapter Adapter, geom graph.ID) (Envelope, error) {
	return nodeBBox(ctx, adapter, geom)
}

// DecodeGeometry implements GeometryEncoder.
func (e BBoxEncoder) DecodeGeometry(ctx context.Context, adapter Adapter, geom graph.ID) (Geometry, error) {
	env, err := e.DecodeEnvelope(ctx, adapter, geom)
	if err != nil {
		return nil, err
	}

	return Rectangle{Bounds: env}, nil
}

// EncodeGeometry implements GeometryEncoder.
func (BBoxEncoder) EncodeGeometry(ctx context.Context, adapter Adapter, g Geometry, target graph.ID) error {
	return setNodeBBox(ctx, adapter, target, g.Envelope())
}
