package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

// Geometry is an opaque decoded geometry value. The index never inspects it directly; it only asks a
// GeometryEncoder to compute an Envelope from it or to test it against a window during search refinement.
type Geometry interface {
	// Envelope returns the geometry's minimum bounding box.
	Envelope() Envelope

	// Intersects reports whether this geometry actually intersects other, as opposed to merely having overlapping
	// envelopes. Used as the refinement step after a bbox-level search hit.
	Intersects(other Geometry) bool
}

// GeometryEncoder is the stateless bridge between a layer's geometry type and the index's bbox-only view of the
// world. A single encoder instance is shared across every transaction and goroutine that touches a layer.
type GeometryEncoder interface {
	// DecodeEnvelope reads the indexable bounding box directly off a geometry vertex's properties, without fully
	// decoding the geometry. This is the hot path used while building and adjusting the tree.
	DecodeEnvelope(ctx context.Context, adapter Adapter, geom graph.ID) (Envelope, error)

	// DecodeGeometry fully decodes a geometry vertex into a Geometry value, for use in search refinement.
	DecodeGeometry(ctx context.Context, adapter Adapter, geom graph.ID) (Geometry, error)

	// EncodeGeometry writes g's properties onto the target vertex, including whatever bbox the index will later
	// read back via DecodeEnvelope.
	EncodeGeometry(ctx context.Context, adapter Adapter, g Geometry, target graph.ID) error
}
