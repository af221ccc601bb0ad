package rtree

import "github.com/specterops/geoidx/graph"

// Edge kinds connecting the vertices of one physical index. These are the only edge kinds this package creates or
// traverses; the host graph may carry other edge kinds between the same vertices for unrelated purposes.
var (
	EdgeRoot        = graph.StringKind("ROOT")
	EdgeChild       = graph.StringKind("CHILD")
	EdgeReference   = graph.StringKind("REFERENCE")
	EdgeMetadata    = graph.StringKind("METADATA")
	EdgeLayerConfig = graph.StringKind("LAYER_CONFIG")
)

// Property keys used on the vertices that make up a physical index.
const (
	// PropertyBBox holds an index vertex's bounding box as [xmin, xmax, ymin, ymax].
	PropertyBBox = "bbox"

	// PropertyLayer holds a layer vertex's human name.
	PropertyLayer = "layer"

	// PropertyGeometryType holds a layer vertex's geometry-type code.
	PropertyGeometryType = "gtype"

	// PropertyQuery holds a layer-config vertex's dynamic-layer predicate text.
	PropertyQuery = "query"

	// PropertyMaxNodeReferences holds the metadata vertex's maxChildren fanout bound.
	PropertyMaxNodeReferences = "maxNodeReferences"

	// PropertyMinNodeReferences holds the metadata vertex's minChildren fanout bound.
	PropertyMinNodeReferences = "minNodeReferences"

	// PropertyTotalGeometryCount holds the metadata vertex's cached reference count.
	PropertyTotalGeometryCount = "totalGeometryCount"
)

// Default fanout bounds used when a layer's metadata vertex is initialised for the first time.
const (
	DefaultMaxNodeReferences = 50
	DefaultMinNodeReferences = DefaultMaxNodeReferences / 2
)
