package rtree

import (
	"context"
	"errors"
	"sync"

	"github.com/specterops/geoidx/graph"
)

// Index is one physical R-tree: a root vertex, a metadata vertex, and the tree of internal/leaf vertices hanging off
// the root. It implements C3 (tree store), and is the receiver for the insert/delete/traversal/search operations
// defined in the other files of this package. Index does not create or own the layer vertex itself — that is the
// caller's responsibility (see Open) — it only locates and lazily initialises the root and metadata vertices
// beneath it.
type Index struct {
	store   Store
	layerID graph.ID
	encoder GeometryEncoder

	// cacheMu guards the fields below. The cache is process-local; saveCount writes the count to the metadata vertex
	// only when Count is called. Add and Remove adjust the cache but do not write the persisted value, and the
	// persisted value is never read back.
	cacheMu    sync.Mutex
	maxChd     int
	minChd     int
	count      int64
	dirty      bool
	countSaved bool

	rootID     graph.ID
	metadataID graph.ID
}

// Open locates (or lazily initialises) the root and metadata vertices under layerID and returns an Index bound to
// them. maxChildren and minChildren are used only the first time a layer's metadata vertex is created; on later
// opens the persisted values are loaded instead.
func Open(ctx context.Context, store Store, layerID graph.ID, encoder GeometryEncoder, maxChildren, minChildren int) (*Index, error) {
	idx := &Index{
		store:   store,
		layerID: layerID,
		encoder: encoder,
		maxChd:  maxChildren,
		minChd:  minChildren,
	}

	if err := WithTxn(ctx, store, func(txn Txn) error {
		if err := idx.initRoot(ctx, txn); err != nil {
			return err
		}

		return idx.initMetadata(ctx, txn)
	}); err != nil {
		return nil, err
	}

	return idx, nil
}

func (idx *Index) initRoot(ctx context.Context, txn Txn) error {
	_, existingRoot, found, err := txn.SingleOut(ctx, idx.layerID, EdgeRoot)
	if err != nil {
		return wrapHostError("init root", err)
	}

	if found {
		idx.rootID = existingRoot
		return nil
	}

	rootID, err := txn.CreateVertex(ctx)
	if err != nil {
		return wrapHostError("create root", err)
	}

	if _, err := txn.Connect(ctx, idx.layerID, rootID, EdgeRoot); err != nil {
		return wrapHostError("connect root", err)
	}

	idx.rootID = rootID
	return nil
}

func (idx *Index) initMetadata(ctx context.Context, txn Txn) error {
	_, metaID, found, err := txn.SingleOut(ctx, idx.layerID, EdgeMetadata)
	if err != nil {
		return wrapHostError("init metadata", err)
	}

	if found {
		maxVal, err := txn.GetProperty(ctx, metaID, PropertyMaxNodeReferences)
		if err != nil {
			return wrapHostError("load maxNodeReferences", err)
		}

		minVal, err := txn.GetProperty(ctx, metaID, PropertyMinNodeReferences)
		if err != nil {
			return wrapHostError("load minNodeReferences", err)
		}

		maxInt, err := maxVal.Int()
		if err != nil {
			return wrapHostError("decode maxNodeReferences", err)
		}

		minInt, err := minVal.Int()
		if err != nil {
			return wrapHostError("decode minNodeReferences", err)
		}

		idx.metadataID = metaID

		idx.cacheMu.Lock()
		idx.maxChd = maxInt
		idx.minChd = minInt
		idx.countSaved = false
		idx.cacheMu.Unlock()

		return nil
	}

	metaID, err = txn.CreateVertex(ctx)
	if err != nil {
		return wrapHostError("create metadata", err)
	}

	if _, err := txn.Connect(ctx, idx.layerID, metaID, EdgeMetadata); err != nil {
		return wrapHostError("connect metadata", err)
	}

	if err := txn.SetProperty(ctx, metaID, PropertyMaxNodeReferences, idx.maxChd); err != nil {
		return wrapHostError("set maxNodeReferences", err)
	}

	if err := txn.SetProperty(ctx, metaID, PropertyMinNodeReferences, idx.minChd); err != nil {
		return wrapHostError("set minNodeReferences", err)
	}

	idx.metadataID = metaID
	return nil
}

// Root returns the ID of the index's root vertex.
func (idx *Index) Root() graph.ID {
	return idx.rootID
}

// MaxChildren returns the fanout upper bound loaded from (or written to) the metadata vertex.
func (idx *Index) MaxChildren() int {
	idx.cacheMu.Lock()
	defer idx.cacheMu.Unlock()
	return idx.maxChd
}

// MinChildren returns the fanout lower bound loaded from (or written to) the metadata vertex.
func (idx *Index) MinChildren() int {
	idx.cacheMu.Lock()
	defer idx.cacheMu.Unlock()
	return idx.minChd
}

// markDirty increments the in-memory reference counter by delta and marks it unsaved. Called while holding no lock;
// it takes cacheMu itself.
func (idx *Index) markDirty(delta int64) {
	idx.cacheMu.Lock()
	idx.count += delta
	idx.dirty = true
	idx.countSaved = false
	idx.cacheMu.Unlock()
}

// Count returns the cached reference count, reconciling it first: whenever the cache reads zero (e.g. after a
// process restart), it recounts via a full traversal before returning.
func (idx *Index) Count(ctx context.Context) (int64, error) {
	if err := WithTxn(ctx, idx.store, func(txn Txn) error {
		return idx.saveCount(ctx, txn)
	}); err != nil {
		return 0, err
	}

	idx.cacheMu.Lock()
	defer idx.cacheMu.Unlock()
	return idx.count, nil
}

// saveCount reconciles the in-memory counter to the metadata vertex. If the counter reads zero, it first does an
// exhaustive recount in case the cache was lost (e.g. across a restart) rather than trusting a stale zero.
func (idx *Index) saveCount(ctx context.Context, txn Txn) error {
	idx.cacheMu.Lock()
	needsRecount := idx.count == 0
	idx.cacheMu.Unlock()

	if needsRecount {
		counter := &recordCounter{}

		if err := idx.visit(ctx, txn, counter, idx.rootID); err != nil {
			return err
		}

		idx.cacheMu.Lock()
		idx.count = counter.count
		idx.countSaved = false
		idx.cacheMu.Unlock()
	}

	idx.cacheMu.Lock()
	alreadySaved := idx.countSaved
	count := idx.count
	idx.cacheMu.Unlock()

	if alreadySaved {
		return nil
	}

	// RemoveAll deletes the metadata vertex; with none left there is nowhere to write the count.
	if exists, err := txn.VertexExists(ctx, idx.metadataID); err != nil {
		return wrapHostError("check metadata vertex", err)
	} else if !exists {
		return nil
	}

	if err := txn.SetProperty(ctx, idx.metadataID, PropertyTotalGeometryCount, count); err != nil {
		return wrapHostError("save totalGeometryCount", err)
	}

	idx.cacheMu.Lock()
	idx.countSaved = true
	idx.dirty = false
	idx.cacheMu.Unlock()
	return nil
}

// IsEmpty reports whether the index root has no bbox yet, i.e. nothing has ever been inserted.
func (idx *Index) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool

	err := WithTxn(ctx, idx.store, func(txn Txn) error {
		has, err := txn.HasProperty(ctx, idx.rootID, PropertyBBox)
		if err != nil {
			return wrapHostError("check root bbox", err)
		}

		empty = !has
		return nil
	})

	return empty, err
}

// recordCounter is a Visitor that visits every leaf reference without decoding anything, used to recount
// totalGeometryCount from scratch.
type recordCounter struct {
	count int64
}

func (c *recordCounter) NeedsToVisit(Envelope) bool { return true }

func (c *recordCounter) OnIndexReference(context.Context, Adapter, graph.ID) error {
	c.count++
	return nil
}

func nodeBBox(ctx context.Context, txn Adapter, id graph.ID) (Envelope, error) {
	value, err := txn.GetProperty(ctx, id, PropertyBBox)
	if err != nil {
		if errors.Is(err, graph.ErrPropertyNotFound) {
			return NullEnvelope(), nil
		}

		return Envelope{}, wrapHostError("get bbox", err)
	}

	raw, err := value.Float64Slice()
	if err != nil {
		return Envelope{}, ErrEncoderMismatch
	}

	return EnvelopeFromSlice(raw)
}

func setNodeBBox(ctx context.Context, txn Adapter, id graph.ID, e Envelope) error {
	slice := e.Slice()
	return wrapHostError("set bbox", txn.SetProperty(ctx, id, PropertyBBox, slice[:]))
}

func isLeaf(ctx context.Context, txn Adapter, id graph.ID) (bool, error) {
	found := false

	err := txn.IterateOut(ctx, id, EdgeChild, func(graph.ID, graph.ID) (bool, error) {
		found = true
		return false, nil
	})
	if err != nil {
		return false, wrapHostError("check leaf", err)
	}

	return !found, nil
}

func countOut(ctx context.Context, txn Adapter, id graph.ID, kind graph.Kind) (int, error) {
	n := 0

	err := txn.IterateOut(ctx, id, kind, func(graph.ID, graph.ID) (bool, error) {
		n++
		return true, nil
	})

	return n, wrapHostError("count edges", err)
}

func parentOf(ctx context.Context, txn Adapter, id graph.ID) (graph.ID, bool, error) {
	_, parent, found, err := txn.SingleIn(ctx, id, EdgeChild)
	if err != nil {
		return 0, false, wrapHostError("get parent", err)
	}

	return parent, found, nil
}
