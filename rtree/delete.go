package rtree

import (
	"context"
	"fmt"

	"github.com/specterops/geoidx/graph"
)

// Remove unindexes geom, following C5: locate its leaf via the unique incoming REFERENCE edge, delete that edge
// (and optionally the geometry vertex itself), then either simply re-tighten bboxes upward or, if the leaf
// underflowed, evict and re-insert the affected subtree's orphaned geometries.
func (idx *Index) Remove(ctx context.Context, geom graph.ID, deleteGeomNode bool) error {
	return WithTxn(ctx, idx.store, func(txn Txn) error {
		leafID, err := idx.findLeafContainingGeometry(ctx, txn, geom)
		if err != nil {
			return err
		}

		edgeID, _, found, err := txn.SingleIn(ctx, geom, EdgeReference)
		if err != nil {
			return wrapHostError("find reference edge", err)
		}

		if !found {
			return fmt.Errorf("geometry has no incoming REFERENCE edge: %w", ErrNotIndexed)
		}

		if err := txn.DeleteEdge(ctx, edgeID); err != nil {
			return wrapHostError("delete reference edge", err)
		}

		if deleteGeomNode {
			if err := idx.deleteVertexAndEdges(ctx, txn, geom); err != nil {
				return err
			}
		}

		_, hasParent, err := parentOf(ctx, txn, leafID)
		if err != nil {
			return err
		}

		refCount, err := countOut(ctx, txn, leafID, EdgeReference)
		if err != nil {
			return err
		}

		if hasParent && refCount < idx.MinChildren() {
			if err := idx.handleUnderflow(ctx, txn, leafID); err != nil {
				return err
			}
		} else {
			if err := idx.recomputeBBox(ctx, txn, leafID, EdgeReference); err != nil {
				return err
			}

			if err := idx.adjustPathBoundingBox(ctx, txn, leafID); err != nil {
				return err
			}
		}

		idx.markDirty(-1)
		return nil
	})
}

// handleUnderflow implements §4.4 step 3: walk up to the highest ancestor that would itself underflow, evict its
// entire subtree's geometries, delete the now-empty skeleton, re-tighten bboxes from its former parent, and
// re-insert every evicted geometry from the root.
func (idx *Index) handleUnderflow(ctx context.Context, txn Txn, leafID graph.ID) error {
	deleteRoot, err := idx.findIndexNodeToDeleteNearestToRoot(ctx, txn, leafID)
	if err != nil {
		return err
	}

	grandparent, hasGrandparent, err := parentOf(ctx, txn, deleteRoot)
	if err != nil {
		return err
	}

	orphans, err := idx.collectReferences(ctx, txn, deleteRoot)
	if err != nil {
		return err
	}

	for _, orphan := range orphans {
		edgeID, _, found, err := txn.SingleIn(ctx, orphan, EdgeReference)
		if err != nil {
			return wrapHostError("find orphan reference edge", err)
		}

		if found {
			if err := txn.DeleteEdge(ctx, edgeID); err != nil {
				return wrapHostError("unlink orphan", err)
			}
		}
	}

	if err := idx.deleteRecursivelyEmptySubtree(ctx, txn, deleteRoot); err != nil {
		return err
	}

	if hasGrandparent {
		if err := idx.recomputeBBox(ctx, txn, grandparent, EdgeChild); err != nil {
			return err
		}

		if err := idx.adjustPathBoundingBox(ctx, txn, grandparent); err != nil {
			return err
		}
	}

	for _, orphan := range orphans {
		if err := idx.addWithin(ctx, txn, orphan); err != nil {
			return err
		}
	}

	// addWithin counted each orphan again; they were already part of the count before eviction.
	idx.markDirty(-int64(len(orphans)))

	return nil
}

// findLeafContainingGeometry locates geom's leaf via its unique incoming REFERENCE edge and confirms that leaf is
// reachable from this layer's own root, failing with ErrNotIndexed otherwise.
func (idx *Index) findLeafContainingGeometry(ctx context.Context, txn Adapter, geom graph.ID) (graph.ID, error) {
	_, leafID, found, err := txn.SingleIn(ctx, geom, EdgeReference)
	if err != nil {
		return 0, wrapHostError("find leaf", err)
	}

	if !found {
		return 0, fmt.Errorf("geometry %d: %w", geom.Uint64(), ErrNotIndexed)
	}

	cur := leafID

	for {
		parent, found, err := parentOf(ctx, txn, cur)
		if err != nil {
			return 0, err
		}

		if !found {
			break
		}

		cur = parent
	}

	if cur != idx.rootID {
		return 0, fmt.Errorf("geometry %d: not indexed by this layer's root: %w", geom.Uint64(), ErrNotIndexed)
	}

	return leafID, nil
}

// findIndexNodeToDeleteNearestToRoot walks up from indexNode while its parent would itself drop to exactly
// minChildren - 1 children once indexNode's subtree is evicted, returning the highest such ancestor.
func (idx *Index) findIndexNodeToDeleteNearestToRoot(ctx context.Context, txn Adapter, indexNode graph.ID) (graph.ID, error) {
	parent, found, err := parentOf(ctx, txn, indexNode)
	if err != nil {
		return 0, err
	}

	if !found {
		return indexNode, nil
	}

	_, grandparentFound, err := parentOf(ctx, txn, parent)
	if err != nil {
		return 0, err
	}

	if grandparentFound {
		siblingCount, err := countOut(ctx, txn, parent, EdgeChild)
		if err != nil {
			return 0, err
		}

		if siblingCount == idx.MinChildren() {
			return idx.findIndexNodeToDeleteNearestToRoot(ctx, txn, parent)
		}
	}

	return indexNode, nil
}

// collectReferences gathers every geometry vertex reachable under vertexID via a full subtree traversal, using the
// in-transaction visit mode since the caller already holds the transaction the eviction will run in.
func (idx *Index) collectReferences(ctx context.Context, txn Adapter, vertexID graph.ID) ([]graph.ID, error) {
	collector := &referenceCollector{}

	if err := idx.visit(ctx, txn, collector, vertexID); err != nil {
		return nil, err
	}

	return collector.refs, nil
}

type referenceCollector struct {
	refs []graph.ID
}

func (c *referenceCollector) NeedsToVisit(Envelope) bool { return true }

func (c *referenceCollector) OnIndexReference(_ context.Context, _ Adapter, geom graph.ID) error {
	c.refs = append(c.refs, geom)
	return nil
}

// deleteRecursivelyEmptySubtree deletes vertexID and every vertex reachable from it via CHILD edges, along with
// the incoming CHILD edge that attached vertexID to its parent (if any). The subtree must already have had all of
// its REFERENCE edges unlinked.
func (idx *Index) deleteRecursivelyEmptySubtree(ctx context.Context, txn Adapter, vertexID graph.ID) error {
	children, err := collectTargets(ctx, txn, vertexID, EdgeChild)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := idx.deleteRecursivelyEmptySubtree(ctx, txn, child); err != nil {
			return err
		}
	}

	edgeID, _, found, err := txn.SingleIn(ctx, vertexID, EdgeChild)
	if err != nil {
		return wrapHostError("find parent edge", err)
	}

	if found {
		if err := txn.DeleteEdge(ctx, edgeID); err != nil {
			return wrapHostError("detach subtree", err)
		}
	}

	return wrapHostError("delete subtree vertex", txn.DeleteVertex(ctx, vertexID))
}

// deleteVertexAndEdges detaches every edge incident to id (incoming and outgoing, any kind) and deletes it.
func (idx *Index) deleteVertexAndEdges(ctx context.Context, txn Adapter, id graph.ID) error {
	for _, kind := range []graph.Kind{EdgeRoot, EdgeChild, EdgeReference, EdgeMetadata, EdgeLayerConfig} {
		if err := detachEdgesOfKind(ctx, txn, id, kind); err != nil {
			return err
		}
	}

	return wrapHostError("delete geometry vertex", txn.DeleteVertex(ctx, id))
}

func detachEdgesOfKind(ctx context.Context, txn Adapter, id graph.ID, kind graph.Kind) error {
	var edges []graph.ID

	if err := txn.IterateOut(ctx, id, kind, func(edge, _ graph.ID) (bool, error) {
		edges = append(edges, edge)
		return true, nil
	}); err != nil {
		return wrapHostError("scan outgoing edges", err)
	}

	if err := txn.IterateIn(ctx, id, kind, func(edge, _ graph.ID) (bool, error) {
		edges = append(edges, edge)
		return true, nil
	}); err != nil {
		return wrapHostError("scan incoming edges", err)
	}

	for _, edge := range edges {
		if err := txn.DeleteEdge(ctx, edge); err != nil {
			return wrapHostError("detach edge", err)
		}
	}

	return nil
}

// recomputeBBox rebuilds vertexID's bbox from scratch as the union of its current children's bboxes (kind selects
// CHILD or REFERENCE). Unlike expandBBoxWithChild, this can shrink a bbox, which is required after a removal.
func (idx *Index) recomputeBBox(ctx context.Context, txn Adapter, vertexID graph.ID, kind graph.Kind) error {
	result := NullEnvelope()

	err := txn.IterateOut(ctx, vertexID, kind, func(_ graph.ID, target graph.ID) (bool, error) {
		var (
			childBBox Envelope
			err       error
		)

		if kind == EdgeReference {
			childBBox, err = idx.encoder.DecodeEnvelope(ctx, txn, target)
		} else {
			childBBox, err = nodeBBox(ctx, txn, target)
		}

		if err != nil {
			return false, err
		}

		result = result.Expand(childBBox)
		return true, nil
	})
	if err != nil {
		return wrapHostError("recompute bbox", err)
	}

	if result.IsNull() {
		return wrapHostError("clear bbox", txn.RemoveProperty(ctx, vertexID, PropertyBBox))
	}

	return setNodeBBox(ctx, txn, vertexID, result)
}

// RemoveAll deletes every indexed geometry, leaf by leaf, in a series of short transactions (VisitInTx), reporting
// progress via listener, then deletes the now-empty tree skeleton and metadata vertex in one final transaction.
func (idx *Index) RemoveAll(ctx context.Context, deleteGeomNodes bool, listener Listener) error {
	if listener == nil {
		listener = NullListener
	}

	total, err := idx.Count(ctx)
	if err != nil {
		return err
	}

	listener.Begin(int(total))

	visitor := &removeAllVisitor{deleteGeomNodes: deleteGeomNodes, listener: listener}

	if err := idx.VisitInTx(ctx, visitor); err != nil {
		listener.Done()
		return err
	}

	listener.Done()

	if err := WithTxn(ctx, idx.store, func(txn Txn) error {
		rootEdge, _, found, err := txn.SingleOut(ctx, idx.layerID, EdgeRoot)
		if err != nil {
			return wrapHostError("find root edge", err)
		}

		if found {
			if err := txn.DeleteEdge(ctx, rootEdge); err != nil {
				return wrapHostError("detach root edge", err)
			}
		}

		if err := idx.deleteRecursivelyEmptySubtree(ctx, txn, idx.rootID); err != nil {
			return err
		}

		metaEdge, _, found, err := txn.SingleOut(ctx, idx.layerID, EdgeMetadata)
		if err != nil {
			return wrapHostError("find metadata edge", err)
		}

		if found {
			if err := txn.DeleteEdge(ctx, metaEdge); err != nil {
				return wrapHostError("detach metadata edge", err)
			}

			if err := txn.DeleteVertex(ctx, idx.metadataID); err != nil {
				return wrapHostError("delete metadata vertex", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	idx.cacheMu.Lock()
	idx.count = 0
	idx.dirty = false
	idx.countSaved = false
	idx.cacheMu.Unlock()

	return nil
}

// Clear empties the layer (equivalent to RemoveAll(false, listener)) and immediately re-initialises a fresh empty
// root and metadata vertex so the layer is ready for further inserts.
func (idx *Index) Clear(ctx context.Context, listener Listener) error {
	if err := idx.RemoveAll(ctx, false, listener); err != nil {
		return err
	}

	return WithTxn(ctx, idx.store, func(txn Txn) error {
		if err := idx.initRoot(ctx, txn); err != nil {
			return err
		}

		return idx.initMetadata(ctx, txn)
	})
}

type removeAllVisitor struct {
	deleteGeomNodes bool
	listener        Listener
}

func (v *removeAllVisitor) NeedsToVisit(Envelope) bool { return true }

func (v *removeAllVisitor) OnIndexReference(ctx context.Context, txn Adapter, geom graph.ID) error {
	edgeID, _, found, err := txn.SingleIn(ctx, geom, EdgeReference)
	if err != nil {
		return wrapHostError("find reference edge", err)
	}

	if found {
		if err := txn.DeleteEdge(ctx, edgeID); err != nil {
			return wrapHostError("delete reference edge", err)
		}
	}

	if v.deleteGeomNodes {
		if err := txn.DeleteVertex(ctx, geom); err != nil {
			return wrapHostError("delete geometry vertex", err)
		}
	}

	v.listener.Worked(1)
	return nil
}
