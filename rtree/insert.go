package rtree

import (
	"context"
	"math"

	"github.com/specterops/geoidx/graph"
)

// Add indexes geom under this layer's root, following C4: descend via chooseSubtree to a leaf, insert the
// REFERENCE edge, split the leaf if it would overflow, and propagate bbox adjustments back up to the root.
func (idx *Index) Add(ctx context.Context, geom graph.ID) error {
	return WithTxn(ctx, idx.store, func(txn Txn) error {
		return idx.addWithin(ctx, txn, geom)
	})
}

// addWithin is Add's body, factored out so the delete path can re-insert orphaned geometries inside the same
// transaction that evicted them rather than opening a nested one.
func (idx *Index) addWithin(ctx context.Context, txn Adapter, geom graph.ID) error {
	geomEnv, err := idx.encoder.DecodeEnvelope(ctx, txn, geom)
	if err != nil {
		return err
	}

	leafID := idx.rootID

	for {
		leaf, err := isLeaf(ctx, txn, leafID)
		if err != nil {
			return err
		}

		if leaf {
			break
		}

		leafID, err = idx.chooseSubtree(ctx, txn, leafID, geomEnv)
		if err != nil {
			return err
		}
	}

	refCount, err := countOut(ctx, txn, leafID, EdgeReference)
	if err != nil {
		return err
	}

	if _, err := txn.Connect(ctx, leafID, geom, EdgeReference); err != nil {
		return wrapHostError("insert reference", err)
	}

	changed, err := expandBBoxWithChild(ctx, txn, leafID, geomEnv)
	if err != nil {
		return err
	}

	if refCount+1 > idx.MaxChildren() {
		if err := idx.splitAndAdjustPathBoundingBox(ctx, txn, leafID); err != nil {
			return err
		}
	} else if changed {
		if err := idx.adjustPathBoundingBox(ctx, txn, leafID); err != nil {
			return err
		}
	}

	idx.markDirty(1)
	return nil
}

// chooseSubtree picks the child of parentID the new geometry should descend into, per §4.3: first preferring any
// child whose bbox already covers the geometry's centroid (breaking ties by smallest area), falling back to the
// child needing the smallest enlargement (breaking ties by smallest area).
func (idx *Index) chooseSubtree(ctx context.Context, txn Adapter, parentID graph.ID, geomEnv Envelope) (graph.ID, error) {
	cx, cy := geomEnv.Centroid()

	var covering []graph.ID

	if err := txn.IterateOut(ctx, parentID, EdgeChild, func(_, child graph.ID) (bool, error) {
		childBBox, err := nodeBBox(ctx, txn, child)
		if err != nil {
			return false, err
		}

		if childBBox.CoversPoint(cx, cy) {
			covering = append(covering, child)
		}

		return true, nil
	}); err != nil {
		return 0, wrapHostError("chooseSubtree covering scan", err)
	}

	if len(covering) > 0 {
		return idx.smallestArea(ctx, txn, covering)
	}

	var (
		candidates      []graph.ID
		bestEnlargement = math.Inf(1)
	)

	if err := txn.IterateOut(ctx, parentID, EdgeChild, func(_, child graph.ID) (bool, error) {
		childBBox, err := nodeBBox(ctx, txn, child)
		if err != nil {
			return false, err
		}

		enlargement := childBBox.Enlargement(geomEnv)

		switch {
		case enlargement < bestEnlargement:
			bestEnlargement = enlargement
			candidates = []graph.ID{child}
		case enlargement == bestEnlargement:
			candidates = append(candidates, child)
		}

		return true, nil
	}); err != nil {
		return 0, wrapHostError("chooseSubtree enlargement scan", err)
	}

	if len(candidates) == 0 {
		return 0, invariantViolation("", "chooseSubtree found no candidate child in a non-empty index vertex")
	}

	return idx.smallestArea(ctx, txn, candidates)
}

func (idx *Index) smallestArea(ctx context.Context, txn Adapter, candidates []graph.ID) (graph.ID, error) {
	var (
		best     graph.ID
		bestArea = -1.0
	)

	for _, candidate := range candidates {
		bbox, err := nodeBBox(ctx, txn, candidate)
		if err != nil {
			return 0, err
		}

		area := bbox.Area()

		if bestArea < 0 || area < bestArea {
			best = candidate
			bestArea = area
		}
	}

	return best, nil
}

// expandBBoxWithChild expands vertexID's own bbox to include childBBox, writing the new bbox only if it actually
// changed. Returns whether a write occurred.
func expandBBoxWithChild(ctx context.Context, txn Adapter, vertexID graph.ID, childBBox Envelope) (bool, error) {
	current, err := nodeBBox(ctx, txn, vertexID)
	if err != nil {
		return false, err
	}

	expanded := current.Expand(childBBox)

	if expanded == current {
		return false, nil
	}

	return true, setNodeBBox(ctx, txn, vertexID, expanded)
}

// adjustPathBoundingBox propagates a bbox change at vertexID up toward the root, stopping at the first ancestor
// whose bbox did not need to change.
func (idx *Index) adjustPathBoundingBox(ctx context.Context, txn Adapter, vertexID graph.ID) error {
	parent, found, err := parentOf(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	if !found {
		return nil
	}

	vertexBBox, err := nodeBBox(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	changed, err := expandBBoxWithChild(ctx, txn, parent, vertexBBox)
	if err != nil {
		return err
	}

	if changed {
		return idx.adjustPathBoundingBox(ctx, txn, parent)
	}

	return nil
}
