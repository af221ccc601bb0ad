package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

type splitEntry struct {
	id   graph.ID
	bbox Envelope
}

// splitAndAdjustPathBoundingBox runs quadraticSplit on an overflowing vertex and wires the new sibling into the
// tree: promoting a new root if vertexID was the root, or attaching the sibling to vertexID's parent and
// recursively splitting the parent if that overflows it in turn.
func (idx *Index) splitAndAdjustPathBoundingBox(ctx context.Context, txn Adapter, vertexID graph.ID) error {
	newSibling, err := idx.quadraticSplit(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	parent, found, err := parentOf(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	if !found {
		return idx.createNewRoot(ctx, txn, vertexID, newSibling)
	}

	vertexBBox, err := nodeBBox(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	if _, err := expandBBoxWithChild(ctx, txn, parent, vertexBBox); err != nil {
		return err
	}

	if _, err := txn.Connect(ctx, parent, newSibling, EdgeChild); err != nil {
		return wrapHostError("attach split sibling", err)
	}

	siblingBBox, err := nodeBBox(ctx, txn, newSibling)
	if err != nil {
		return err
	}

	if _, err := expandBBoxWithChild(ctx, txn, parent, siblingBBox); err != nil {
		return err
	}

	childCount, err := countOut(ctx, txn, parent, EdgeChild)
	if err != nil {
		return err
	}

	if childCount > idx.MaxChildren() {
		return idx.splitAndAdjustPathBoundingBox(ctx, txn, parent)
	}

	return idx.adjustPathBoundingBox(ctx, txn, parent)
}

// createNewRoot builds a fresh root vertex over oldRoot and newSibling and rewires the layer's ROOT edge to point
// at it.
func (idx *Index) createNewRoot(ctx context.Context, txn Adapter, oldRoot, newSibling graph.ID) error {
	newRootID, err := txn.CreateVertex(ctx)
	if err != nil {
		return wrapHostError("create new root", err)
	}

	if _, err := txn.Connect(ctx, newRootID, oldRoot, EdgeChild); err != nil {
		return wrapHostError("attach old root", err)
	}

	if _, err := txn.Connect(ctx, newRootID, newSibling, EdgeChild); err != nil {
		return wrapHostError("attach split sibling", err)
	}

	oldBBox, err := nodeBBox(ctx, txn, oldRoot)
	if err != nil {
		return err
	}

	if err := setNodeBBox(ctx, txn, newRootID, oldBBox); err != nil {
		return err
	}

	siblingBBox, err := nodeBBox(ctx, txn, newSibling)
	if err != nil {
		return err
	}

	if _, err := expandBBoxWithChild(ctx, txn, newRootID, siblingBBox); err != nil {
		return err
	}

	oldRootEdge, _, found, err := txn.SingleOut(ctx, idx.layerID, EdgeRoot)
	if err != nil {
		return wrapHostError("find old root edge", err)
	}

	if found {
		if err := txn.DeleteEdge(ctx, oldRootEdge); err != nil {
			return wrapHostError("detach old root edge", err)
		}
	}

	if _, err := txn.Connect(ctx, idx.layerID, newRootID, EdgeRoot); err != nil {
		return wrapHostError("attach new root edge", err)
	}

	idx.rootID = newRootID
	return nil
}

// quadraticSplit redistributes vertexID's entries (CHILD or REFERENCE, whichever kind it carries) across vertexID
// and a freshly created sibling, using Guttman's quadratic-cost split, per §4.3.1.
func (idx *Index) quadraticSplit(ctx context.Context, txn Adapter, vertexID graph.ID) (graph.ID, error) {
	leaf, err := isLeaf(ctx, txn, vertexID)
	if err != nil {
		return 0, err
	}

	kind := EdgeChild
	if leaf {
		kind = EdgeReference
	}

	entries, err := idx.loadEntries(ctx, txn, vertexID, kind)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		// edges are re-created below once group membership is decided; drop them all up front so the redistribution
		// step can freely reattach without duplicate-edge bookkeeping.
		edgeID, _, found, err := singleEdgeBetween(ctx, txn, vertexID, entry.id, kind)
		if err != nil {
			return 0, err
		}

		if found {
			if err := txn.DeleteEdge(ctx, edgeID); err != nil {
				return 0, wrapHostError("detach entry for split", err)
			}
		}
	}

	group1, group2 := idx.distribute(entries, idx.MinChildren())

	if err := txn.RemoveProperty(ctx, vertexID, PropertyBBox); err != nil {
		return 0, wrapHostError("clear bbox for split", err)
	}

	for _, entry := range group1 {
		if err := attachSplitChild(ctx, txn, vertexID, entry, kind); err != nil {
			return 0, err
		}
	}

	newSibling, err := txn.CreateVertex(ctx)
	if err != nil {
		return 0, wrapHostError("create split sibling", err)
	}

	for _, entry := range group2 {
		if err := attachSplitChild(ctx, txn, newSibling, entry, kind); err != nil {
			return 0, err
		}
	}

	return newSibling, nil
}

func attachSplitChild(ctx context.Context, txn Adapter, parent graph.ID, entry splitEntry, kind graph.Kind) error {
	if _, err := txn.Connect(ctx, parent, entry.id, kind); err != nil {
		return wrapHostError("reattach split entry", err)
	}

	_, err := expandBBoxWithChild(ctx, txn, parent, entry.bbox)
	return err
}

func (idx *Index) loadEntries(ctx context.Context, txn Adapter, vertexID graph.ID, kind graph.Kind) ([]splitEntry, error) {
	var entries []splitEntry

	err := txn.IterateOut(ctx, vertexID, kind, func(_ graph.ID, target graph.ID) (bool, error) {
		var (
			bbox Envelope
			err  error
		)

		if kind == EdgeReference {
			bbox, err = idx.encoder.DecodeEnvelope(ctx, txn, target)
		} else {
			bbox, err = nodeBBox(ctx, txn, target)
		}

		if err != nil {
			return false, err
		}

		entries = append(entries, splitEntry{id: target, bbox: bbox})
		return true, nil
	})

	return entries, wrapHostError("load split entries", err)
}

// distribute implements the quadratic-cost seed-pick-and-assign phase of Guttman's split.
func (idx *Index) distribute(entries []splitEntry, minChildren int) ([]splitEntry, []splitEntry) {
	seed1, seed2 := pickSeeds(entries)

	var remaining []splitEntry

	for _, entry := range entries {
		if entry.id == seed1.id || entry.id == seed2.id {
			continue
		}

		remaining = append(remaining, entry)
	}

	group1 := []splitEntry{seed1}
	group1Env := seed1.bbox

	group2 := []splitEntry{seed2}
	group2Env := seed2.bbox

	for len(remaining) > 0 {
		if len(group1)+len(remaining) == minChildren {
			group1 = append(group1, remaining...)
			remaining = nil
			break
		}

		if len(group2)+len(remaining) == minChildren {
			group2 = append(group2, remaining...)
			remaining = nil
			break
		}

		bestIdx := -1
		toGroup1 := true
		bestExpansion := 0.0

		for i, entry := range remaining {
			expansion1 := group1Env.Expand(entry.bbox).Area() - group1Env.Area()
			expansion2 := group2Env.Expand(entry.bbox).Area() - group2Env.Area()

			var (
				expansion    float64
				assignGroup1 bool
			)

			switch {
			case expansion1 < expansion2:
				expansion, assignGroup1 = expansion1, true
			case expansion2 < expansion1:
				expansion, assignGroup1 = expansion2, false
			default:
				if group1Env.Area() <= group2Env.Area() {
					expansion, assignGroup1 = expansion1, true
				} else {
					expansion, assignGroup1 = expansion2, false
				}
			}

			if bestIdx == -1 || expansion < bestExpansion {
				bestIdx = i
				bestExpansion = expansion
				toGroup1 = assignGroup1
			}
		}

		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		if toGroup1 {
			group1 = append(group1, chosen)
			group1Env = group1Env.Expand(chosen.bbox)
		} else {
			group2 = append(group2, chosen)
			group2Env = group2Env.Expand(chosen.bbox)
		}
	}

	return group1, group2
}

// pickSeeds chooses the pair of entries that waste the most area if placed together, per Guttman's PickSeeds.
func pickSeeds(entries []splitEntry) (splitEntry, splitEntry) {
	var (
		seed1, seed2 splitEntry
		worst        = -1.0
	)

	for i, a := range entries {
		for j, b := range entries {
			if i == j {
				continue
			}

			deadSpace := a.bbox.Expand(b.bbox).Area() - a.bbox.Area() - b.bbox.Area()

			if deadSpace > worst {
				worst = deadSpace
				seed1, seed2 = a, b
			}
		}
	}

	return seed1, seed2
}

func singleEdgeBetween(ctx context.Context, txn Adapter, from, to graph.ID, kind graph.Kind) (graph.ID, graph.ID, bool, error) {
	var (
		foundEdge graph.ID
		found     bool
	)

	err := txn.IterateOut(ctx, from, kind, func(edge, target graph.ID) (bool, error) {
		if target == to {
			foundEdge = edge
			found = true
			return false, nil
		}

		return true, nil
	})

	return foundEdge, to, found, wrapHostError("find edge between vertices", err)
}
