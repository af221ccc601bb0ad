package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

// Visitor is the capability pair driving a tree traversal (C6). NeedsToVisit is evaluated top-down against every
// index vertex's bbox before its children are visited; returning false prunes that whole subtree. OnIndexReference
// is invoked once per leaf reference reached by a traversal that was not pruned, with the Adapter bound to
// whichever transaction is currently open (a single transaction for Visit, a fresh one per leaf for VisitInTx).
type Visitor interface {
	// NeedsToVisit decides whether the subtree rooted at an index vertex with the given bbox is worth descending
	// into. Called before a vertex's children (or references) are examined.
	NeedsToVisit(bbox Envelope) bool

	// OnIndexReference is called once per geometry vertex reached through a REFERENCE edge of a visited leaf.
	OnIndexReference(ctx context.Context, txn Adapter, geom graph.ID) error
}

// visit performs an in-transaction, depth-first traversal starting at vertexID, entirely within txn. Use this when
// the whole traversal is expected to fit comfortably in one transaction (e.g. search over a bounded window).
func (idx *Index) visit(ctx context.Context, txn Adapter, visitor Visitor, vertexID graph.ID) error {
	bbox, err := nodeBBox(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	if !visitor.NeedsToVisit(bbox) {
		return nil
	}

	leaf, err := isLeaf(ctx, txn, vertexID)
	if err != nil {
		return err
	}

	if !leaf {
		children, err := collectTargets(ctx, txn, vertexID, EdgeChild)
		if err != nil {
			return err
		}

		for _, child := range children {
			if err := idx.visit(ctx, txn, visitor, child); err != nil {
				return err
			}
		}

		return nil
	}

	refs, err := collectTargets(ctx, txn, vertexID, EdgeReference)
	if err != nil {
		return err
	}

	for _, geom := range refs {
		if err := visitor.OnIndexReference(ctx, txn, geom); err != nil {
			return err
		}
	}

	return nil
}

// Visit runs visitor over the whole tree in a single transaction.
func (idx *Index) Visit(ctx context.Context, visitor Visitor) error {
	return WithTxn(ctx, idx.store, func(txn Txn) error {
		return idx.visit(ctx, txn, visitor, idx.rootID)
	})
}

// visitInTx is the per-leaf-batched traversal mode (C6's other mode): internal vertices are walked with read-only
// lookups, but a leaf's batch of OnIndexReference calls runs inside its own short-lived transaction. This bounds
// the transaction's working set to one leaf's worth of references regardless of the tree's total size, at the cost
// of weaker cross-leaf atomicity — used by operations (RemoveAll) that must tolerate a mid-traversal abort leaving
// a well-formed, partially-processed tree.
func (idx *Index) visitInTx(ctx context.Context, visitor Visitor, vertexID graph.ID) error {
	var (
		leaf     bool
		children []graph.ID
		refs     []graph.ID
	)

	if err := WithTxn(ctx, idx.store, func(txn Txn) error {
		bbox, err := nodeBBox(ctx, txn, vertexID)
		if err != nil {
			return err
		}

		if !visitor.NeedsToVisit(bbox) {
			return nil
		}

		if leaf, err = isLeaf(ctx, txn, vertexID); err != nil {
			return err
		}

		if leaf {
			refs, err = collectTargets(ctx, txn, vertexID, EdgeReference)
		} else {
			children, err = collectTargets(ctx, txn, vertexID, EdgeChild)
		}

		return err
	}); err != nil {
		return err
	}

	if len(refs) == 0 && len(children) == 0 {
		return nil
	}

	if !leaf {
		for _, child := range children {
			if err := idx.visitInTx(ctx, visitor, child); err != nil {
				return err
			}
		}

		return nil
	}

	return WithTxn(ctx, idx.store, func(txn Txn) error {
		for _, geom := range refs {
			if err := visitor.OnIndexReference(ctx, txn, geom); err != nil {
				return err
			}
		}

		return nil
	})
}

// VisitInTx runs visitor over the whole tree in the per-leaf-batched transaction mode.
func (idx *Index) VisitInTx(ctx context.Context, visitor Visitor) error {
	return idx.visitInTx(ctx, visitor, idx.rootID)
}

func collectTargets(ctx context.Context, txn Adapter, id graph.ID, kind graph.Kind) ([]graph.ID, error) {
	var targets []graph.ID

	err := txn.IterateOut(ctx, id, kind, func(_ graph.ID, target graph.ID) (bool, error) {
		targets = append(targets, target)
		return true, nil
	})

	return targets, wrapHostError("collect targets", err)
}
