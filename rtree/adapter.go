package rtree

import (
	"context"

	"github.com/specterops/geoidx/graph"
)

// Adapter is the set of graph primitives an index layer needs from its host store, scoped to a single transaction.
// It is deliberately narrow: no Cypher, no query builder, just vertex/edge CRUD and property access, so that both a
// production graph-backed implementation and an in-memory test fake can satisfy it with a handful of methods.
type Adapter interface {
	// CreateVertex allocates a new vertex and returns its ID. The caller is responsible for setting whatever
	// properties and kind the vertex needs via SetProperty.
	CreateVertex(ctx context.Context) (graph.ID, error)

	// DeleteVertex removes a vertex. It does not cascade to edges; callers must detach a vertex before deleting it.
	DeleteVertex(ctx context.Context, id graph.ID) error

	// VertexExists reports whether id currently refers to a live vertex.
	VertexExists(ctx context.Context, id graph.ID) (bool, error)

	// GetProperty returns the value stored under key on id, or ErrPropertyNotFound if it is unset.
	GetProperty(ctx context.Context, id graph.ID, key string) (graph.PropertyValue, error)

	// HasProperty reports whether key is set on id.
	HasProperty(ctx context.Context, id graph.ID, key string) (bool, error)

	// SetProperty stores value under key on id, overwriting any previous value.
	SetProperty(ctx context.Context, id graph.ID, key string, value any) error

	// RemoveProperty deletes key from id. It is not an error to remove an already-absent key.
	RemoveProperty(ctx context.Context, id graph.ID, key string) error

	// Connect creates a new directed edge of the given kind from -> to and returns its ID.
	Connect(ctx context.Context, from, to graph.ID, kind graph.Kind) (graph.ID, error)

	// DeleteEdge removes a single edge by ID.
	DeleteEdge(ctx context.Context, edge graph.ID) error

	// IterateOut visits every outbound edge of the given kind from id, in implementation-defined order, calling
	// visit with the edge and target IDs. Traversal stops early if visit returns false or an error.
	IterateOut(ctx context.Context, id graph.ID, kind graph.Kind, visit func(edge, target graph.ID) (bool, error)) error

	// IterateIn is IterateOut for inbound edges; visit receives the edge and source IDs.
	IterateIn(ctx context.Context, id graph.ID, kind graph.Kind, visit func(edge, source graph.ID) (bool, error)) error

	// SingleOut returns the single outbound edge of the given kind from id. found is false if none exists; it is an
	// internal invariant violation (reported by the caller, not this method) if more than one exists.
	SingleOut(ctx context.Context, id graph.ID, kind graph.Kind) (edge graph.ID, target graph.ID, found bool, err error)

	// SingleIn is SingleOut for the inbound direction.
	SingleIn(ctx context.Context, id graph.ID, kind graph.Kind) (edge graph.ID, source graph.ID, found bool, err error)
}

// Txn is an Adapter bound to a single unit-of-work. Success marks the transaction to be committed when Finish is
// called; without a Success call, Finish rolls back. This mirrors the host store's commit-by-returning-nil callback
// contract while giving index code a handle it can pass around and defer-close like any other transaction API.
type Txn interface {
	Adapter

	// Success marks the transaction for commit. It may be called at most once.
	Success()

	// Finish ends the transaction, committing if Success was called and rolling back otherwise. It always releases
	// the transaction's resources, even on error.
	Finish() error
}

// Store opens transactions against the host graph. A single Store is shared by every layer view backed by the same
// physical index.
type Store interface {
	// Begin opens a new transaction. The returned Txn must be closed with Finish.
	Begin(ctx context.Context) (Txn, error)
}

// WithTxn runs fn inside a fresh transaction opened from store, calling Success on a nil return and always calling
// Finish. It is the standard single-shot entry point used by Store operations that need exactly one transaction.
func WithTxn(ctx context.Context, store Store, fn func(txn Txn) error) error {
	txn, err := store.Begin(ctx)
	if err != nil {
		return wrapHostError("begin transaction", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			txn.Finish()
			panic(recovered)
		}
	}()

	if err := fn(txn); err != nil {
		if finishErr := txn.Finish(); finishErr != nil {
			return err
		}

		return err
	}

	txn.Success()
	return txn.Finish()
}
