// Package graphstore adapts a production v1compat.Database into the rtree.Store/rtree.Adapter contract, so that an
// index layer can live inside the same host graph as the rest of an application's domain data instead of a
// dedicated store.
package graphstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/specterops/geoidx/database/v1compat"
	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/query"
	"github.com/specterops/geoidx/rtree"
)

// VertexKind tags every vertex an index layer creates, so that index internals are distinguishable from the host
// graph's own domain nodes sharing the same database. Edge kinds are not tagged here: rtree.schema already defines
// the fixed set of edge kinds (EdgeRoot, EdgeChild, EdgeReference, ...) an index creates, and Connect takes the kind
// as a caller-supplied argument rather than this package imposing its own.
var VertexKind = v1compat.StringKind("RTreeIndexNode")

var errAbortTransaction = errors.New("graphstore: transaction rolled back")

// Store adapts a v1compat.Database into rtree.Store. A single Store may back any number of index layers, each
// scoped by the layer vertex passed to rtree.Open.
type Store struct {
	db v1compat.Database
}

// New returns a Store backed by db.
func New(db v1compat.Database) *Store {
	return &Store{db: db}
}

// Begin bridges v1compat.Database's callback-style WriteTransaction into the handle-based rtree.Txn contract: it
// starts WriteTransaction on a background goroutine, blocks that goroutine's delegate on a channel until Finish is
// called, and relays the eventual commit/rollback outcome back through Finish's return value.
func (s *Store) Begin(ctx context.Context) (rtree.Txn, error) {
	var (
		readyCh = make(chan *txn, 1)
		errCh   = make(chan error, 1)
	)

	go func() {
		err := s.db.WriteTransaction(ctx, func(tx v1compat.Transaction) error {
			t := &txn{
				ctx:       ctx,
				tx:        tx,
				releaseCh: make(chan struct{}),
			}

			readyCh <- t
			<-t.releaseCh

			if !t.success {
				return errAbortTransaction
			}

			return nil
		})

		if err != nil && !errors.Is(err, errAbortTransaction) {
			errCh <- err
			return
		}

		errCh <- nil
	}()

	select {
	case t := <-readyCh:
		t.doneCh = errCh
		return t, nil
	case err := <-errCh:
		return nil, err
	}
}

// txn implements rtree.Txn over a single live v1compat.Transaction, captured from inside a WriteTransaction
// delegate that blocks on releaseCh until Finish runs.
type txn struct {
	ctx context.Context
	tx  v1compat.Transaction

	releaseCh chan struct{}
	doneCh    chan error

	success  bool
	finished bool
}

func (t *txn) Success() {
	t.success = true
}

func (t *txn) Finish() error {
	if t.finished {
		return nil
	}

	t.finished = true
	close(t.releaseCh)

	return <-t.doneCh
}

func (t *txn) CreateVertex(context.Context) (graph.ID, error) {
	node, err := t.tx.CreateNode(v1compat.NewProperties(), VertexKind)
	if err != nil {
		return 0, err
	}

	return node.ID, nil
}

func (t *txn) DeleteVertex(_ context.Context, id graph.ID) error {
	return t.tx.Nodes().Filter(query.Node().ID().Equals(id)).Delete()
}

func (t *txn) VertexExists(_ context.Context, id graph.ID) (bool, error) {
	count, err := t.tx.Nodes().Filter(query.Node().ID().Equals(id)).Count()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (t *txn) fetchNode(id graph.ID) (*graph.Node, error) {
	node, err := t.tx.Nodes().Filter(query.Node().ID().Equals(id)).First()

	if errors.Is(err, v1compat.ErrNoResultsFound) {
		return nil, fmt.Errorf("vertex %d: %w", id.Uint64(), graph.ErrPropertyNotFound)
	}

	return node, err
}

func (t *txn) GetProperty(_ context.Context, id graph.ID, key string) (graph.PropertyValue, error) {
	node, err := t.fetchNode(id)
	if err != nil {
		return nil, err
	}

	if !node.Properties.Exists(key) {
		return nil, graph.ErrPropertyNotFound
	}

	return node.Properties.Get(key), nil
}

func (t *txn) HasProperty(_ context.Context, id graph.ID, key string) (bool, error) {
	node, err := t.fetchNode(id)
	if err != nil {
		return false, err
	}

	return node.Properties.Exists(key), nil
}

func (t *txn) SetProperty(_ context.Context, id graph.ID, key string, value any) error {
	properties := v1compat.NewProperties()
	properties.Set(key, value)

	return t.tx.UpdateNode(v1compat.NewNode(id, properties))
}

func (t *txn) RemoveProperty(_ context.Context, id graph.ID, key string) error {
	properties := v1compat.NewProperties()
	properties.Deleted[key] = struct{}{}

	return t.tx.UpdateNode(v1compat.NewNode(id, properties))
}

func (t *txn) Connect(_ context.Context, from, to graph.ID, kind graph.Kind) (graph.ID, error) {
	relationship, err := t.tx.CreateRelationshipByIDs(from, to, kind, v1compat.NewProperties())
	if err != nil {
		return 0, err
	}

	return relationship.ID, nil
}

func (t *txn) DeleteEdge(_ context.Context, edge graph.ID) error {
	return t.tx.Relationships().Filter(query.Relationship().ID().Equals(edge)).Delete()
}

func (t *txn) IterateOut(_ context.Context, id graph.ID, kind graph.Kind, visit func(edge, target graph.ID) (bool, error)) error {
	criteria := query.And(query.Start().ID().Equals(id), query.Relationship().Kind().Is(kind))

	return t.tx.Relationships().Filter(criteria).Fetch(func(cursor v1compat.Cursor[*graph.Relationship]) error {
		for relationship := range cursor.Chan() {
			cont, err := visit(relationship.ID, relationship.EndID)
			if err != nil {
				cursor.Close()
				return err
			}

			if !cont {
				cursor.Close()
				break
			}
		}

		return cursor.Error()
	})
}

func (t *txn) IterateIn(_ context.Context, id graph.ID, kind graph.Kind, visit func(edge, source graph.ID) (bool, error)) error {
	criteria := query.And(query.End().ID().Equals(id), query.Relationship().Kind().Is(kind))

	return t.tx.Relationships().Filter(criteria).Fetch(func(cursor v1compat.Cursor[*graph.Relationship]) error {
		for relationship := range cursor.Chan() {
			cont, err := visit(relationship.ID, relationship.StartID)
			if err != nil {
				cursor.Close()
				return err
			}

			if !cont {
				cursor.Close()
				break
			}
		}

		return cursor.Error()
	})
}

func (t *txn) SingleOut(_ context.Context, id graph.ID, kind graph.Kind) (edge graph.ID, target graph.ID, found bool, err error) {
	criteria := query.And(query.Start().ID().Equals(id), query.Relationship().Kind().Is(kind))

	relationship, queryErr := t.tx.Relationships().Filter(criteria).Limit(1).First()
	if errors.Is(queryErr, v1compat.ErrNoResultsFound) {
		return 0, 0, false, nil
	} else if queryErr != nil {
		return 0, 0, false, queryErr
	}

	return relationship.ID, relationship.EndID, true, nil
}

func (t *txn) SingleIn(_ context.Context, id graph.ID, kind graph.Kind) (edge graph.ID, source graph.ID, found bool, err error) {
	criteria := query.And(query.End().ID().Equals(id), query.Relationship().Kind().Is(kind))

	relationship, queryErr := t.tx.Relationships().Filter(criteria).Limit(1).First()
	if errors.Is(queryErr, v1compat.ErrNoResultsFound) {
		return 0, 0, false, nil
	} else if queryErr != nil {
		return 0, 0, false, queryErr
	}

	return relationship.ID, relationship.StartID, true, nil
}
