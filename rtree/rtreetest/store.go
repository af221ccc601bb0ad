// Package rtreetest provides an in-memory rtree.Adapter/Txn/Store fake, used by this module's own tests in place of
// a real graph database. It supports the same commit-or-rollback contract as the production adapter: mutations are
// applied as they happen and unwound from an undo log if a transaction finishes without a prior call to Success.
package rtreetest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree"
)

type vertex struct {
	id         graph.ID
	properties map[string]any
}

type edgeRecord struct {
	id   graph.ID
	kind graph.Kind
	from graph.ID
	to   graph.ID
}

// Store is an in-memory implementation of rtree.Store backed by plain maps, guarded by a single mutex. It is safe
// for concurrent use but makes no attempt at snapshot isolation between concurrently open transactions.
type Store struct {
	mu sync.Mutex

	nextID   uint64
	vertices map[graph.ID]*vertex
	edges    map[graph.ID]*edgeRecord

	// outEdges[v][kind] lists edge IDs outgoing from v of that kind, in creation order.
	outEdges map[graph.ID]map[graph.Kind][]graph.ID
	inEdges  map[graph.ID]map[graph.Kind][]graph.ID
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		vertices: map[graph.ID]*vertex{},
		edges:    map[graph.ID]*edgeRecord{},
		outEdges: map[graph.ID]map[graph.Kind][]graph.ID{},
		inEdges:  map[graph.ID]map[graph.Kind][]graph.ID{},
	}
}

func (s *Store) allocID() graph.ID {
	return graph.ID(atomic.AddUint64(&s.nextID, 1))
}

// Begin opens a new transaction against the store.
func (s *Store) Begin(context.Context) (rtree.Txn, error) {
	return &txn{store: s}, nil
}

// undoOp is one inverse action replayed, in reverse order, if a transaction is abandoned without Success.
type undoOp func(s *Store)

type txn struct {
	store    *Store
	undoLog  []undoOp
	finished bool
	success  bool
}

func (t *txn) Success() {
	t.success = true
}

func (t *txn) Finish() error {
	if t.finished {
		return nil
	}

	t.finished = true

	if !t.success {
		t.store.mu.Lock()
		for i := len(t.undoLog) - 1; i >= 0; i-- {
			t.undoLog[i](t.store)
		}
		t.store.mu.Unlock()
	}

	return nil
}

func (t *txn) CreateVertex(context.Context) (graph.ID, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	id := t.store.allocID()
	t.store.vertices[id] = &vertex{id: id, properties: map[string]any{}}

	t.undoLog = append(t.undoLog, func(s *Store) {
		delete(s.vertices, id)
	})

	return id, nil
}

func (t *txn) DeleteVertex(_ context.Context, id graph.ID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	removed := t.store.vertices[id]
	delete(t.store.vertices, id)

	t.undoLog = append(t.undoLog, func(s *Store) {
		if removed != nil {
			s.vertices[id] = removed
		}
	})

	return nil
}

func (t *txn) VertexExists(_ context.Context, id graph.ID) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	_, found := t.store.vertices[id]
	return found, nil
}

func (t *txn) GetProperty(_ context.Context, id graph.ID, key string) (graph.PropertyValue, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	v, found := t.store.vertices[id]
	if !found {
		return graph.NewPropertyValue(nil), graph.ErrPropertyNotFound
	}

	value, found := v.properties[key]
	if !found {
		return graph.NewPropertyValue(nil), graph.ErrPropertyNotFound
	}

	return graph.NewPropertyValue(value), nil
}

func (t *txn) HasProperty(_ context.Context, id graph.ID, key string) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	v, found := t.store.vertices[id]
	if !found {
		return false, nil
	}

	_, found = v.properties[key]
	return found, nil
}

func (t *txn) SetProperty(_ context.Context, id graph.ID, key string, value any) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	v, found := t.store.vertices[id]
	if !found {
		return graph.ErrPropertyNotFound
	}

	previous, had := v.properties[key]
	v.properties[key] = value

	t.undoLog = append(t.undoLog, func(s *Store) {
		if had {
			v.properties[key] = previous
		} else {
			delete(v.properties, key)
		}
	})

	return nil
}

func (t *txn) RemoveProperty(_ context.Context, id graph.ID, key string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	v, found := t.store.vertices[id]
	if !found {
		return nil
	}

	previous, had := v.properties[key]
	delete(v.properties, key)

	t.undoLog = append(t.undoLog, func(s *Store) {
		if had {
			v.properties[key] = previous
		}
	})

	return nil
}

func (t *txn) Connect(_ context.Context, from, to graph.ID, kind graph.Kind) (graph.ID, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	id := t.store.allocID()
	t.store.edges[id] = &edgeRecord{id: id, kind: kind, from: from, to: to}

	if t.store.outEdges[from] == nil {
		t.store.outEdges[from] = map[graph.Kind][]graph.ID{}
	}
	t.store.outEdges[from][kind] = append(t.store.outEdges[from][kind], id)

	if t.store.inEdges[to] == nil {
		t.store.inEdges[to] = map[graph.Kind][]graph.ID{}
	}
	t.store.inEdges[to][kind] = append(t.store.inEdges[to][kind], id)

	t.undoLog = append(t.undoLog, func(s *Store) {
		delete(s.edges, id)
		s.outEdges[from][kind] = removeID(s.outEdges[from][kind], id)
		s.inEdges[to][kind] = removeID(s.inEdges[to][kind], id)
	})

	return id, nil
}

func (t *txn) DeleteEdge(_ context.Context, id graph.ID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	edge, found := t.store.edges[id]
	if !found {
		return nil
	}

	delete(t.store.edges, id)
	t.store.outEdges[edge.from][edge.kind] = removeID(t.store.outEdges[edge.from][edge.kind], id)
	t.store.inEdges[edge.to][edge.kind] = removeID(t.store.inEdges[edge.to][edge.kind], id)

	t.undoLog = append(t.undoLog, func(s *Store) {
		s.edges[id] = edge
		s.outEdges[edge.from][edge.kind] = append(s.outEdges[edge.from][edge.kind], id)
		s.inEdges[edge.to][edge.kind] = append(s.inEdges[edge.to][edge.kind], id)
	})

	return nil
}

func (t *txn) IterateOut(_ context.Context, id graph.ID, kind graph.Kind, visit func(edge, target graph.ID) (bool, error)) error {
	t.store.mu.Lock()
	edgeIDs := append([]graph.ID(nil), t.store.outEdges[id][kind]...)
	t.store.mu.Unlock()

	for _, edgeID := range edgeIDs {
		t.store.mu.Lock()
		edge, found := t.store.edges[edgeID]
		t.store.mu.Unlock()

		if !found {
			continue
		}

		cont, err := visit(edge.id, edge.to)
		if err != nil {
			return err
		}

		if !cont {
			return nil
		}
	}

	return nil
}

func (t *txn) IterateIn(_ context.Context, id graph.ID, kind graph.Kind, visit func(edge, source graph.ID) (bool, error)) error {
	t.store.mu.Lock()
	edgeIDs := append([]graph.ID(nil), t.store.inEdges[id][kind]...)
	t.store.mu.Unlock()

	for _, edgeID := range edgeIDs {
		t.store.mu.Lock()
		edge, found := t.store.edges[edgeID]
		t.store.mu.Unlock()

		if !found {
			continue
		}

		cont, err := visit(edge.id, edge.from)
		if err != nil {
			return err
		}

		if !cont {
			return nil
		}
	}

	return nil
}

func (t *txn) SingleOut(ctx context.Context, id graph.ID, kind graph.Kind) (graph.ID, graph.ID, bool, error) {
	var (
		edgeID, target graph.ID
		found          bool
	)

	err := t.IterateOut(ctx, id, kind, func(edge, to graph.ID) (bool, error) {
		edgeID, target, found = edge, to, true
		return false, nil
	})

	return edgeID, target, found, err
}

func (t *txn) SingleIn(ctx context.Context, id graph.ID, kind graph.Kind) (graph.ID, graph.ID, bool, error) {
	var (
		edgeID, source graph.ID
		found          bool
	)

	err := t.IterateIn(ctx, id, kind, func(edge, from graph.ID) (bool, error) {
		edgeID, source, found = edge, from, true
		return false, nil
	})

	return edgeID, source, found, err
}

func removeID(ids []graph.ID, target graph.ID) []graph.ID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
