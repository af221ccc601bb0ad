package graphstore_test

import (
	"context"
	"testing"

	"github.com/specterops/geoidx/database"
	"github.com/specterops/geoidx/database/v1compat"
	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree/graphstore"
	"github.com/specterops/geoidx/util/size"
	"github.com/stretchr/testify/require"
)

// fakeTransaction satisfies v1compat.Transaction but panics on any method the bridge tests below don't exercise:
// these tests are only concerned with the Begin/Success/Finish commit-vs-rollback wiring, not with any of the
// Adapter method translations (those are exercised indirectly through rtree's own test suite against rtreetest).
type fakeTransaction struct{}

func (fakeTransaction) WithGraph(database.Graph) v1compat.Transaction { panic("not used") }
func (fakeTransaction) CreateNode(*graph.Properties, ...graph.Kind) (*graph.Node, error) {
	panic("not used")
}
func (fakeTransaction) UpdateNode(*graph.Node) error { panic("not used") }
func (fakeTransaction) Nodes() v1compat.NodeQuery    { panic("not used") }
func (fakeTransaction) CreateRelationshipByIDs(graph.ID, graph.ID, graph.Kind, *graph.Properties) (*graph.Relationship, error) {
	panic("not used")
}
func (fakeTransaction) UpdateRelationship(*graph.Relationship) error { panic("not used") }
func (fakeTransaction) Relationships() v1compat.RelationshipQuery    { panic("not used") }
func (fakeTransaction) Query(string, map[string]any) v1compat.Result {
	panic("not used")
}
func (fakeTransaction) Commit() error                   { return nil }
func (fakeTransaction) GraphQueryMemoryLimit() size.Size { return size.Gibibyte }

// fakeDatabase runs WriteTransaction's delegate directly against a fakeTransaction and records whether the
// delegate asked for a commit (nil) or a rollback (non-nil error), mirroring what a real driver's session wrapper
// does with that return value.
type fakeDatabase struct {
	lastCommitted bool
}

func (f *fakeDatabase) SetWriteFlushSize(int) {}
func (f *fakeDatabase) SetBatchWriteSize(int) {}

func (f *fakeDatabase) ReadTransaction(_ context.Context, delegate v1compat.TransactionDelegate, _ ...v1compat.TransactionOption) error {
	return delegate(fakeTransaction{})
}

func (f *fakeDatabase) WriteTransaction(_ context.Context, delegate v1compat.TransactionDelegate, _ ...v1compat.TransactionOption) error {
	err := delegate(fakeTransaction{})
	f.lastCommitted = err == nil
	return err
}

func (f *fakeDatabase) BatchOperation(context.Context, v1compat.BatchDelegate) error { panic("not used") }
func (f *fakeDatabase) AssertSchema(context.Context, database.Schema) error          { return nil }
func (f *fakeDatabase) SetDefaultGraph(context.Context, database.Graph) error        { return nil }
func (f *fakeDatabase) Run(context.Context, string, map[string]any) error            { panic("not used") }
func (f *fakeDatabase) Close(context.Context) error                                 { return nil }
func (f *fakeDatabase) FetchKinds(context.Context) (graph.Kinds, error)              { return nil, nil }
func (f *fakeDatabase) RefreshKinds(context.Context) error                           { return nil }
func (f *fakeDatabase) V2() database.Instance                                        { panic("not used") }

func TestBegin_SuccessCommitsUnderlyingTransaction(t *testing.T) {
	ctx := context.Background()
	db := &fakeDatabase{}
	store := graphstore.New(db)

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	txn.Success()
	require.NoError(t, txn.Finish())
	require.True(t, db.lastCommitted)
}

func TestBegin_NoSuccessRollsBackUnderlyingTransaction(t *testing.T) {
	ctx := context.Background()
	db := &fakeDatabase{}
	store := graphstore.New(db)

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, txn.Finish())
	require.False(t, db.lastCommitted)
}

func TestBegin_FinishIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := graphstore.New(&fakeDatabase{})

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	txn.Success()
	require.NoError(t, txn.Finish())
	require.NoError(t, txn.Finish())
}
