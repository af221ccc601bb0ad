package rtreetest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specterops/geoidx/graph"
	"github.com/specterops/geoidx/rtree/rtreetest"
	"github.com/stretchr/testify/require"
)

func TestStore_CommitPersistsMutations(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	id, err := txn.CreateVertex(ctx)
	require.NoError(t, err)
	require.NoError(t, txn.SetProperty(ctx, id, "k", "v"))
	txn.Success()
	require.NoError(t, txn.Finish())

	readTxn, err := store.Begin(ctx)
	require.NoError(t, err)

	exists, err := readTxn.VertexExists(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)

	value, err := readTxn.GetProperty(ctx, id, "k")
	require.NoError(t, err)

	str, err := value.String()
	require.NoError(t, err)
	require.Equal(t, "v", str)

	require.NoError(t, readTxn.Finish())
}

func TestStore_AbortedTxnRollsBack(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	id, err := txn.CreateVertex(ctx)
	require.NoError(t, err)

	// no Success call: Finish must roll the vertex creation back.
	require.NoError(t, txn.Finish())

	readTxn, err := store.Begin(ctx)
	require.NoError(t, err)
	defer readTxn.Finish()

	exists, err := readTxn.VertexExists(ctx, id)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestStore_PropertyMutationRollsBack(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()

	var id graph.ID

	setupTxn, err := store.Begin(ctx)
	require.NoError(t, err)

	id, err = setupTxn.CreateVertex(ctx)
	require.NoError(t, err)
	require.NoError(t, setupTxn.SetProperty(ctx, id, "k", "original"))
	setupTxn.Success()
	require.NoError(t, setupTxn.Finish())

	mutateTxn, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, mutateTxn.SetProperty(ctx, id, "k", "mutated"))
	require.NoError(t, mutateTxn.Finish()) // aborted: no Success

	readTxn, err := store.Begin(ctx)
	require.NoError(t, err)
	defer readTxn.Finish()

	value, err := readTxn.GetProperty(ctx, id, "k")
	require.NoError(t, err)

	str, err := value.String()
	require.NoError(t, err)
	require.Equal(t, "original", str)
}

func TestStore_ConnectAndIterate(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()
	kind := graph.StringKind("EDGE")

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	a, err := txn.CreateVertex(ctx)
	require.NoError(t, err)
	b, err := txn.CreateVertex(ctx)
	require.NoError(t, err)
	c, err := txn.CreateVertex(ctx)
	require.NoError(t, err)

	_, err = txn.Connect(ctx, a, b, kind)
	require.NoError(t, err)
	_, err = txn.Connect(ctx, a, c, kind)
	require.NoError(t, err)

	var targets []graph.ID

	require.NoError(t, txn.IterateOut(ctx, a, kind, func(_ graph.ID, target graph.ID) (bool, error) {
		targets = append(targets, target)
		return true, nil
	}))

	require.ElementsMatch(t, []graph.ID{b, c}, targets)

	_, source, found, err := txn.SingleIn(ctx, b, kind)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, a, source)

	txn.Success()
	require.NoError(t, txn.Finish())
}

func TestStore_DeleteEdgeRemovesBothDirections(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()
	kind := graph.StringKind("EDGE")

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	a, err := txn.CreateVertex(ctx)
	require.NoError(t, err)
	b, err := txn.CreateVertex(ctx)
	require.NoError(t, err)

	edgeID, err := txn.Connect(ctx, a, b, kind)
	require.NoError(t, err)

	require.NoError(t, txn.DeleteEdge(ctx, edgeID))

	_, _, found, err := txn.SingleOut(ctx, a, kind)
	require.NoError(t, err)
	require.False(t, found)

	_, _, found, err = txn.SingleIn(ctx, b, kind)
	require.NoError(t, err)
	require.False(t, found)

	txn.Success()
	require.NoError(t, txn.Finish())
}

func TestStore_GetPropertyMissingKeyIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := rtreetest.New()

	txn, err := store.Begin(ctx)
	require.NoError(t, err)

	id, err := txn.CreateVertex(ctx)
	require.NoError(t, err)

	_, err = txn.GetProperty(ctx, id, "missing")
	require.True(t, errors.Is(err, graph.ErrPropertyNotFound))

	txn.Success()
	require.NoError(t, txn.Finish())
}
