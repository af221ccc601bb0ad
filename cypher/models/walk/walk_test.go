package walk_test

import (
	"testing"

	"github.com/specterops/geoidx/cypher/models/cypher"
	"github.com/specterops/geoidx/cypher/models/walk"
	"github.com/specterops/geoidx/graph"
	v2 "github.com/specterops/geoidx/query"
	"github.com/stretchr/testify/require"
)

// TestWalk builds a query through the v2 builder and confirms the walker reaches every bound variable in it.
func TestWalk(t *testing.T) {
	preparedQuery, err := v2.New().Where(
		v2.Not(v2.Relationship().Kind().Is(graph.StringKind("test"))),
		v2.Relationship().Property("rel_prop").LessThanOrEqualTo(1234),
		v2.Start().Kinds().HasOneOf(graph.Kinds{graph.StringKind("test")}),
	).Update(
		v2.Start().Property("this_prop").Set(1234),
	).Return(
		v2.Relationship(),
		v2.Start().Property("node_prop"),
	).Build()
	require.NoError(t, err)

	var visitedSymbols []string

	visitor := walk.NewSimpleVisitor[cypher.SyntaxNode](func(node cypher.SyntaxNode, errorHandler walk.VisitorHandler) {
		if variable, isVariable := node.(*cypher.Variable); isVariable {
			visitedSymbols = append(visitedSymbols, variable.Symbol)
		}
	})

	require.NoError(t, walk.Cypher(preparedQuery.Query, visitor))
	require.Contains(t, visitedSymbols, "r")
	require.Contains(t, visitedSymbols, "s")
}

func TestWalk_Unwind(t *testing.T) {
	unwind := &cypher.Unwind{
		Expression: cypher.NewVariableWithSymbol("list"),
		Binding:    cypher.NewVariableWithSymbol("item"),
	}

	readingClause := &cypher.ReadingClause{Unwind: unwind}

	var seen int

	visitor := walk.NewSimpleVisitor[cypher.SyntaxNode](func(node cypher.SyntaxNode, errorHandler walk.VisitorHandler) {
		if _, isVariable := node.(*cypher.Variable); isVariable {
			seen++
		}
	})

	require.NoError(t, walk.Cypher(readingClause, visitor))
	require.Equal(t, 2, seen)
}
