package format_test

import (
	"bytes"
	"testing"

	"github.com/specterops/geoidx/cypher/models/cypher"
	"github.com/specterops/geoidx/cypher/models/cypher/format"
	"github.com/specterops/geoidx/graph"
	v2 "github.com/specterops/geoidx/query"
	"github.com/stretchr/testify/require"
)

func TestRegularQuery(t *testing.T) {
	preparedQuery, err := v2.New().Where(
		v2.Node().Property("value").Equals("PII"),
	).Return(
		v2.Node(),
	).Build()
	require.NoError(t, err)

	cypherQueryStr, err := format.RegularQuery(preparedQuery.Query, false)
	require.NoError(t, err)
	require.Equal(t, "match (n) where n.value = 'PII' return n", cypherQueryStr)
}

func TestCypherEmitter_StripLiterals(t *testing.T) {
	preparedQuery, err := v2.New().Where(
		v2.Node().Property("value").Equals("PII"),
	).Return(
		v2.Node(),
	).Build()
	require.NoError(t, err)

	var (
		buffer  = &bytes.Buffer{}
		emitter = format.Emitter{StripLiterals: true}
	)

	require.NoError(t, emitter.Write(preparedQuery.Query, buffer))
	require.Equal(t, "match (n) where n.value = $STRIPPED return n", buffer.String())
}

func TestRegularQuery_KindMatcherNegation(t *testing.T) {
	preparedQuery, err := v2.New().Where(
		v2.Not(v2.Relationship().Kind().Is(graph.StringKind("test"))),
	).Return(
		v2.Relationship(),
	).Build()
	require.NoError(t, err)

	cypherQueryStr, err := format.RegularQuery(preparedQuery.Query, false)
	require.NoError(t, err)
	require.Equal(t, "match ()-[r]->() where type(r) <> 'test' return r", cypherQueryStr)
}

func TestRegularQuery_Create(t *testing.T) {
	preparedQuery, err := v2.New().Create(
		v2.Node().NodePattern(graph.Kinds{graph.StringKind("A")}, cypher.NewParameter("props", map[string]any{})),
	).Build()
	require.NoError(t, err)

	cypherQueryStr, err := format.RegularQuery(preparedQuery.Query, false)
	require.NoError(t, err)
	require.Equal(t, "create (n:A $props)", cypherQueryStr)
}
