package walk

import "github.com/specterops/geoidx/cypher/models/cypher"

// newCypherWalkCursor enumerates the direct children of a Cypher AST node for Generic to descend into. Leaf nodes
// (Variable, Parameter, Literal, PatternRange, Quantifier, and anything unrecognized) fall through to the default
// case with no branches.
func newCypherWalkCursor(node cypher.SyntaxNode) (*Cursor[cypher.SyntaxNode], error) {
	cursor := &Cursor[cypher.SyntaxNode]{Node: node}

	switch typedNode := node.(type) {
	case *cypher.RegularQuery:
		if typedNode.SingleQuery != nil {
			cursor.AddBranches(typedNode.SingleQuery)
		}

	case *cypher.SingleQuery:
		if typedNode.SinglePartQuery != nil {
			cursor.AddBranches(typedNode.SinglePartQuery)
		}

		if typedNode.MultiPartQuery != nil {
			cursor.AddBranches(typedNode.MultiPartQuery)
		}

	case *cypher.MultiPartQuery:
		for _, part := range typedNode.Parts {
			cursor.AddBranches(part)
		}

		if typedNode.SinglePartQuery != nil {
			cursor.AddBranches(typedNode.SinglePartQuery)
		}

	case *cypher.MultiPartQueryPart:
		for _, readingClause := range typedNode.ReadingClauses {
			cursor.AddBranches(readingClause)
		}

		for _, updatingClause := range typedNode.UpdatingClauses {
			cursor.AddBranches(updatingClause)
		}

		if typedNode.With != nil {
			cursor.AddBranches(typedNode.With)
		}

	case *cypher.SinglePartQuery:
		for _, readingClause := range typedNode.ReadingClauses {
			cursor.AddBranches(readingClause)
		}

		for _, updatingClause := range typedNode.UpdatingClauses {
			cursor.AddBranches(updatingClause)
		}

		if typedNode.Return != nil {
			cursor.AddBranches(typedNode.Return)
		}

	case *cypher.ReadingClause:
		if typedNode.Match != nil {
			cursor.AddBranches(typedNode.Match)
		}

		if typedNode.Unwind != nil {
			cursor.AddBranches(typedNode.Unwind)
		}

	case *cypher.Unwind:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

		if typedNode.Binding != nil {
			cursor.AddBranches(typedNode.Binding)
		}

	case *cypher.Match:
		for _, patternPart := range typedNode.Pattern {
			cursor.AddBranches(patternPart)
		}

		if typedNode.Where != nil {
			cursor.AddBranches(typedNode.Where)
		}

	case *cypher.Where:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

	case *cypher.PatternPart:
		if typedNode.Variable != nil {
			cursor.AddBranches(typedNode.Variable)
		}

		for _, element := range typedNode.PatternElements {
			cursor.AddBranches(element)
		}

	case *cypher.PatternElement:
		if typedNode.NodePattern != nil {
			cursor.AddBranches(typedNode.NodePattern)
		}

		if typedNode.RelationshipPattern != nil {
			cursor.AddBranches(typedNode.RelationshipPattern)
		}

	case *cypher.NodePattern:
		if typedNode.Variable != nil {
			cursor.AddBranches(typedNode.Variable)
		}

		if typedNode.Properties != nil {
			cursor.AddBranches(typedNode.Properties)
		}

	case *cypher.RelationshipPattern:
		if typedNode.Variable != nil {
			cursor.AddBranches(typedNode.Variable)
		}

		if typedNode.Properties != nil {
			cursor.AddBranches(typedNode.Properties)
		}

	case *cypher.PatternPredicate:
		for _, element := range typedNode.PatternElements {
			cursor.AddBranches(element)
		}

	case *cypher.KindMatcher:
		if typedNode.Reference != nil {
			cursor.AddBranches(typedNode.Reference)
		}

	case *cypher.FunctionInvocation:
		for _, argument := range typedNode.Arguments {
			cursor.AddBranches(argument)
		}

	case *cypher.Comparison:
		if typedNode.Left != nil {
			cursor.AddBranches(typedNode.Left)
		}

		for _, partial := range typedNode.Partials {
			cursor.AddBranches(partial)
		}

	case *cypher.PartialComparison:
		if typedNode.Right != nil {
			cursor.AddBranches(typedNode.Right)
		}

	case *cypher.ArithmeticExpression:
		if typedNode.Left != nil {
			cursor.AddBranches(typedNode.Left)
		}

		for _, partial := range typedNode.Partials {
			cursor.AddBranches(partial)
		}

	case *cypher.PartialArithmeticExpression:
		if typedNode.Right != nil {
			cursor.AddBranches(typedNode.Right)
		}

	case *cypher.Negation:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

	case *cypher.Parenthetical:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

	case *cypher.Conjunction:
		for _, expression := range typedNode.Expressions {
			cursor.AddBranches(expression)
		}

	case *cypher.Disjunction:
		for _, expression := range typedNode.Expressions {
			cursor.AddBranches(expression)
		}

	case *cypher.ExclusiveDisjunction:
		for _, expression := range typedNode.Expressions {
			cursor.AddBranches(expression)
		}

	case *cypher.PropertyLookup:
		if typedNode.Atom != nil {
			cursor.AddBranches(typedNode.Atom)
		}

	case *cypher.IDInCollection:
		if typedNode.Variable != nil {
			cursor.AddBranches(typedNode.Variable)
		}

		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

	case *cypher.FilterExpression:
		if typedNode.Binding != nil {
			cursor.AddBranches(typedNode.Binding)
		}

		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

		if typedNode.Where != nil {
			cursor.AddBranches(typedNode.Where)
		}

	case *cypher.Return:
		if typedNode.Projection != nil {
			cursor.AddBranches(typedNode.Projection)
		}

	case *cypher.Projection:
		for _, item := range typedNode.Items {
			cursor.AddBranches(item)
		}

		if typedNode.Order != nil {
			cursor.AddBranches(typedNode.Order)
		}

		if typedNode.Skip != nil {
			cursor.AddBranches(typedNode.Skip)
		}

		if typedNode.Limit != nil {
			cursor.AddBranches(typedNode.Limit)
		}

	case *cypher.ProjectionItem:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

		if typedNode.Alias != nil {
			cursor.AddBranches(typedNode.Alias)
		}

	case *cypher.Order:
		for _, item := range typedNode.Items {
			cursor.AddBranches(item)
		}

	case *cypher.SortItem:
		if typedNode.Expression != nil {
			cursor.AddBranches(typedNode.Expression)
		}

	case *cypher.Skip:
		if typedNode.Value != nil {
			cursor.AddBranches(typedNode.Value)
		}

	case *cypher.Limit:
		if typedNode.Value != nil {
			cursor.AddBranches(typedNode.Value)
		}

	case *cypher.UpdatingClause:
		if typedNode.Clause != nil {
			cursor.AddBranches(typedNode.Clause)
		}

	case *cypher.Create:
		for _, patternPart := range typedNode.Pattern {
			cursor.AddBranches(patternPart)
		}

	case *cypher.Delete:
		for _, expression := range typedNode.Expressions {
			cursor.AddBranches(expression)
		}

	case *cypher.Set:
		for _, item := range typedNode.Items {
			cursor.AddBranches(item)
		}

	case *cypher.SetItem:
		if typedNode.Left != nil {
			cursor.AddBranches(typedNode.Left)
		}

		if typedNode.Right != nil {
			cursor.AddBranches(typedNode.Right)
		}

	case *cypher.Remove:
		for _, item := range typedNode.Items {
			cursor.AddBranches(item)
		}

	case *cypher.RemoveItem:
		if typedNode.KindMatcher != nil {
			cursor.AddBranches(typedNode.KindMatcher)
		}

		if typedNode.Property != nil {
			cursor.AddBranches(typedNode.Property)
		}

	default:
		// Leaf node: *Variable, *Parameter, *Literal, *PatternRange, *Quantifier, and anything else this walker
		// doesn't know about yet have no children to descend into.
	}

	return cursor, nil
}
