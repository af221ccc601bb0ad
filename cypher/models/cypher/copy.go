package cypher

import "github.com/specterops/geoidx/graph"

// Copy returns a shallow copy of node: a new pointer (or new slice header) with the same field values. Nested
// pointers and slices are shared with the original rather than recursively copied, which is sufficient for this
// package's use (detaching a criteria node from one query so it can be attached to another without the two queries
// aliasing the node itself).
func Copy[T any](node T) T {
	copied, _ := copyAny(any(node)).(T)
	return copied
}

func copyAny(node any) any {
	switch n := node.(type) {
	case nil:
		return nil

	case *RegularQuery:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *SingleQuery:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *SinglePartQuery:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *MultiPartQuery:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *MultiPartQueryPart:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *IDInCollection:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *FilterExpression:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Quantifier:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Remove:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *ArithmeticExpression:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PartialArithmeticExpression:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Parenthetical:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Comparison:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PartialComparison:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *SetItem:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Order:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Skip:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Limit:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *RemoveItem:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *FunctionInvocation:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Variable:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Parameter:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Literal:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Projection:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *ProjectionItem:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PropertyLookup:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Set:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Delete:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Create:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *KindMatcher:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Conjunction:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Disjunction:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *ExclusiveDisjunction:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PatternPart:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PatternElement:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Negation:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *NodePattern:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *RelationshipPattern:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PatternRange:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *UpdatingClause:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *SortItem:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *PatternPredicate:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *ReadingClause:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Match:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Where:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case *Return:
		if n == nil {
			return n
		}
		c := *n
		return &c

	case []*PatternPart:
		c := make([]*PatternPart, len(n))
		copy(c, n)
		return c

	case []string:
		c := make([]string, len(n))
		copy(c, n)
		return c

	case graph.Kinds:
		c := make(graph.Kinds, len(n))
		copy(c, n)
		return c

	default:
		return node
	}
}
