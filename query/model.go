package query

import "github.com/specterops/geoidx/cypher/models/cypher"

// GetFirstReadingClause returns the first reading clause of query's single-part body, or nil if it has none yet.
func GetFirstReadingClause(query *cypher.RegularQuery) *cypher.ReadingClause {
	if query.SingleQuery != nil && query.SingleQuery.SinglePartQuery != nil {
		readingClauses := query.SingleQuery.SinglePartQuery.ReadingClauses

		if len(readingClauses) > 0 {
			return readingClauses[0]
		}
	}

	return nil
}

// EmptySinglePartQuery returns a RegularQuery with an empty single-part body ready for a Builder to fill in.
func EmptySinglePartQuery() *cypher.RegularQuery {
	return &cypher.RegularQuery{
		SingleQuery: &cypher.SingleQuery{
			SinglePartQuery: &cypher.SinglePartQuery{},
		},
	}
}

// OrderBy folds leaves, each expected to be a *cypher.SortItem, into a cypher.Order.
func OrderBy(leaves ...cypher.SyntaxNode) *cypher.Order {
	items := make([]*cypher.SortItem, 0, len(leaves))

	for _, leaf := range leaves {
		if sortItem, ok := leaf.(*cypher.SortItem); ok {
			items = append(items, sortItem)
		}
	}

	return &cypher.Order{Items: items}
}

// Order builds a single sort item for reference sorted in the given direction.
func Order(reference cypher.SyntaxNode, direction cypher.SortOrder) *cypher.SortItem {
	switch direction {
	case cypher.SortDescending:
		return &cypher.SortItem{Ascending: false, Expression: reference}

	default:
		return &cypher.SortItem{Ascending: true, Expression: reference}
	}
}

// Ascending is the default sort direction passed to Order.
func Ascending() cypher.SortOrder {
	return cypher.SortAscending
}

// Descending reverses the sort direction passed to Order.
func Descending() cypher.SortOrder {
	return cypher.SortDescending
}
