// Package format renders a cypher AST back into Cypher query text.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/specterops/geoidx/cypher/models/cypher"
	"github.com/specterops/geoidx/graph"
)

// strippedLiteral replaces every literal value when Emitter.StripLiterals is set, collapsing queries that differ
// only by literal value onto the same rendered string.
const strippedLiteral = "$STRIPPED"

// RegularQuery renders query as Cypher query text. When stripLiterals is true, every inline Literal value is
// rendered as $STRIPPED instead of its real value.
func RegularQuery(query *cypher.RegularQuery, stripLiterals bool) (string, error) {
	emitter := &Emitter{StripLiterals: stripLiterals}

	var buffer strings.Builder
	if err := emitter.Write(query, &buffer); err != nil {
		return "", err
	}

	return buffer.String(), nil
}

// Emitter renders a *cypher.RegularQuery to Cypher text.
type Emitter struct {
	StripLiterals bool

	relationshipSymbols map[string]struct{}
}

// Write renders query into w.
func (s *Emitter) Write(query *cypher.RegularQuery, w io.Writer) error {
	if query == nil || query.SingleQuery == nil {
		return fmt.Errorf("empty regular query")
	}

	if query.SingleQuery.MultiPartQuery != nil {
		return fmt.Errorf("format: multi-part queries are not supported")
	}

	singlePartQuery := query.SingleQuery.SinglePartQuery

	if singlePartQuery == nil {
		return fmt.Errorf("format: single query has no body")
	}

	s.relationshipSymbols = collectRelationshipSymbols(singlePartQuery)

	var segments []string

	for _, readingClause := range singlePartQuery.ReadingClauses {
		segment, err := s.formatReadingClause(readingClause)

		if err != nil {
			return err
		}

		segments = append(segments, segment)
	}

	for _, updatingClause := range singlePartQuery.UpdatingClauses {
		segment, err := s.formatExpression(updatingClause.Clause)

		if err != nil {
			return err
		}

		segments = append(segments, segment)
	}

	if singlePartQuery.Return != nil {
		segment, err := s.formatReturn(singlePartQuery.Return)

		if err != nil {
			return err
		}

		segments = append(segments, segment)
	}

	_, err := io.WriteString(w, strings.Join(segments, " "))
	return err
}

// collectRelationshipSymbols walks every pattern reachable from singlePartQuery and records the variable symbol
// bound to each relationship pattern element. Cypher has no `r:Kind` syntax for relationships -- a relationship
// carries exactly one type, tested with the type() function -- so KindMatcher formatting needs to know which
// variables name a relationship rather than a node.
func collectRelationshipSymbols(singlePartQuery *cypher.SinglePartQuery) map[string]struct{} {
	symbols := map[string]struct{}{}

	collectFromPatternParts := func(parts []*cypher.PatternPart) {
		for _, part := range parts {
			for _, element := range part.PatternElements {
				if relationshipPattern, isRelationship := element.AsRelationshipPattern(); isRelationship && relationshipPattern.Variable != nil {
					symbols[relationshipPattern.Variable.Symbol] = struct{}{}
				}
			}
		}
	}

	for _, readingClause := range singlePartQuery.ReadingClauses {
		if readingClause.Match != nil {
			collectFromPatternParts(readingClause.Match.Pattern)
		}
	}

	for _, updatingClause := range singlePartQuery.UpdatingClauses {
		if create, isCreate := updatingClause.Clause.(*cypher.Create); isCreate {
			collectFromPatternParts(create.Pattern)
		}
	}

	return symbols
}

func (s *Emitter) isRelationshipSymbol(symbol string) bool {
	_, isRelationship := s.relationshipSymbols[symbol]
	return isRelationship
}

func (s *Emitter) formatReadingClause(readingClause *cypher.ReadingClause) (string, error) {
	switch {
	case readingClause.Match != nil:
		return s.formatMatch(readingClause.Match)

	case readingClause.Unwind != nil:
		expression, err := s.formatExpression(readingClause.Unwind.Expression)

		if err != nil {
			return "", err
		}

		return fmt.Sprintf("unwind %s as %s", expression, readingClause.Unwind.Binding.Symbol), nil

	default:
		return "", fmt.Errorf("format: reading clause has neither a match nor an unwind")
	}
}

func (s *Emitter) formatMatch(match *cypher.Match) (string, error) {
	pattern, err := s.formatPatternParts(match.Pattern)

	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if match.Optional {
		sb.WriteString("optional match ")
	} else {
		sb.WriteString("match ")
	}

	sb.WriteString(pattern)

	if match.Where != nil && match.Where.Expression != nil {
		whereExpression, err := s.formatExpression(match.Where.Expression)

		if err != nil {
			return "", err
		}

		sb.WriteString(" where ")
		sb.WriteString(whereExpression)
	}

	return sb.String(), nil
}

func (s *Emitter) formatPatternParts(parts []*cypher.PatternPart) (string, error) {
	rendered := make([]string, 0, len(parts))

	for _, part := range parts {
		partStr, err := s.formatPatternPart(part)

		if err != nil {
			return "", err
		}

		rendered = append(rendered, partStr)
	}

	return strings.Join(rendered, ", "), nil
}

func (s *Emitter) formatPatternPart(part *cypher.PatternPart) (string, error) {
	var elements strings.Builder

	for _, element := range part.PatternElements {
		elementStr, err := s.formatPatternElement(element)

		if err != nil {
			return "", err
		}

		elements.WriteString(elementStr)
	}

	switch {
	case part.AllShortestPathsPattern:
		return fmt.Sprintf("allShortestPaths(%s)", elements.String()), nil

	case part.ShortestPathPattern:
		return fmt.Sprintf("shortestPath(%s)", elements.String()), nil

	case part.Variable != nil:
		return fmt.Sprintf("%s = %s", part.Variable.Symbol, elements.String()), nil

	default:
		return elements.String(), nil
	}
}

func (s *Emitter) formatPatternElement(element *cypher.PatternElement) (string, error) {
	if nodePattern, isNodePattern := element.AsNodePattern(); isNodePattern {
		return s.formatNodePattern(nodePattern)
	}

	if relationshipPattern, isRelationshipPattern := element.AsRelationshipPattern(); isRelationshipPattern {
		return s.formatRelationshipPattern(relationshipPattern)
	}

	return "", fmt.Errorf("format: pattern element has neither a node nor a relationship pattern")
}

func (s *Emitter) formatNodePattern(nodePattern *cypher.NodePattern) (string, error) {
	var sb strings.Builder

	sb.WriteString("(")

	if nodePattern.Variable != nil {
		sb.WriteString(nodePattern.Variable.Symbol)
	}

	for _, kind := range nodePattern.Kinds {
		sb.WriteString(":")
		sb.WriteString(kind.String())
	}

	if nodePattern.Properties != nil {
		propertiesStr, err := s.formatExpression(nodePattern.Properties)

		if err != nil {
			return "", err
		}

		sb.WriteString(" ")
		sb.WriteString(propertiesStr)
	}

	sb.WriteString(")")
	return sb.String(), nil
}

func (s *Emitter) formatRelationshipPattern(relationshipPattern *cypher.RelationshipPattern) (string, error) {
	var body strings.Builder

	if relationshipPattern.Variable != nil {
		body.WriteString(relationshipPattern.Variable.Symbol)
	}

	for _, kind := range relationshipPattern.Kinds {
		body.WriteString(":")
		body.WriteString(kind.String())
	}

	if relationshipPattern.Properties != nil {
		propertiesStr, err := s.formatExpression(relationshipPattern.Properties)

		if err != nil {
			return "", err
		}

		body.WriteString(" ")
		body.WriteString(propertiesStr)
	}

	if relationshipPattern.Range != nil {
		body.WriteString("*")

		if relationshipPattern.Range.StartIndex != nil {
			body.WriteString(fmt.Sprintf("%d", *relationshipPattern.Range.StartIndex))
		}

		body.WriteString("..")

		if relationshipPattern.Range.EndIndex != nil {
			body.WriteString(fmt.Sprintf("%d", *relationshipPattern.Range.EndIndex))
		}
	}

	switch relationshipPattern.Direction {
	case graph.DirectionInbound:
		return fmt.Sprintf("<-[%s]-", body.String()), nil

	case graph.DirectionOutbound:
		return fmt.Sprintf("-[%s]->", body.String()), nil

	default:
		return fmt.Sprintf("-[%s]-", body.String()), nil
	}
}

func (s *Emitter) formatReturn(returnClause *cypher.Return) (string, error) {
	projection := returnClause.Projection

	if projection == nil {
		return "return *", nil
	}

	items := make([]string, 0, len(projection.Items))

	for _, item := range projection.Items {
		itemStr, err := s.formatExpression(item.Expression)

		if err != nil {
			return "", err
		}

		if item.Alias != nil {
			itemStr = fmt.Sprintf("%s as %s", itemStr, item.Alias.Symbol)
		}

		items = append(items, itemStr)
	}

	var sb strings.Builder
	sb.WriteString("return ")

	if projection.Distinct {
		sb.WriteString("distinct ")
	}

	if projection.All {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(items, ", "))
	}

	if projection.Order != nil && len(projection.Order.Items) > 0 {
		orderItems := make([]string, 0, len(projection.Order.Items))

		for _, sortItem := range projection.Order.Items {
			sortExpression, err := s.formatExpression(sortItem.Expression)

			if err != nil {
				return "", err
			}

			if sortItem.Ascending {
				orderItems = append(orderItems, sortExpression)
			} else {
				orderItems = append(orderItems, sortExpression+" desc")
			}
		}

		sb.WriteString(" order by ")
		sb.WriteString(strings.Join(orderItems, ", "))
	}

	if projection.Skip != nil {
		skipExpression, err := s.formatExpression(projection.Skip.Value)

		if err != nil {
			return "", err
		}

		sb.WriteString(" skip ")
		sb.WriteString(skipExpression)
	}

	if projection.Limit != nil {
		limitExpression, err := s.formatExpression(projection.Limit.Value)

		if err != nil {
			return "", err
		}

		sb.WriteString(" limit ")
		sb.WriteString(limitExpression)
	}

	return sb.String(), nil
}

func (s *Emitter) formatKindMatcher(matcher *cypher.KindMatcher, negated bool) (string, error) {
	variable, isVariable := matcher.Reference.(*cypher.Variable)

	if isVariable && s.isRelationshipSymbol(variable.Symbol) {
		if len(matcher.Kinds) == 1 {
			operator := "="

			if negated {
				operator = "<>"
			}

			return fmt.Sprintf("type(%s) %s '%s'", variable.Symbol, operator, matcher.Kinds[0].String()), nil
		}

		quoted := make([]string, len(matcher.Kinds))

		for i, kind := range matcher.Kinds {
			quoted[i] = fmt.Sprintf("'%s'", kind.String())
		}

		base := fmt.Sprintf("type(%s) in [%s]", variable.Symbol, strings.Join(quoted, ", "))

		if negated {
			return "not " + base, nil
		}

		return base, nil
	}

	referenceStr, err := s.formatExpression(matcher.Reference)

	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(referenceStr)

	for _, kind := range matcher.Kinds {
		sb.WriteString(":")
		sb.WriteString(kind.String())
	}

	if negated {
		return "not " + sb.String(), nil
	}

	return sb.String(), nil
}

func (s *Emitter) formatLiteralValue(value any) string {
	switch typedValue := value.(type) {
	case string:
		return fmt.Sprintf("'%s'", typedValue)

	case []string:
		quoted := make([]string, len(typedValue))

		for i, str := range typedValue {
			quoted[i] = fmt.Sprintf("'%s'", str)
		}

		return fmt.Sprintf("[%s]", strings.Join(quoted, ", "))

	default:
		return fmt.Sprintf("%v", typedValue)
	}
}

func (s *Emitter) formatSetItem(setItem *cypher.SetItem) (string, error) {
	leftStr, err := s.formatExpression(setItem.Left)

	if err != nil {
		return "", err
	}

	if setItem.Operator == cypher.OperatorLabelAssignment {
		kinds, isKinds := setItem.Right.(graph.Kinds)

		if !isKinds {
			return "", fmt.Errorf("format: kind assignment requires graph.Kinds, got %T", setItem.Right)
		}

		var sb strings.Builder
		sb.WriteString(leftStr)

		for _, kind := range kinds {
			sb.WriteString(":")
			sb.WriteString(kind.String())
		}

		return sb.String(), nil
	}

	rightStr, err := s.formatExpression(setItem.Right)

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s %s", leftStr, string(setItem.Operator), rightStr), nil
}

func (s *Emitter) formatRemoveItem(removeItem *cypher.RemoveItem) (string, error) {
	switch {
	case removeItem.KindMatcher != nil:
		return s.formatKindMatcher(removeItem.KindMatcher, false)

	case removeItem.Property != nil:
		return s.formatExpression(removeItem.Property)

	default:
		return "", fmt.Errorf("format: remove item has neither a kind matcher nor a property")
	}
}

func (s *Emitter) formatExpression(node cypher.Expression) (string, error) {
	switch typedNode := node.(type) {
	case nil:
		return "", nil

	case *cypher.Variable:
		return typedNode.Symbol, nil

	case *cypher.Parameter:
		return "$" + typedNode.Symbol, nil

	case *cypher.Literal:
		if s.StripLiterals {
			return strippedLiteral, nil
		}

		if typedNode.Null {
			return "null", nil
		}

		return s.formatLiteralValue(typedNode.Value), nil

	case *cypher.PropertyLookup:
		atomStr, err := s.formatExpression(typedNode.Atom)

		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s.%s", atomStr, typedNode.Symbol), nil

	case *cypher.KindMatcher:
		return s.formatKindMatcher(typedNode, false)

	case *cypher.Negation:
		if kindMatcher, isKindMatcher := typedNode.Expression.(*cypher.KindMatcher); isKindMatcher {
			return s.formatKindMatcher(kindMatcher, true)
		}

		innerStr, err := s.formatExpression(typedNode.Expression)

		if err != nil {
			return "", err
		}

		return "not " + innerStr, nil

	case *cypher.Parenthetical:
		innerStr, err := s.formatExpression(typedNode.Expression)

		if err != nil {
			return "", err
		}

		return fmt.Sprintf("(%s)", innerStr), nil

	case *cypher.Comparison:
		leftStr, err := s.formatExpression(typedNode.Left)

		if err != nil {
			return "", err
		}

		var sb strings.Builder
		sb.WriteString(leftStr)

		for _, partial := range typedNode.Partials {
			rightStr, err := s.formatExpression(partial.Right)

			if err != nil {
				return "", err
			}

			sb.WriteString(" ")
			sb.WriteString(string(partial.Operator))
			sb.WriteString(" ")
			sb.WriteString(rightStr)
		}

		return sb.String(), nil

	case *cypher.ArithmeticExpression:
		leftStr, err := s.formatExpression(typedNode.Left)

		if err != nil {
			return "", err
		}

		var sb strings.Builder
		sb.WriteString(leftStr)

		for _, partial := range typedNode.Partials {
			rightStr, err := s.formatExpression(partial.Right)

			if err != nil {
				return "", err
			}

			sb.WriteString(" ")
			sb.WriteString(string(partial.Operator))
			sb.WriteString(" ")
			sb.WriteString(rightStr)
		}

		return sb.String(), nil

	case *cypher.Conjunction:
		return s.joinExpressions(typedNode.Expressions, " and ")

	case *cypher.Disjunction:
		return s.joinExpressions(typedNode.Expressions, " or ")

	case *cypher.ExclusiveDisjunction:
		return s.joinExpressions(typedNode.Expressions, " xor ")

	case *cypher.FunctionInvocation:
		arguments := make([]string, len(typedNode.Arguments))

		for i, argument := range typedNode.Arguments {
			argumentStr, err := s.formatExpression(argument)

			if err != nil {
				return "", err
			}

			arguments[i] = argumentStr
		}

		name := typedNode.Name

		if len(typedNode.Namespace) > 0 {
			name = strings.Join(typedNode.Namespace, ".") + "." + name
		}

		distinct := ""

		if typedNode.Distinct {
			distinct = "distinct "
		}

		return fmt.Sprintf("%s(%s%s)", name, distinct, strings.Join(arguments, ", ")), nil

	case *cypher.IDInCollection:
		expressionStr, err := s.formatExpression(typedNode.Expression)

		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s in %s", typedNode.Variable.Symbol, expressionStr), nil

	case *cypher.FilterExpression:
		expressionStr, err := s.formatExpression(typedNode.Expression)

		if err != nil {
			return "", err
		}

		var sb strings.Builder
		sb.WriteString(string(typedNode.Specifier.Type))
		sb.WriteString("(")
		sb.WriteString(typedNode.Binding.Symbol)
		sb.WriteString(" in ")
		sb.WriteString(expressionStr)

		if typedNode.Where != nil && typedNode.Where.Expression != nil {
			whereStr, err := s.formatExpression(typedNode.Where.Expression)

			if err != nil {
				return "", err
			}

			sb.WriteString(" where ")
			sb.WriteString(whereStr)
		}

		sb.WriteString(")")
		return sb.String(), nil

	case *cypher.PatternPredicate:
		var sb strings.Builder

		for _, element := range typedNode.PatternElements {
			elementStr, err := s.formatPatternElement(element)

			if err != nil {
				return "", err
			}

			sb.WriteString(elementStr)
		}

		return sb.String(), nil

	case *cypher.NodePattern:
		return s.formatNodePattern(typedNode)

	case *cypher.RelationshipPattern:
		return s.formatRelationshipPattern(typedNode)

	case *cypher.Set:
		items := make([]string, len(typedNode.Items))

		for i, item := range typedNode.Items {
			itemStr, err := s.formatSetItem(item)

			if err != nil {
				return "", err
			}

			items[i] = itemStr
		}

		return "set " + strings.Join(items, ", "), nil

	case *cypher.SetItem:
		return s.formatSetItem(typedNode)

	case *cypher.Remove:
		items := make([]string, len(typedNode.Items))

		for i, item := range typedNode.Items {
			itemStr, err := s.formatRemoveItem(item)

			if err != nil {
				return "", err
			}

			items[i] = itemStr
		}

		return "remove " + strings.Join(items, ", "), nil

	case *cypher.Delete:
		expressions := make([]string, len(typedNode.Expressions))

		for i, expression := range typedNode.Expressions {
			expressionStr, err := s.formatExpression(expression)

			if err != nil {
				return "", err
			}

			expressions[i] = expressionStr
		}

		prefix := "delete "

		if typedNode.Detach {
			prefix = "detach delete "
		}

		return prefix + strings.Join(expressions, ", "), nil

	case *cypher.Create:
		patternStr, err := s.formatPatternParts(typedNode.Pattern)

		if err != nil {
			return "", err
		}

		return "create " + patternStr, nil

	default:
		return "", fmt.Errorf("format: unsupported expression type %T", node)
	}
}

func (s *Emitter) joinExpressions(expressions []cypher.Expression, separator string) (string, error) {
	rendered := make([]string, len(expressions))

	for i, expression := range expressions {
		expressionStr, err := s.formatExpression(expression)

		if err != nil {
			return "", err
		}

		rendered[i] = expressionStr
	}

	return strings.Join(rendered, separator), nil
}
