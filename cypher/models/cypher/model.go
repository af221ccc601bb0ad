package cypher

import "github.com/specterops/geoidx/graph"

// SyntaxNode is the marker type for every node in a parsed or constructed Cypher query. Navigation is done through
// type switches (see cypher/models/walk) rather than a method set, matching the rest of this codebase's preference
// for switch-driven dispatch over interface hierarchies.
type SyntaxNode any

// Expression is a SyntaxNode that produces a value when evaluated: a literal, a comparison, a function call, a
// variable reference, and so on. It is an alias, not a distinct type, since the grammar does not distinguish them at
// the type level either.
type Expression = SyntaxNode

// Operator is a comparison, arithmetic, or boolean infix operator token.
type Operator string

// AssignmentOperator is the operator of a SET clause's SetItem (`=` or `+=`, plus the empty sentinel used for kind
// assignment/removal, which has no textual operator of its own).
type AssignmentOperator string

// SortOrder names the direction of a SortItem (ascending or descending).
type SortOrder string

const (
	AvgFunction                = "avg"
	CoalesceFunction            = "coalesce"
	CollectFunction             = "collect"
	CountFunction               = "count"
	DateFunction                = "date"
	DateTimeFunction            = "datetime"
	DurationFunction            = "duration"
	EdgeTypeFunction            = "type"
	IdentityFunction            = "id"
	ListSizeFunction            = "size"
	LocalDateTimeFunction       = "localdatetime"
	LocalTimeFunction           = "localtime"
	MaxFunction                 = "max"
	MinFunction                 = "min"
	NodeLabelsFunction          = "labels"
	StringSplitToArrayFunction  = "split"
	SumFunction                 = "sum"
	ToIntegerFunction           = "toInteger"
	ToLowerFunction             = "toLower"
	ToStringFunction            = "toString"
	ToUpperFunction             = "toUpper"
)

// QuantifierType names a Cypher list quantifier (all/any/none/single).
type QuantifierType string

// Quantifier is the `all`/`any`/`none`/`single` prefix of a FilterExpression.
type Quantifier struct {
	Type QuantifierType
}

func NewRangeQuantifier(literal string) Quantifier {
	return Quantifier{Type: QuantifierType(literal)}
}

// RegularQuery is the root of a parsed or constructed Cypher statement.
type RegularQuery struct {
	SingleQuery *SingleQuery
}

// NewRegularQueryWithSingleQuery builds an empty RegularQuery wrapping a single, non-multipart query, returning both
// so callers can populate the SinglePartQuery directly without re-navigating the tree.
func NewRegularQueryWithSingleQuery() (*RegularQuery, *SinglePartQuery) {
	singlePartQuery := &SinglePartQuery{}

	return &RegularQuery{
		SingleQuery: &SingleQuery{
			SinglePartQuery: singlePartQuery,
		},
	}, singlePartQuery
}

// SingleQuery is either a SinglePartQuery or a MultiPartQuery (a chain of WITH-separated parts); exactly one of the
// two fields is populated.
type SingleQuery struct {
	SinglePartQuery *SinglePartQuery
	MultiPartQuery  *MultiPartQuery
}

// MultiPartQueryPart is one WITH-delimited segment of a MultiPartQuery.
type MultiPartQueryPart struct {
	ReadingClauses  []*ReadingClause
	UpdatingClauses []*UpdatingClause
	With            *Return
}

// MultiPartQuery chains zero or more MultiPartQueryParts ahead of a final SinglePartQuery.
type MultiPartQuery struct {
	Parts           []*MultiPartQueryPart
	SinglePartQuery *SinglePartQuery
}

// SinglePartQuery is a single (non-WITH-chained) query body: some reading clauses, some updating clauses, and an
// optional terminal RETURN.
type SinglePartQuery struct {
	ReadingClauses  []*ReadingClause
	UpdatingClauses []*UpdatingClause
	Return          *Return
}

func (s *SinglePartQuery) AddReadingClause(readingClause *ReadingClause) {
	s.ReadingClauses = append(s.ReadingClauses, readingClause)
}

func (s *SinglePartQuery) AddUpdatingClause(updatingClause *UpdatingClause) {
	s.UpdatingClauses = append(s.UpdatingClauses, updatingClause)
}

// NewProjection attaches a fresh Return/Projection to the query and returns the Projection for the caller to
// populate.
func (s *SinglePartQuery) NewProjection(distinct bool) *Projection {
	projection := &Projection{Distinct: distinct}
	s.Return = &Return{Projection: projection}

	return projection
}

// Unwind represents an UNWIND clause, expanding a list expression into a bound variable per element.
type Unwind struct {
	Expression Expression
	Binding    *Variable
}

// ReadingClause is a MATCH, OPTIONAL MATCH, or UNWIND that reads graph data into scope.
type ReadingClause struct {
	Match  *Match
	Unwind *Unwind
}

func NewReadingClause() *ReadingClause {
	return &ReadingClause{Match: &Match{}}
}

// Match is a MATCH clause: a set of pattern parts and an optional WHERE filter.
type Match struct {
	Optional bool
	Pattern  []*PatternPart
	Where    *Where
}

func NewMatch(optional bool) *Match {
	return &Match{Optional: optional}
}

func (s *Match) NewPatternPart() *PatternPart {
	patternPart := &PatternPart{}
	s.Pattern = append(s.Pattern, patternPart)

	return patternPart
}

func (s *Match) NewWhere() *Where {
	where := NewWhere()
	s.Where = where

	return where
}

// Where holds the filter expression of a MATCH clause.
type Where struct {
	Expression Expression
}

func NewWhere() *Where {
	return &Where{}
}

// Add folds expression into the Where, conjoining it with whatever is already present.
func (s *Where) Add(expression Expression) {
	if s.Expression == nil {
		s.Expression = expression
		return
	}

	if conjunction, isConjunction := s.Expression.(*Conjunction); isConjunction {
		conjunction.Expressions = append(conjunction.Expressions, expression)
		return
	}

	s.Expression = NewConjunction(s.Expression, expression)
}

func (s *Where) AddSlice(expressions []Expression) {
	for _, expression := range expressions {
		s.Add(expression)
	}
}

// PatternPart is one comma-separated element of a pattern: an optional variable binding, shortest-path markers, and
// the alternating node/relationship elements that make up the path.
type PatternPart struct {
	Variable                *Variable
	ShortestPathPattern     bool
	AllShortestPathsPattern bool
	PatternElements         []*PatternElement
}

func (s *PatternPart) AddPatternElements(elements ...any) {
	for _, element := range elements {
		s.PatternElements = append(s.PatternElements, newPatternElement(element))
	}
}

func newPatternElement(element any) *PatternElement {
	switch typedElement := element.(type) {
	case *NodePattern:
		return &PatternElement{NodePattern: typedElement}

	case *RelationshipPattern:
		return &PatternElement{RelationshipPattern: typedElement}

	default:
		return &PatternElement{}
	}
}

// PatternElement is a tagged union over the two kinds of pattern element: exactly one of NodePattern and
// RelationshipPattern is set.
type PatternElement struct {
	NodePattern         *NodePattern
	RelationshipPattern *RelationshipPattern
}

func (s *PatternElement) AsNodePattern() (*NodePattern, bool) {
	return s.NodePattern, s.NodePattern != nil
}

func (s *PatternElement) AsRelationshipPattern() (*RelationshipPattern, bool) {
	return s.RelationshipPattern, s.RelationshipPattern != nil
}

// NodePattern is a `(variable:Kind {props})` pattern element.
type NodePattern struct {
	Variable   *Variable
	Kinds      graph.Kinds
	Properties Expression
}

// PatternRange is the `*min..max` variable-length expansion range of a RelationshipPattern.
type PatternRange struct {
	StartIndex *int64
	EndIndex   *int64
}

// RelationshipPattern is a `-[variable:Kind {props}]->` pattern element.
type RelationshipPattern struct {
	Variable   *Variable
	Kinds      graph.Kinds
	Direction  graph.Direction
	Properties Expression
	Range      *PatternRange
}

// PatternPredicate is an inline existence pattern used as a boolean expression, e.g. `(n)-->()`  in a WHERE clause.
type PatternPredicate struct {
	PatternElements []*PatternElement
}

func NewPatternPredicate() *PatternPredicate {
	return &PatternPredicate{}
}

func (s *PatternPredicate) AddElement(element any) {
	s.PatternElements = append(s.PatternElements, newPatternElement(element))
}

// Variable is a bound identifier, e.g. the `n` in `(n:Kind)`.
type Variable struct {
	Symbol string
}

func NewVariableWithSymbol(symbol string) *Variable {
	return &Variable{Symbol: symbol}
}

// Parameter is a bound query parameter reference, `$symbol`.
type Parameter struct {
	Symbol string
	Value  any
}

func NewParameter(symbol string, value any) *Parameter {
	return &Parameter{Symbol: symbol, Value: value}
}

// Literal is an inline constant value.
type Literal struct {
	Value any
	Null  bool
}

func NewLiteral(value any, null bool) *Literal {
	return &Literal{Value: value, Null: null}
}

func NewStringLiteral(value string) *Literal {
	return NewLiteral(value, false)
}

func NewStringListLiteral(values []string) *Literal {
	return NewLiteral(values, false)
}

// PropertyLookup is a `variable.property` property access.
type PropertyLookup struct {
	Atom   Expression
	Symbol string
}

func NewPropertyLookup(atomSymbol, propertyName string) *PropertyLookup {
	return &PropertyLookup{Atom: NewVariableWithSymbol(atomSymbol), Symbol: propertyName}
}

// KindMatcher tests a node or relationship reference against a set of kinds, e.g. `n:Kind1:Kind2`.
type KindMatcher struct {
	Reference Expression
	Kinds     graph.Kinds
}

func NewKindMatcher(reference Expression, kinds graph.Kinds) *KindMatcher {
	return &KindMatcher{Reference: reference, Kinds: kinds}
}

// FunctionInvocation is a call to a Cypher built-in or user-defined function.
type FunctionInvocation struct {
	Distinct  bool
	Namespace []string
	Name      string
	Arguments []Expression
}

func NewSimpleFunctionInvocation(name string, arguments ...Expression) *FunctionInvocation {
	return &FunctionInvocation{Name: name, Arguments: arguments}
}

// IDInCollection is the `variable IN collectionExpression` membership test used by UNWIND-style comprehensions.
type IDInCollection struct {
	Variable   *Variable
	Expression Expression
}

// FilterExpression is a quantified list predicate, e.g. `all(x IN list WHERE ...)`.
type FilterExpression struct {
	Specifier  Quantifier
	Binding    *Variable
	Expression Expression
	Where      *Where
}

// Negation is a `NOT expression`.
type Negation struct {
	Expression Expression
}

func NewNegation(expression Expression) *Negation {
	return &Negation{Expression: expression}
}

// Conjunction is an `AND`-joined list of expressions.
type Conjunction struct {
	Expressions []Expression
}

func NewConjunction(expressions ...Expression) *Conjunction {
	return &Conjunction{Expressions: expressions}
}

// Disjunction is an `OR`-joined list of expressions.
type Disjunction struct {
	Expressions []Expression
}

func NewDisjunction(expressions ...Expression) *Disjunction {
	return &Disjunction{Expressions: expressions}
}

// ExclusiveDisjunction is an `XOR`-joined list of expressions.
type ExclusiveDisjunction struct {
	Expressions []Expression
}

func NewExclusiveDisjunction(expressions ...Expression) *ExclusiveDisjunction {
	return &ExclusiveDisjunction{Expressions: expressions}
}

// Parenthetical wraps an expression in explicit parentheses, preserving grouping through formatting.
type Parenthetical struct {
	Expression Expression
}

// PartialComparison is one `operator rightOperand` step chained onto a Comparison's left operand.
type PartialComparison struct {
	Operator Operator
	Right    Expression
}

// Comparison is a left operand followed by zero or more chained comparison/boolean operators, e.g.
// `a = b AND b < c`.
type Comparison struct {
	Left     Expression
	Partials []*PartialComparison
}

func NewComparison(left Expression, operator Operator, right Expression) *Comparison {
	return &Comparison{
		Left:     left,
		Partials: []*PartialComparison{{Operator: operator, Right: right}},
	}
}

func (s *Comparison) NewPartialComparison(operator Operator, right Expression) *PartialComparison {
	partial := &PartialComparison{Operator: operator, Right: right}
	s.Partials = append(s.Partials, partial)

	return partial
}

// PartialArithmeticExpression is one `operator rightOperand` step chained onto an ArithmeticExpression.
type PartialArithmeticExpression struct {
	Operator Operator
	Right    Expression
}

// ArithmeticExpression is a left operand followed by zero or more chained arithmetic operators.
type ArithmeticExpression struct {
	Left     Expression
	Partials []*PartialArithmeticExpression
}

// SortItem is one `expression [ASC|DESC]` entry of an ORDER BY clause.
type SortItem struct {
	Expression Expression
	Ascending  bool
}

// Order is the ORDER BY clause of a projection.
type Order struct {
	Items []*SortItem
}

// Skip is the SKIP clause of a projection.
type Skip struct {
	Value Expression
}

func NewSkip(value int) *Skip {
	return &Skip{Value: NewLiteral(value, false)}
}

// Limit is the LIMIT clause of a projection.
type Limit struct {
	Value Expression
}

func NewLimit(value int) *Limit {
	return &Limit{Value: NewLiteral(value, false)}
}

// ProjectionItem is one projected expression, optionally aliased.
type ProjectionItem struct {
	Expression Expression
	Alias      *Variable
}

func NewProjectionItemWithExpr(expression Expression) *ProjectionItem {
	return &ProjectionItem{Expression: expression}
}

// Projection is the item list, DISTINCT flag, and ORDER BY/SKIP/LIMIT of a RETURN clause.
type Projection struct {
	Distinct bool
	All      bool
	Items    []*ProjectionItem
	Order    *Order
	Skip     *Skip
	Limit    *Limit
}

func (s *Projection) AddItem(item *ProjectionItem) {
	s.Items = append(s.Items, item)
}

// Return is a RETURN clause.
type Return struct {
	Projection *Projection
}

// UpdatingClause wraps one of Create/Delete/Set/Remove as a single updating step.
type UpdatingClause struct {
	Clause Expression
}

func NewUpdatingClause(clause Expression) *UpdatingClause {
	return &UpdatingClause{Clause: clause}
}

// Create is a CREATE clause.
type Create struct {
	// Unique is Neo4j-specific (CREATE UNIQUE) and is never emitted by this package's query builder; uniqueness is
	// expected to be enforced by constraints instead.
	Unique  bool
	Pattern []*PatternPart
}

// Delete is a DELETE (or DETACH DELETE) clause.
type Delete struct {
	Detach      bool
	Expressions []Expression
}

func NewDelete(detach bool, expressions []Expression) *Delete {
	return &Delete{Detach: detach, Expressions: expressions}
}

// SetItem is one `target = value` or `target += value` assignment of a SET clause.
type SetItem struct {
	Left     Expression
	Operator AssignmentOperator
	Right    Expression
}

func NewSetItem(left Expression, operator AssignmentOperator, right Expression) *SetItem {
	return &SetItem{Left: left, Operator: operator, Right: right}
}

// Set is a SET clause.
type Set struct {
	Items []*SetItem
}

func NewSet(items []*SetItem) *Set {
	return &Set{Items: items}
}

// RemoveItem is one target of a REMOVE clause: either a kind matcher or a property lookup.
type RemoveItem struct {
	KindMatcher *KindMatcher
	Property    *PropertyLookup
}

func RemoveKindsByMatcher(matcher *KindMatcher) *RemoveItem {
	return &RemoveItem{KindMatcher: matcher}
}

func RemoveProperty(qualifier Expression) *RemoveItem {
	property, _ := qualifier.(*PropertyLookup)
	return &RemoveItem{Property: property}
}

// Remove is a REMOVE clause.
type Remove struct {
	Items []*RemoveItem
}

func NewRemove(items []*RemoveItem) *Remove {
	return &Remove{Items: items}
}
