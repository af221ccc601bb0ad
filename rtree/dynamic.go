package rtree

import (
	"context"
	"fmt"

	"github.com/specterops/geoidx/graph"
)

// Predicate decides whether a geometry vertex belongs in a dynamic sub-layer. Two concrete dialects are provided
// below (StructuralPredicate and ExpressionPredicate); callers may also supply any other implementation.
type Predicate interface {
	Matches(ctx context.Context, txn Adapter, geom graph.ID) (bool, error)
}

// DynamicLayer is a filtered, read-only view over a base Index: it shares the base's physical root and never
// mutates it, pruning traversal with an optional structural pre-filter and a required per-reference predicate.
type DynamicLayer struct {
	base      *Index
	name      string
	predicate Predicate

	// preFilter optionally prunes whole subtrees before the predicate ever sees a leaf reference, pushing cheap
	// structural tests (e.g. "this subtree's bbox cannot possibly contain a match") down past needsToVisit.
	preFilter func(bbox Envelope) bool
}

// NewDynamicLayer wraps base in a filtered view named name, evaluating predicate against every candidate geometry.
func NewDynamicLayer(base *Index, name string, predicate Predicate) *DynamicLayer {
	return &DynamicLayer{base: base, name: name, predicate: predicate}
}

// WithPreFilter attaches an optional internal-vertex pre-filter, letting richer predicates push structural tests
// down to needsToVisit instead of only filtering at the leaf.
func (d *DynamicLayer) WithPreFilter(preFilter func(bbox Envelope) bool) *DynamicLayer {
	d.preFilter = preFilter
	return d
}

// Name returns the sub-layer's configured name.
func (d *DynamicLayer) Name() string {
	return d.name
}

type dynamicVisitor struct {
	layer   *DynamicLayer
	inner   Visitor
	results []Record
}

func (v *dynamicVisitor) NeedsToVisit(bbox Envelope) bool {
	if v.layer.preFilter != nil && !v.layer.preFilter(bbox) {
		return false
	}

	return v.inner.NeedsToVisit(bbox)
}

func (v *dynamicVisitor) OnIndexReference(ctx context.Context, txn Adapter, geom graph.ID) error {
	matched, err := v.layer.predicate.Matches(ctx, txn, geom)
	if err != nil {
		return err
	}

	if !matched {
		return nil
	}

	return v.inner.OnIndexReference(ctx, txn, geom)
}

// Visit runs inner over the base index, filtered through this layer's predicate and optional pre-filter.
func (d *DynamicLayer) Visit(ctx context.Context, inner Visitor) error {
	return d.base.Visit(ctx, &dynamicVisitor{layer: d, inner: inner})
}

// SearchAll returns every geometry in the base index that satisfies this layer's predicate.
func (d *DynamicLayer) SearchAll(ctx context.Context) ([]Record, error) {
	collector := &allVisitor{}

	if err := d.Visit(ctx, collector); err != nil {
		return nil, err
	}

	return collector.results, nil
}

// Add always fails: dynamic layers are read-only views over a shared base index.
func (d *DynamicLayer) Add(context.Context, graph.ID) error {
	return ErrReadOnlyView
}

// Remove always fails: dynamic layers are read-only views over a shared base index.
func (d *DynamicLayer) Remove(context.Context, graph.ID, bool) error {
	return ErrReadOnlyView
}

// StructuralPredicate matches the JSON-tree dialect of §4.7: a chain of property equality tests, each optionally
// followed by a single typed-edge step (direction IN or OUT) to a neighbouring vertex where the next link in the
// chain is evaluated. A missing edge at any step makes the whole predicate false.
type StructuralPredicate struct {
	// Properties lists key/required-value pairs that must all hold on the current vertex. Comparison falls back to
	// string-form equality so integer-vs-int64 property width mismatches don't spuriously fail a match.
	Properties map[string]any

	// Step optionally continues the match across one edge.
	Step *StructuralStep
}

// StructuralStep names one edge hop in a StructuralPredicate chain.
type StructuralStep struct {
	Kind      graph.Kind
	Direction graph.Direction
	Next      StructuralPredicate
}

// Matches implements Predicate for StructuralPredicate.
func (p StructuralPredicate) Matches(ctx context.Context, txn Adapter, vertex graph.ID) (bool, error) {
	for key, want := range p.Properties {
		has, err := txn.HasProperty(ctx, vertex, key)
		if err != nil {
			return false, wrapHostError("structural predicate property check", err)
		}

		if !has {
			return false, nil
		}

		got, err := txn.GetProperty(ctx, vertex, key)
		if err != nil {
			return false, wrapHostError("structural predicate property read", err)
		}

		if !propertyEquals(got, want) {
			return false, nil
		}
	}

	if p.Step == nil {
		return true, nil
	}

	var (
		next  graph.ID
		found bool
		err   error
	)

	switch p.Step.Direction {
	case graph.DirectionOutbound:
		_, next, found, err = txn.SingleOut(ctx, vertex, p.Step.Kind)
	default:
		_, next, found, err = txn.SingleIn(ctx, vertex, p.Step.Kind)
	}

	if err != nil {
		return false, wrapHostError("structural predicate step", err)
	}

	if !found {
		return false, nil
	}

	return p.Step.Next.Matches(ctx, txn, next)
}

// propertyEquals compares a stored property value against an expected literal, falling back to string-form
// equality so an int32 required value still matches an int64 (or vice versa) property read off the wire.
func propertyEquals(got graph.PropertyValue, want any) bool {
	if got.IsNil() {
		return want == nil
	}

	gotAny := got.Any()

	if gotAny == want {
		return true
	}

	return fmt.Sprintf("%v", gotAny) == fmt.Sprintf("%v", want)
}

// ExpressionPredicate evaluates a small CQL-inspired boolean expression over the geometry vertex's stored properties,
// read through the Adapter (the geometry is not decoded). It is composed the way the query builder composes Cypher criteria (And/Or/Not over leaf comparisons) rather than by
// parsing CQL text — CQL parsing itself is out of scope; this gives dynamic layers a predicate dialect with the
// same composition shape without requiring a grammar.
type ExpressionPredicate struct {
	Expr Expression
}

// Matches implements Predicate for ExpressionPredicate.
func (p ExpressionPredicate) Matches(ctx context.Context, txn Adapter, geom graph.ID) (bool, error) {
	return p.Expr.Evaluate(ctx, txn, geom)
}

// Expression is one node of an ExpressionPredicate's boolean tree.
type Expression interface {
	Evaluate(ctx context.Context, txn Adapter, geom graph.ID) (bool, error)
}

// PropertyEquals is a leaf Expression testing a single property for equality.
type PropertyEquals struct {
	Key   string
	Value any
}

func (e PropertyEquals) Evaluate(ctx context.Context, txn Adapter, geom graph.ID) (bool, error) {
	has, err := txn.HasProperty(ctx, geom, e.Key)
	if err != nil {
		return false, wrapHostError("expression property check", err)
	}

	if !has {
		return false, nil
	}

	got, err := txn.GetProperty(ctx, geom, e.Key)
	if err != nil {
		return false, wrapHostError("expression property read", err)
	}

	return propertyEquals(got, e.Value), nil
}

// And is an Expression requiring all of its operands to hold.
type And []Expression

func (e And) Evaluate(ctx context.Context, txn Adapter, geom graph.ID) (bool, error) {
	for _, operand := range e {
		matched, err := operand.Evaluate(ctx, txn, geom)
		if err != nil {
			return false, err
		}

		if !matched {
			return false, nil
		}
	}

	return true, nil
}

// Or is an Expression requiring at least one of its operands to hold.
type Or []Expression

func (e Or) Evaluate(ctx context.Context, txn Adapter, geom graph.ID) (bool, error) {
	for _, operand := range e {
		matched, err := operand.Evaluate(ctx, txn, geom)
		if err != nil {
			return false, err
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}

// Not is an Expression negating its single operand.
type Not struct {
	Operand Expression
}

func (e Not) Evaluate(ctx context.Context, txn Adapter, geom graph.ID) (bool, error) {
	matched, err := e.Operand.Evaluate(ctx, txn, geom)
	if err != nil {
		return false, err
	}

	return !matched, nil
}
