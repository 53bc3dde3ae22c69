package specification

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/krew-solutions/specification-go/specification/domain/operators"
)

var defaultRegistry = operators.NewDefaultRegistry()

// Specification is a named, immutable business rule over entities of type T.
// It can be checked directly against an in-memory entity or handed to a SQL
// compiler through Expression(), and both forms describe the same rule.
//
// A Specification closes over its parameters at construction time and never
// reads ambient state afterwards, so repeated evaluation of one instance is
// deterministic. Combining specifications never mutates the operands; every
// combinator returns a new value.
type Specification[T any] struct {
	name     string
	expr     Visitable
	registry *operators.OperatorRegistry
}

// New builds a specification from a name and an expression tree. Invalid
// input is rejected here, not at evaluation time.
func New[T any](name string, expr Visitable) (Specification[T], error) {
	if name == "" {
		return Specification[T]{}, errors.New("specification name must not be empty")
	}
	if expr == nil {
		return Specification[T]{}, errors.Errorf("specification %q has no expression", name)
	}
	return Specification[T]{
		name:     name,
		expr:     expr,
		registry: defaultRegistry,
	}, nil
}

// MustNew is New for static rule definitions.
func MustNew[T any](name string, expr Visitable) Specification[T] {
	s, err := New[T](name, expr)
	if err != nil {
		panic(err)
	}
	return s
}

// WithRegistry returns a copy using a custom operator registry, for rules
// over value-object field types the default registry does not know. Custom
// registries should extend NewDefaultRegistry, since combining specifications
// evaluates the whole composite with one registry: combinators keep the
// custom registry over the default one, and the left operand's when both
// sides carry a custom one.
func (s Specification[T]) WithRegistry(registry *operators.OperatorRegistry) Specification[T] {
	s.registry = registry
	return s
}

func (s Specification[T]) Name() string {
	return s.name
}

// Expression returns the translatable form of the rule. The tree is shared
// between specification values and must be treated as read-only.
func (s Specification[T]) Expression() Visitable {
	return s.expr
}

// IsSatisfiedBy evaluates the rule against an in-memory entity. A NULL
// outcome (the entity is missing data the rule depends on) fails the rule
// rather than erroring.
func (s Specification[T]) IsSatisfiedBy(entity T) (bool, error) {
	visitor := NewEvaluateVisitor(NewEntityContext(entity), s.registry)
	if err := s.expr.Accept(visitor); err != nil {
		return false, errors.Wrapf(err, "evaluate specification %q", s.name)
	}
	result, err := visitor.Result()
	if stderrors.Is(err, ErrNullResult) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "evaluate specification %q", s.name)
	}
	return result, nil
}

// And returns a specification satisfied when both operands are satisfied.
// The operand trees are joined structurally, so the composite still compiles
// into a single WHERE clause.
func (s Specification[T]) And(other Specification[T]) Specification[T] {
	return Specification[T]{
		name:     fmt.Sprintf("(%s AND %s)", s.name, other.name),
		expr:     And(s.expr, other.expr),
		registry: combinedRegistry(s.registry, other.registry),
	}
}

// Or returns a specification satisfied when either operand is satisfied.
func (s Specification[T]) Or(other Specification[T]) Specification[T] {
	return Specification[T]{
		name:     fmt.Sprintf("(%s OR %s)", s.name, other.name),
		expr:     Or(s.expr, other.expr),
		registry: combinedRegistry(s.registry, other.registry),
	}
}

// combinedRegistry picks the registry for a composite: a customized registry
// wins over the default, the left one wins when both are customized.
func combinedRegistry(left, right *operators.OperatorRegistry) *operators.OperatorRegistry {
	if left == defaultRegistry {
		return right
	}
	return left
}

// Not returns the negation. Negating a negation unwraps it instead of
// stacking NOT nodes.
func (s Specification[T]) Not() Specification[T] {
	if prefix, ok := s.expr.(PrefixNode); ok && prefix.Operator() == operators.OperatorNot {
		return Specification[T]{
			name:     negatedName(s.name),
			expr:     prefix.Operand(),
			registry: s.registry,
		}
	}
	return Specification[T]{
		name:     negatedName(s.name),
		expr:     Not(s.expr),
		registry: s.registry,
	}
}

func negatedName(name string) string {
	if rest, ok := strings.CutPrefix(name, "NOT "); ok {
		return rest
	}
	return "NOT " + name
}

// AndAll folds specifications with AND, left to right.
func AndAll[T any](first Specification[T], rest ...Specification[T]) Specification[T] {
	result := first
	for _, s := range rest {
		result = result.And(s)
	}
	return result
}

// OrAny folds specifications with OR, left to right.
func OrAny[T any](first Specification[T], rest ...Specification[T]) Specification[T] {
	result := first
	for _, s := range rest {
		result = result.Or(s)
	}
	return result
}

// Filter returns the entities satisfying the specification, preserving
// order. In-memory counterpart of repository.Find.
func Filter[T any](entities []T, spec Specification[T]) ([]T, error) {
	var matched []T
	for i := range entities {
		ok, err := spec.IsSatisfiedBy(entities[i])
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, entities[i])
		}
	}
	return matched, nil
}
