package specification

import (
	"errors"
	"fmt"

	"github.com/krew-solutions/specification-go/specification/domain/operators"
)

var ErrKeyNotFound = errors.New("key not found")

// Context resolves names to values during evaluation. Entities, nested
// objects and collections are all Contexts while a tree is being walked.
type Context interface {
	Get(string) (any, error)
}

// NewEvaluateVisitor walks an expression tree against a Context and reduces
// it to a single value. The visitor is single-use.
func NewEvaluateVisitor(context Context, registry *operators.OperatorRegistry) *EvaluateVisitor {
	return &EvaluateVisitor{
		Context:  context,
		registry: registry,
	}
}

type EvaluateVisitor struct {
	currentValue any
	currentItem  Context
	stack        []Context
	registry     *operators.OperatorRegistry
	Context
}

func (v *EvaluateVisitor) push(ctx Context) {
	v.stack = append(v.stack, v.Context)
	v.Context = ctx
}

func (v *EvaluateVisitor) pop() {
	v.Context = v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
}

func (v EvaluateVisitor) CurrentValue() any {
	return v.currentValue
}

func (v *EvaluateVisitor) SetCurrentValue(val any) {
	v.currentValue = val
}

func (v *EvaluateVisitor) VisitGlobalScope(GlobalScopeNode) error {
	v.push(v.Context)
	return nil
}

func (v *EvaluateVisitor) VisitObject(n ObjectNode) error {
	err := n.Parent().Accept(v)
	if err != nil {
		return err
	}
	obj, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	ctx, ok := obj.(Context)
	if !ok {
		return fmt.Errorf("object %q does not resolve to a context, got %T", n.Name(), obj)
	}
	v.push(ctx)
	return nil
}

func (v *EvaluateVisitor) VisitCollection(n CollectionNode) error {
	err := n.Parent().Accept(v)
	if err != nil {
		return err
	}
	items, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	itemsTyped, ok := items.([]Context)
	if !ok {
		return fmt.Errorf("wildcard over %q requires a collection of contexts, got %T", n.Name(), items)
	}
	// Wildcard semantics: true when any item satisfies the predicate. The
	// surrounding item is restored afterwards so a nested wildcard cannot
	// redirect the rest of the outer predicate.
	outerItem := v.currentItem
	result := false
	for i := range itemsTyped {
		v.currentItem = itemsTyped[i]
		err := n.Predicate().Accept(v)
		if err != nil {
			return err
		}
		if matched, ok := v.CurrentValue().(bool); ok && matched {
			result = true
		}
	}
	v.currentItem = outerItem
	v.SetCurrentValue(result)
	return nil
}

func (v *EvaluateVisitor) VisitItem(ItemNode) error {
	v.push(v.currentItem)
	return nil
}

func (v *EvaluateVisitor) VisitField(n FieldNode) error {
	err := n.Scope().Accept(v)
	if err != nil {
		return err
	}
	value, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	v.SetCurrentValue(value)
	return nil
}

func (v *EvaluateVisitor) VisitValue(n ValueNode) error {
	v.SetCurrentValue(n.Value())
	return nil
}

func (v *EvaluateVisitor) VisitPrefix(n PrefixNode) error {
	err := n.Operand().Accept(v)
	if err != nil {
		return err
	}
	result, err := v.registry.ExecUnary(n.Operator(), v.CurrentValue())
	if err != nil {
		return err
	}
	v.SetCurrentValue(result)
	return nil
}

func (v *EvaluateVisitor) VisitPostfix(n PostfixNode) error {
	err := n.Operand().Accept(v)
	if err != nil {
		return err
	}
	result, err := v.registry.ExecUnary(n.Operator(), v.CurrentValue())
	if err != nil {
		return err
	}
	v.SetCurrentValue(result)
	return nil
}

func (v *EvaluateVisitor) VisitInfix(n InfixNode) error {
	err := n.Left().Accept(v)
	if err != nil {
		return err
	}
	left := v.CurrentValue()
	err = n.Right().Accept(v)
	if err != nil {
		return err
	}
	right := v.CurrentValue()
	result, err := v.registry.ExecBinary(left, n.Operator(), right)
	if err != nil {
		return err
	}
	v.SetCurrentValue(result)
	return nil
}

// Result returns the final boolean. A NULL outcome (three-valued logic) is
// reported as ErrNullResult so callers can pick an explicit default.
func (v EvaluateVisitor) Result() (bool, error) {
	result := v.CurrentValue()
	if result == nil {
		return false, ErrNullResult
	}
	resultTyped, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression evaluated to %T, not bool", result)
	}
	return resultTyped, nil
}

var ErrNullResult = errors.New("expression evaluated to NULL")

// ExtractFieldPath returns the scope chain of a field as a name path.
func ExtractFieldPath(n FieldNode) []string {
	path := []string{n.Name()}
	var scope Scope = n.Scope()
	for !scope.IsRoot() {
		path = append([]string{scope.Name()}, path...)
		scope = scope.Parent()
	}
	return path
}

// CollectionContext holds the items a wildcard iterates.
type CollectionContext struct {
	items []Context
}

func NewCollectionContext(items []Context) CollectionContext {
	return CollectionContext{items: items}
}

func (c CollectionContext) Get(slice string) (any, error) {
	if slice == "*" {
		return c.items, nil
	}
	return nil, fmt.Errorf("unsupported slice type %q", slice)
}
