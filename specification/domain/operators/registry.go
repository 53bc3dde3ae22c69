package operators

import (
	"fmt"
	"reflect"
)

type BinaryOp func(left, right any) (any, error)
type UnaryOp func(operand any) (any, error)

type binaryKey struct {
	left  reflect.Type
	op    Operator
	right reflect.Type
}

type unaryKey struct {
	op      Operator
	operand reflect.Type
}

// OperatorRegistry maps (type, operator, type) tuples to implementations.
// Lookup is by exact dynamic type first, then by operand interface, then by
// numeric widening for comparison operators.
type OperatorRegistry struct {
	binary map[binaryKey]BinaryOp
	unary  map[unaryKey]UnaryOp
}

func NewOperatorRegistry() *OperatorRegistry {
	return &OperatorRegistry{
		binary: make(map[binaryKey]BinaryOp),
		unary:  make(map[unaryKey]UnaryOp),
	}
}

func RegisterBinary[L, R any](reg *OperatorRegistry, op Operator, fn func(L, R) (any, error)) {
	var zeroL L
	var zeroR R
	key := binaryKey{
		left:  reflect.TypeOf(zeroL),
		op:    op,
		right: reflect.TypeOf(zeroR),
	}
	reg.binary[key] = func(left, right any) (any, error) {
		return fn(left.(L), right.(R))
	}
}

func RegisterUnary[T any](reg *OperatorRegistry, op Operator, fn func(T) (any, error)) {
	var zero T
	key := unaryKey{
		op:      op,
		operand: reflect.TypeOf(zero),
	}
	reg.unary[key] = func(operand any) (any, error) {
		return fn(operand.(T))
	}
}

// ExecBinary executes a binary operator with SQL NULL semantics.
func (r *OperatorRegistry) ExecBinary(left any, op Operator, right any) (any, error) {
	// Three-valued logic for AND/OR
	if op == OperatorAnd {
		return execAnd(left, right)
	}
	if op == OperatorOr {
		return execOr(left, right)
	}

	// NULL propagation for all other binary operators
	if left == nil || right == nil {
		return nil, nil
	}

	fn, err := r.lookupBinary(left, op, right)
	if err != nil {
		return nil, err
	}
	return fn(left, right)
}

// ExecUnary executes a unary operator with SQL NULL semantics.
func (r *OperatorRegistry) ExecUnary(op Operator, operand any) (any, error) {
	// IS NULL / IS NOT NULL have a definite result for any value
	if op == OperatorIsNull {
		return operand == nil, nil
	}
	if op == OperatorIsNotNull {
		return operand != nil, nil
	}

	// NULL propagation
	if operand == nil {
		return nil, nil
	}

	key := unaryKey{
		op:      op,
		operand: reflect.TypeOf(operand),
	}
	fn, ok := r.unary[key]
	if !ok {
		return nil, fmt.Errorf("operator %q is not supported for %T", op, operand)
	}
	return fn(operand)
}

func (r *OperatorRegistry) lookupBinary(left any, op Operator, right any) (BinaryOp, error) {
	key := binaryKey{
		left:  reflect.TypeOf(left),
		op:    op,
		right: reflect.TypeOf(right),
	}
	fn, ok := r.binary[key]
	if ok {
		return fn, nil
	}

	if fallback := operandFallback(left, op); fallback != nil {
		return fallback, nil
	}

	if fallback := numericFallback(left, op, right); fallback != nil {
		return fallback, nil
	}

	return nil, fmt.Errorf("operator %q is not supported for %T and %T", op, left, right)
}

// operandFallback handles value-object types that implement the operand
// interfaces instead of being registered explicitly.
func operandFallback(left any, op Operator) BinaryOp {
	switch op {
	case OperatorEq:
		if _, ok := left.(EqualOperand); ok {
			return func(left, right any) (any, error) {
				l := left.(EqualOperand)
				return l.Equal(right), nil
			}
		}
	case OperatorNe:
		if _, ok := left.(EqualOperand); ok {
			return func(left, right any) (any, error) {
				l := left.(EqualOperand)
				return !l.Equal(right), nil
			}
		}
	case OperatorLt:
		if _, ok := left.(LessThanOperand); ok {
			return func(left, right any) (any, error) {
				l := left.(LessThanOperand)
				return l.LessThan(right), nil
			}
		}
	case OperatorGte:
		if _, ok := left.(LessThanOperand); ok {
			return func(left, right any) (any, error) {
				l := left.(LessThanOperand)
				return !l.LessThan(right), nil
			}
		}
	case OperatorGt:
		if _, ok := left.(LessThanOperand); ok {
			return func(left, right any) (any, error) {
				r, ok := right.(LessThanOperand)
				if !ok {
					return nil, fmt.Errorf("right operand %T does not implement LessThanOperand", right)
				}
				return r.LessThan(left), nil
			}
		}
	case OperatorLte:
		if _, ok := left.(LessThanOperand); ok {
			return func(left, right any) (any, error) {
				r, ok := right.(LessThanOperand)
				if !ok {
					return nil, fmt.Errorf("right operand %T does not implement LessThanOperand", right)
				}
				return !r.LessThan(left), nil
			}
		}
	}
	return nil
}

// numericFallback widens mixed numeric operands for comparison operators, so
// an int field compares cleanly against a float64 constant and vice versa.
func numericFallback(left any, op Operator, right any) BinaryOp {
	if !op.IsComparison() {
		return nil
	}
	if !isNumeric(left) || !isNumeric(right) {
		return nil
	}
	return func(left, right any) (any, error) {
		l := toFloat64(left)
		r := toFloat64(right)
		switch op {
		case OperatorEq:
			return l == r, nil
		case OperatorNe:
			return l != r, nil
		case OperatorGt:
			return l > r, nil
		case OperatorGte:
			return l >= r, nil
		case OperatorLt:
			return l < r, nil
		case OperatorLte:
			return l <= r, nil
		}
		return nil, fmt.Errorf("operator %q is not a comparison", op)
	}
}

func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat64(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

// Three-valued logic: NULL AND FALSE = FALSE, NULL AND TRUE = NULL
func execAnd(left, right any) (any, error) {
	if left == nil {
		if val, ok := right.(bool); ok && !val {
			return false, nil
		}
		return nil, nil
	}
	if right == nil {
		if val, ok := left.(bool); ok && !val {
			return false, nil
		}
		return nil, nil
	}
	l, ok := left.(bool)
	if !ok {
		return nil, fmt.Errorf("operator \"AND\" requires bool, got %T", left)
	}
	r, ok := right.(bool)
	if !ok {
		return nil, fmt.Errorf("operator \"AND\" requires bool, got %T", right)
	}
	return l && r, nil
}

// Three-valued logic: NULL OR TRUE = TRUE, NULL OR FALSE = NULL
func execOr(left, right any) (any, error) {
	if left == nil {
		if val, ok := right.(bool); ok && val {
			return true, nil
		}
		return nil, nil
	}
	if right == nil {
		if val, ok := left.(bool); ok && val {
			return true, nil
		}
		return nil, nil
	}
	l, ok := left.(bool)
	if !ok {
		return nil, fmt.Errorf("operator \"OR\" requires bool, got %T", left)
	}
	r, ok := right.(bool)
	if !ok {
		return nil, fmt.Errorf("operator \"OR\" requires bool, got %T", right)
	}
	return l || r, nil
}
