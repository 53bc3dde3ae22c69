package operators

import (
	"cmp"
	"time"

	"github.com/google/uuid"
)

func registerComparison[T cmp.Ordered](reg *OperatorRegistry) {
	RegisterBinary[T, T](reg, OperatorEq, func(a, b T) (any, error) { return a == b, nil })
	RegisterBinary[T, T](reg, OperatorNe, func(a, b T) (any, error) { return a != b, nil })
	RegisterBinary[T, T](reg, OperatorGt, func(a, b T) (any, error) { return a > b, nil })
	RegisterBinary[T, T](reg, OperatorGte, func(a, b T) (any, error) { return a >= b, nil })
	RegisterBinary[T, T](reg, OperatorLt, func(a, b T) (any, error) { return a < b, nil })
	RegisterBinary[T, T](reg, OperatorLte, func(a, b T) (any, error) { return a <= b, nil })
}

func registerArithmetic[T interface {
	~int | ~int64 | ~float64
}](reg *OperatorRegistry) {
	RegisterBinary[T, T](reg, OperatorAdd, func(a, b T) (any, error) { return a + b, nil })
	RegisterBinary[T, T](reg, OperatorSub, func(a, b T) (any, error) { return a - b, nil })
}

// NewDefaultRegistry creates a registry covering the Go types rules are
// normally written against, with SQL-compatible semantics.
func NewDefaultRegistry() *OperatorRegistry {
	reg := NewOperatorRegistry()

	// bool
	RegisterBinary[bool, bool](reg, OperatorEq, func(a, b bool) (any, error) { return a == b, nil })
	RegisterBinary[bool, bool](reg, OperatorNe, func(a, b bool) (any, error) { return a != b, nil })
	RegisterUnary[bool](reg, OperatorNot, func(a bool) (any, error) { return !a, nil })

	// numbers
	registerComparison[int](reg)
	registerArithmetic[int](reg)
	registerComparison[int64](reg)
	registerArithmetic[int64](reg)
	registerComparison[float64](reg)
	registerArithmetic[float64](reg)

	// string
	registerComparison[string](reg)

	// uuid identifiers
	RegisterBinary[uuid.UUID, uuid.UUID](reg, OperatorEq, func(a, b uuid.UUID) (any, error) { return a == b, nil })
	RegisterBinary[uuid.UUID, uuid.UUID](reg, OperatorNe, func(a, b uuid.UUID) (any, error) { return a != b, nil })

	// time.Duration (interval)
	registerComparison[time.Duration](reg)
	RegisterBinary[time.Duration, time.Duration](reg, OperatorAdd, func(a, b time.Duration) (any, error) { return a + b, nil })
	RegisterBinary[time.Duration, time.Duration](reg, OperatorSub, func(a, b time.Duration) (any, error) { return a - b, nil })

	// time.Time (timestamp)
	RegisterBinary[time.Time, time.Time](reg, OperatorEq, func(a, b time.Time) (any, error) { return a.Equal(b), nil })
	RegisterBinary[time.Time, time.Time](reg, OperatorNe, func(a, b time.Time) (any, error) { return !a.Equal(b), nil })
	RegisterBinary[time.Time, time.Time](reg, OperatorGt, func(a, b time.Time) (any, error) { return a.After(b), nil })
	RegisterBinary[time.Time, time.Time](reg, OperatorGte, func(a, b time.Time) (any, error) { return !a.Before(b), nil })
	RegisterBinary[time.Time, time.Time](reg, OperatorLt, func(a, b time.Time) (any, error) { return a.Before(b), nil })
	RegisterBinary[time.Time, time.Time](reg, OperatorLte, func(a, b time.Time) (any, error) { return !a.After(b), nil })

	// timestamp - timestamp = interval
	RegisterBinary[time.Time, time.Time](reg, OperatorSub, func(a, b time.Time) (any, error) { return a.Sub(b), nil })

	// timestamp +/- interval = timestamp
	RegisterBinary[time.Time, time.Duration](reg, OperatorAdd, func(a time.Time, b time.Duration) (any, error) { return a.Add(b), nil })
	RegisterBinary[time.Time, time.Duration](reg, OperatorSub, func(a time.Time, b time.Duration) (any, error) { return a.Add(-b), nil })

	return reg
}
