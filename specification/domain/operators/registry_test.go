package operators

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExecBinaryExactTypes(t *testing.T) {
	reg := NewDefaultRegistry()
	cases := []struct {
		left  any
		op    Operator
		right any
		want  any
	}{
		{5, OperatorEq, 5, true},
		{5, OperatorNe, 5, false},
		{"abc", OperatorLt, "abd", true},
		{4.5, OperatorGt, 4.0, true},
		{int64(10), OperatorAdd, int64(3), int64(13)},
		{int64(10), OperatorSub, int64(3), int64(7)},
	}
	for i, c := range cases {
		got, err := reg.ExecBinary(c.left, c.op, c.right)
		if err != nil {
			t.Fatalf("case %d: ExecBinary failed: %v", i, err)
		}
		if got != c.want {
			t.Errorf("case %d: %v %s %v: expected %v, got %v", i, c.left, c.op, c.right, c.want, got)
		}
	}
}

func TestExecBinaryNumericWidening(t *testing.T) {
	reg := NewDefaultRegistry()

	// int field against float64 constant and the reverse
	got, err := reg.ExecBinary(150, OperatorGt, 100.5)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected 150 > 100.5, got %v", got)
	}

	got, err = reg.ExecBinary(4.0, OperatorLte, 4)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected 4.0 <= 4, got %v", got)
	}
}

func TestExecBinaryUnsupported(t *testing.T) {
	reg := NewDefaultRegistry()

	if _, err := reg.ExecBinary("abc", OperatorAdd, "def"); err == nil {
		t.Error("Expected error for string +, got nil")
	}
	if _, err := reg.ExecBinary(struct{}{}, OperatorEq, struct{}{}); err == nil {
		t.Error("Expected error for unregistered type, got nil")
	}
}

func TestExecBinaryNullPropagation(t *testing.T) {
	reg := NewDefaultRegistry()

	got, err := reg.ExecBinary(nil, OperatorGt, 5)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected NULL, got %v", got)
	}

	got, err = reg.ExecBinary(5, OperatorEq, nil)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected NULL, got %v", got)
	}
}

func TestThreeValuedAnd(t *testing.T) {
	reg := NewDefaultRegistry()
	cases := []struct {
		left, right any
		want        any
	}{
		{true, true, true},
		{true, false, false},
		{nil, false, false},
		{false, nil, false},
		{nil, true, nil},
		{true, nil, nil},
		{nil, nil, nil},
	}
	for i, c := range cases {
		got, err := reg.ExecBinary(c.left, OperatorAnd, c.right)
		if err != nil {
			t.Fatalf("case %d: ExecBinary failed: %v", i, err)
		}
		if got != c.want {
			t.Errorf("case %d: %v AND %v: expected %v, got %v", i, c.left, c.right, c.want, got)
		}
	}
}

func TestThreeValuedOr(t *testing.T) {
	reg := NewDefaultRegistry()
	cases := []struct {
		left, right any
		want        any
	}{
		{false, false, false},
		{true, false, true},
		{nil, true, true},
		{true, nil, true},
		{nil, false, nil},
		{false, nil, nil},
		{nil, nil, nil},
	}
	for i, c := range cases {
		got, err := reg.ExecBinary(c.left, OperatorOr, c.right)
		if err != nil {
			t.Fatalf("case %d: ExecBinary failed: %v", i, err)
		}
		if got != c.want {
			t.Errorf("case %d: %v OR %v: expected %v, got %v", i, c.left, c.right, c.want, got)
		}
	}
}

func TestExecUnary(t *testing.T) {
	reg := NewDefaultRegistry()

	got, err := reg.ExecUnary(OperatorNot, true)
	if err != nil {
		t.Fatalf("ExecUnary failed: %v", err)
	}
	if got != false {
		t.Errorf("Expected NOT true = false, got %v", got)
	}

	// NOT NULL = NULL
	got, err = reg.ExecUnary(OperatorNot, nil)
	if err != nil {
		t.Fatalf("ExecUnary failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected NULL, got %v", got)
	}

	if _, err := reg.ExecUnary(OperatorNot, 42); err == nil {
		t.Error("Expected error for NOT over int, got nil")
	}
}

func TestIsNullOperators(t *testing.T) {
	reg := NewDefaultRegistry()

	got, err := reg.ExecUnary(OperatorIsNull, nil)
	if err != nil {
		t.Fatalf("ExecUnary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected NULL IS NULL = true, got %v", got)
	}

	got, err = reg.ExecUnary(OperatorIsNotNull, 5)
	if err != nil {
		t.Fatalf("ExecUnary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected 5 IS NOT NULL = true, got %v", got)
	}
}

func TestTimeOperators(t *testing.T) {
	reg := NewDefaultRegistry()
	earlier := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(48 * time.Hour)

	got, err := reg.ExecBinary(later, OperatorGt, earlier)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected later > earlier, got %v", got)
	}

	// timestamp - timestamp yields an interval
	got, err = reg.ExecBinary(later, OperatorSub, earlier)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != 48*time.Hour {
		t.Errorf("Expected 48h interval, got %v", got)
	}

	// timestamp - interval yields a timestamp
	got, err = reg.ExecBinary(later, OperatorSub, 48*time.Hour)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if shifted, ok := got.(time.Time); !ok || !shifted.Equal(earlier) {
		t.Errorf("Expected %v, got %v", earlier, got)
	}
}

func TestUUIDOperators(t *testing.T) {
	reg := NewDefaultRegistry()
	a := uuid.New()
	b := uuid.New()

	got, err := reg.ExecBinary(a, OperatorEq, a)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected a == a, got %v", got)
	}

	got, err = reg.ExecBinary(a, OperatorNe, b)
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected a != b, got %v", got)
	}
}

// money implements the operand interfaces instead of registering per-operator
// implementations.
type money struct {
	cents int64
}

func (m money) Equal(other any) bool {
	o, ok := other.(money)
	return ok && m.cents == o.cents
}

func (m money) LessThan(other any) bool {
	o, ok := other.(money)
	return ok && m.cents < o.cents
}

func TestOperandFallback(t *testing.T) {
	reg := NewDefaultRegistry()
	cheap := money{cents: 100}
	pricey := money{cents: 900}

	cases := []struct {
		left  money
		op    Operator
		right money
		want  bool
	}{
		{cheap, OperatorEq, cheap, true},
		{cheap, OperatorNe, pricey, true},
		{cheap, OperatorLt, pricey, true},
		{pricey, OperatorGt, cheap, true},
		{cheap, OperatorGte, pricey, false},
		{cheap, OperatorLte, cheap, true},
	}
	for i, c := range cases {
		got, err := reg.ExecBinary(c.left, c.op, c.right)
		if err != nil {
			t.Fatalf("case %d: ExecBinary failed: %v", i, err)
		}
		if got != c.want {
			t.Errorf("case %d: %v %s %v: expected %v, got %v", i, c.left, c.op, c.right, c.want, got)
		}
	}
}

func TestRegisterBinaryOverride(t *testing.T) {
	reg := NewOperatorRegistry()
	RegisterBinary[string, string](reg, OperatorEq, func(a, b string) (any, error) {
		return len(a) == len(b), nil
	})

	got, err := reg.ExecBinary("ab", OperatorEq, "cd")
	if err != nil {
		t.Fatalf("ExecBinary failed: %v", err)
	}
	if got != true {
		t.Errorf("Expected custom equality by length, got %v", got)
	}
}

func TestIsComparison(t *testing.T) {
	for _, op := range []Operator{OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte} {
		if !op.IsComparison() {
			t.Errorf("%s should be a comparison", op)
		}
	}
	for _, op := range []Operator{OperatorAnd, OperatorOr, OperatorNot, OperatorAdd, OperatorSub} {
		if op.IsComparison() {
			t.Errorf("%s should not be a comparison", op)
		}
	}
}
