package specification

import (
	"testing"

	"github.com/krew-solutions/specification-go/specification/domain/operators"
)

func TestValueNode(t *testing.T) {
	valNode := Value(42)
	if valNode.Value() != 42 {
		t.Errorf("Expected value 42, got %v", valNode.Value())
	}
}

func TestNotNode(t *testing.T) {
	valNode := Value(true)
	notNode := Not(valNode)
	if notNode.Operand() != valNode {
		t.Error("NOT node operand mismatch")
	}
	if notNode.Operator() != operators.OperatorNot {
		t.Errorf("Expected NOT operator, got %s", notNode.Operator())
	}
}

func TestComparisonNodes(t *testing.T) {
	left := Value(5)
	right := Value(5)
	eqNode := Equal(left, right)

	if eqNode.Left() != left {
		t.Error("Equal node left operand mismatch")
	}
	if eqNode.Right() != right {
		t.Error("Equal node right operand mismatch")
	}
	if eqNode.Associativity() != NonAssociative {
		t.Errorf("Comparison should be non-associative, got %s", eqNode.Associativity())
	}
}

func TestAndNodeFoldsLeft(t *testing.T) {
	a := Value(1)
	b := Value(2)
	c := Value(3)

	// And(a, b, c) must build (a AND b) AND c
	andNode, ok := And(a, b, c).(InfixNode)
	if !ok {
		t.Fatalf("Expected an infix node, got %T", And(a, b, c))
	}
	if andNode.Operator() != operators.OperatorAnd {
		t.Fatalf("Expected AND operator, got %s", andNode.Operator())
	}
	inner, ok := andNode.Left().(InfixNode)
	if !ok {
		t.Fatalf("Expected nested infix on the left, got %T", andNode.Left())
	}
	if inner.Left() != a || inner.Right() != b {
		t.Error("Left fold shape mismatch")
	}
	if andNode.Right() != c {
		t.Error("Right operand should be the last argument")
	}
}

func TestAndOrSingleOperand(t *testing.T) {
	a := Value(true)
	if got := And(a); got != Visitable(a) {
		t.Errorf("And with one operand should return it unchanged, got %T", got)
	}
	if got := Or(a); got != Visitable(a) {
		t.Errorf("Or with one operand should return it unchanged, got %T", got)
	}
}

func TestFieldNode(t *testing.T) {
	scope := Object(GlobalScope(), "user")
	fieldNode := Field(scope, "name")

	if fieldNode.Name() != "name" {
		t.Errorf("Expected field name 'name', got %s", fieldNode.Name())
	}
	if fieldNode.Scope() != scope {
		t.Error("Field scope mismatch")
	}
}

func TestExtractFieldPath(t *testing.T) {
	gs := GlobalScope()
	user := Object(gs, "user")
	profile := Object(user, "profile")
	fieldNode := Field(profile, "age")

	path := ExtractFieldPath(fieldNode)
	if len(path) != 3 || path[0] != "user" || path[1] != "profile" || path[2] != "age" {
		t.Errorf("Unexpected path %v", path)
	}
}

func evaluate(t *testing.T, ctx Context, expr Visitable) (bool, error) {
	t.Helper()
	visitor := NewEvaluateVisitor(ctx, operators.NewDefaultRegistry())
	if err := expr.Accept(visitor); err != nil {
		return false, err
	}
	return visitor.Result()
}

func TestEvaluateValue(t *testing.T) {
	result, err := evaluate(t, MapContext{}, Value(true))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != true {
		t.Errorf("Expected true, got %v", result)
	}
}

func TestEvaluateNot(t *testing.T) {
	result, err := evaluate(t, MapContext{}, Not(Value(true)))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != false {
		t.Errorf("Expected false, got %v", result)
	}
}

func TestEvaluateAnd(t *testing.T) {
	cases := []struct {
		left, right, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, c := range cases {
		result, err := evaluate(t, MapContext{}, And(Value(c.left), Value(c.right)))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if result != c.want {
			t.Errorf("%v AND %v: expected %v, got %v", c.left, c.right, c.want, result)
		}
	}
}

func TestEvaluateComparisons(t *testing.T) {
	cases := []struct {
		expr Visitable
		want bool
	}{
		{Equal(Value(5), Value(5)), true},
		{Equal(Value(5), Value(10)), false},
		{NotEqual(Value("a"), Value("b")), true},
		{GreaterThan(Value(10), Value(5)), true},
		{GreaterThan(Value(5), Value(10)), false},
		{LessThanEqual(Value(5), Value(5)), true},
	}
	for i, c := range cases {
		result, err := evaluate(t, MapContext{}, c.expr)
		if err != nil {
			t.Fatalf("case %d: evaluate failed: %v", i, err)
		}
		if result != c.want {
			t.Errorf("case %d: expected %v, got %v", i, c.want, result)
		}
	}
}

func TestEvaluateFieldAccess(t *testing.T) {
	ctx := MapContext{"age": 25}
	result, err := evaluate(t, ctx, GreaterThan(Field(GlobalScope(), "age"), Value(18)))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != true {
		t.Errorf("Expected true, got %v", result)
	}
}

func TestEvaluateObjectNavigation(t *testing.T) {
	ctx := MapContext{"user": map[string]any{"name": "Alice"}}

	expr := Equal(Field(Object(GlobalScope(), "user"), "name"), Value("Alice"))
	result, err := evaluate(t, ctx, expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != true {
		t.Errorf("Expected true, got %v", result)
	}
}

func TestEvaluateWildcard(t *testing.T) {
	items := NewCollectionContext([]Context{
		MapContext{"score": 90},
		MapContext{"score": 75},
	})
	ctx := MapContext{"items": items}

	// items[*].score > 80
	expr := Wildcard(
		Object(GlobalScope(), "items"),
		GreaterThan(Field(Item(), "score"), Value(80)),
	)
	result, err := evaluate(t, ctx, expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != true {
		t.Errorf("Expected true, got %v", result)
	}
}

func TestEvaluateWildcardNoMatch(t *testing.T) {
	items := NewCollectionContext([]Context{
		MapContext{"score": 70},
		MapContext{"score": 75},
	})
	ctx := MapContext{"items": items}

	expr := Wildcard(
		Object(GlobalScope(), "items"),
		GreaterThan(Field(Item(), "score"), Value(80)),
	)
	result, err := evaluate(t, ctx, expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != false {
		t.Errorf("Expected false, got %v", result)
	}
}

func TestEvaluateNestedWildcard(t *testing.T) {
	order := func(status string) Context {
		return MapContext{
			"status": status,
			"lines": NewCollectionContext([]Context{
				MapContext{"qty": 10, "status": "line"},
			}),
		}
	}

	// orders[*] with a big line that is still open: the inner wildcard must
	// not redirect which order the outer status check reads.
	expr := Wildcard(
		Object(GlobalScope(), "orders"),
		And(
			Wildcard(Object(Item(), "lines"), GreaterThan(Field(Item(), "qty"), Value(5))),
			Equal(Field(Item(), "status"), Value("open")),
		),
	)

	ctx := MapContext{"orders": NewCollectionContext([]Context{order("open")})}
	result, err := evaluate(t, ctx, expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != true {
		t.Errorf("Expected the open order with a qualifying line to match, got %v", result)
	}

	ctx = MapContext{"orders": NewCollectionContext([]Context{order("closed")})}
	result, err = evaluate(t, ctx, expr)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result != false {
		t.Errorf("Expected the closed order not to match, got %v", result)
	}
}

func TestEvaluateMissingKey(t *testing.T) {
	expr := Field(GlobalScope(), "nonexistent")
	visitor := NewEvaluateVisitor(MapContext{}, operators.NewDefaultRegistry())
	if err := expr.Accept(visitor); err == nil {
		t.Error("Expected error for missing key, got nil")
	}
}

func TestEvaluateNullPropagation(t *testing.T) {
	ctx := MapContext{"rating": nil}

	// NULL > 4 is NULL, reported via ErrNullResult
	expr := GreaterThan(Field(GlobalScope(), "rating"), Value(4))
	visitor := NewEvaluateVisitor(ctx, operators.NewDefaultRegistry())
	if err := expr.Accept(visitor); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if _, err := visitor.Result(); err != ErrNullResult {
		t.Errorf("Expected ErrNullResult, got %v", err)
	}

	// but NULL IS NULL is definite
	isNull, err := evaluate(t, ctx, IsNull(Field(GlobalScope(), "rating")))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if isNull != true {
		t.Errorf("Expected true, got %v", isNull)
	}
}
