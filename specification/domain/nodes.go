package specification

import "github.com/krew-solutions/specification-go/specification/domain/operators"

// Associativity is carried on operator nodes so SQL compilers can decide
// where parentheses are required.
type Associativity string

const (
	LeftAssociative  Associativity = "LEFT"
	RightAssociative Associativity = "RIGHT"
	NonAssociative   Associativity = "NON"
)

// Operable is any node that carries an operator with associativity.
type Operable interface {
	Associativity() Associativity
	Operator() operators.Operator
}

// Visitable is a node of the expression tree.
type Visitable interface {
	Accept(Visitor) error
}

// Visitor walks the expression tree. Implementations decide whether a walk
// evaluates the tree or renders it into another representation.
type Visitor interface {
	VisitGlobalScope(GlobalScopeNode) error
	VisitObject(ObjectNode) error
	VisitCollection(CollectionNode) error
	VisitItem(ItemNode) error
	VisitField(FieldNode) error
	VisitValue(ValueNode) error
	VisitPrefix(PrefixNode) error
	VisitInfix(InfixNode) error
	VisitPostfix(PostfixNode) error
}

// Value wraps a constant closed over at construction time.
func Value(value any) ValueNode {
	return ValueNode{value: value}
}

type ValueNode struct {
	value any
}

func (n ValueNode) Value() any {
	return n.value
}

func (n ValueNode) Accept(v Visitor) error {
	return v.VisitValue(n)
}

// Scope is the chain of objects a field is resolved against. GlobalScope is
// the root of every tree and stands for the single entity parameter, so two
// trees built independently always share the same parameter symbol and can
// be joined structurally.
type Scope interface {
	Visitable
	Parent() Scope
	Name() string
	IsRoot() bool
}

func GlobalScope() GlobalScopeNode {
	return GlobalScopeNode{}
}

type GlobalScopeNode struct{}

func (n GlobalScopeNode) Parent() Scope {
	return n
}

func (n GlobalScopeNode) Name() string {
	return "Empty"
}

func (n GlobalScopeNode) IsRoot() bool {
	return true
}

func (n GlobalScopeNode) Accept(v Visitor) error {
	return v.VisitGlobalScope(n)
}

// Object names a nested entity inside its parent scope.
func Object(parent Scope, name string) ObjectNode {
	return ObjectNode{parent: parent, name: name}
}

type ObjectNode struct {
	parent Scope
	name   string
}

func (n ObjectNode) Parent() Scope {
	return n.parent
}

func (n ObjectNode) Name() string {
	return n.name
}

func (n ObjectNode) IsRoot() bool {
	return false
}

func (n ObjectNode) Accept(v Visitor) error {
	return v.VisitObject(n)
}

// Item stands for the current element while a collection wildcard is being
// walked. See JSONPath's @.
func Item() ItemNode {
	return ItemNode{}
}

type ItemNode struct{}

func (n ItemNode) Parent() Scope {
	return GlobalScope()
}

func (n ItemNode) Name() string {
	return "@"
}

func (n ItemNode) IsRoot() bool {
	return true
}

func (n ItemNode) Accept(v Visitor) error {
	return v.VisitItem(n)
}

// Wildcard matches when at least one element of the parent collection
// satisfies the predicate.
func Wildcard(parent Scope, predicate Visitable) CollectionNode {
	return CollectionNode{
		parent:    parent,
		slice:     "*",
		predicate: predicate,
	}
}

type CollectionNode struct {
	parent    Scope
	slice     string
	predicate Visitable
}

func (n CollectionNode) Parent() Scope {
	return n.parent
}

func (n CollectionNode) Name() string {
	return n.slice
}

func (n CollectionNode) IsRoot() bool {
	return false
}

func (n CollectionNode) Predicate() Visitable {
	return n.predicate
}

func (n CollectionNode) Accept(v Visitor) error {
	return v.VisitCollection(n)
}

// Field accesses a named field of the given scope.
func Field(scope Scope, name string) FieldNode {
	return FieldNode{scope: scope, name: name}
}

type FieldNode struct {
	scope Scope
	name  string
}

func (n FieldNode) Name() string {
	return n.name
}

func (n FieldNode) Scope() Scope {
	return n.scope
}

func (n FieldNode) Accept(v Visitor) error {
	return v.VisitField(n)
}

// Not negates a boolean expression.
func Not(operand Visitable) PrefixNode {
	return PrefixNode{
		operator:      operators.OperatorNot,
		operand:       operand,
		associativity: RightAssociative,
	}
}

type PrefixNode struct {
	operator      operators.Operator
	operand       Visitable
	associativity Associativity
}

func (n PrefixNode) Operand() Visitable {
	return n.operand
}

func (n PrefixNode) Operator() operators.Operator {
	return n.operator
}

func (n PrefixNode) Associativity() Associativity {
	return n.associativity
}

func (n PrefixNode) Accept(v Visitor) error {
	return v.VisitPrefix(n)
}

func Equal(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorEq, right)
}

func NotEqual(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorNe, right)
}

func GreaterThan(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorGt, right)
}

func GreaterThanEqual(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorGte, right)
}

func LessThan(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorLt, right)
}

func LessThanEqual(left, right Visitable) InfixNode {
	return comparison(left, operators.OperatorLte, right)
}

func comparison(left Visitable, op operators.Operator, right Visitable) InfixNode {
	return InfixNode{
		left:          left,
		operator:      op,
		right:         right,
		associativity: NonAssociative,
	}
}

// And joins expressions with logical AND. Extra operands are folded to the
// left, so And(a, b, c) builds (a AND b) AND c. A single operand is returned
// unchanged.
func And(left Visitable, rights ...Visitable) Visitable {
	if len(rights) == 0 {
		return left
	}
	left, right := foldLeft(And, left, rights...)
	return InfixNode{
		left:          left,
		operator:      operators.OperatorAnd,
		right:         right,
		associativity: LeftAssociative,
	}
}

// Or joins expressions with logical OR, folding like And.
func Or(left Visitable, rights ...Visitable) Visitable {
	if len(rights) == 0 {
		return left
	}
	left, right := foldLeft(Or, left, rights...)
	return InfixNode{
		left:          left,
		operator:      operators.OperatorOr,
		right:         right,
		associativity: LeftAssociative,
	}
}

// Add and Sub exist for timestamp/interval arithmetic inside rules.
func Add(left, right Visitable) InfixNode {
	return InfixNode{
		left:          left,
		operator:      operators.OperatorAdd,
		right:         right,
		associativity: LeftAssociative,
	}
}

func Sub(left, right Visitable) InfixNode {
	return InfixNode{
		left:          left,
		operator:      operators.OperatorSub,
		right:         right,
		associativity: LeftAssociative,
	}
}

func foldLeft(
	join func(Visitable, ...Visitable) Visitable,
	left Visitable,
	rights ...Visitable,
) (Visitable, Visitable) {
	for len(rights) > 1 {
		left = join(left, rights[0])
		rights = rights[1:]
	}
	return left, rights[0]
}

type InfixNode struct {
	left          Visitable
	operator      operators.Operator
	right         Visitable
	associativity Associativity
}

func (n InfixNode) Left() Visitable {
	return n.left
}

func (n InfixNode) Operator() operators.Operator {
	return n.operator
}

func (n InfixNode) Right() Visitable {
	return n.right
}

func (n InfixNode) Associativity() Associativity {
	return n.associativity
}

func (n InfixNode) Accept(v Visitor) error {
	return v.VisitInfix(n)
}

func IsNull(operand Visitable) PostfixNode {
	return PostfixNode{
		operand:       operand,
		operator:      operators.OperatorIsNull,
		associativity: NonAssociative,
	}
}

func IsNotNull(operand Visitable) PostfixNode {
	return PostfixNode{
		operand:       operand,
		operator:      operators.OperatorIsNotNull,
		associativity: NonAssociative,
	}
}

type PostfixNode struct {
	operand       Visitable
	operator      operators.Operator
	associativity Associativity
}

func (n PostfixNode) Operand() Visitable {
	return n.operand
}

func (n PostfixNode) Operator() operators.Operator {
	return n.operator
}

func (n PostfixNode) Associativity() Associativity {
	return n.associativity
}

func (n PostfixNode) Accept(v Visitor) error {
	return v.VisitPostfix(n)
}
