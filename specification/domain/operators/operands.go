package operators

// Operand interfaces let value-object types participate in comparisons
// without registering an implementation for every operator. A type that
// implements LessThanOperand gets <, <=, > and >= for free.

type EqualOperand interface {
	Equal(other any) bool
}

type LessThanOperand interface {
	LessThan(other any) bool
}
