package public

import (
	s "github.com/krew-solutions/specification-go/specification/domain"
)

// Typed builders over expression nodes. They only shape construction; all
// typing discipline at evaluation time lives in the operator registry.

// Boolean is a boolean field or constant; it is directly Logical.
type Boolean struct {
	*Logical
}

func NewBoolean(delegate s.Visitable) *Boolean {
	return &Boolean{Logical: NewLogical(delegate)}
}

func MakeBooleanField(name string) *Boolean {
	return NewBoolean(FieldNode(name))
}

func MakeBooleanValue(value bool) *Boolean {
	return NewBoolean(s.Value(value))
}

func (b *Boolean) Eq(other *Boolean) *Logical {
	return NewLogical(s.Equal(b.Delegate(), other.Delegate()))
}

func (b *Boolean) Ne(other *Boolean) *Logical {
	return NewLogical(s.NotEqual(b.Delegate(), other.Delegate()))
}

// Number is a numeric field or constant.
type Number struct {
	*Delegating
}

func NewNumber(delegate s.Visitable) *Number {
	return &Number{Delegating: NewDelegating(delegate)}
}

func MakeNumberField(name string) *Number {
	return NewNumber(FieldNode(name))
}

func MakeNumberValue(value any) *Number {
	return NewNumber(s.Value(value))
}

// MakeNumberItemField addresses a numeric field of the current wildcard item.
func MakeNumberItemField(name string) *Number {
	return NewNumber(s.Field(s.Item(), name))
}

func (n *Number) Eq(other *Number) *Logical {
	return NewLogical(s.Equal(n.Delegate(), other.Delegate()))
}

func (n *Number) Ne(other *Number) *Logical {
	return NewLogical(s.NotEqual(n.Delegate(), other.Delegate()))
}

func (n *Number) Gt(other *Number) *Logical {
	return NewLogical(s.GreaterThan(n.Delegate(), other.Delegate()))
}

func (n *Number) Gte(other *Number) *Logical {
	return NewLogical(s.GreaterThanEqual(n.Delegate(), other.Delegate()))
}

func (n *Number) Lt(other *Number) *Logical {
	return NewLogical(s.LessThan(n.Delegate(), other.Delegate()))
}

func (n *Number) Lte(other *Number) *Logical {
	return NewLogical(s.LessThanEqual(n.Delegate(), other.Delegate()))
}

func (n *Number) Add(other *Number) *Number {
	return NewNumber(s.Add(n.Delegate(), other.Delegate()))
}

func (n *Number) Sub(other *Number) *Number {
	return NewNumber(s.Sub(n.Delegate(), other.Delegate()))
}

func (n *Number) IsNull() *Logical {
	return NewLogical(s.IsNull(n.Delegate()))
}

func (n *Number) IsNotNull() *Logical {
	return NewLogical(s.IsNotNull(n.Delegate()))
}

// Datetime is a timestamp field or constant.
type Datetime struct {
	*Delegating
}

func NewDatetime(delegate s.Visitable) *Datetime {
	return &Datetime{Delegating: NewDelegating(delegate)}
}

func MakeDatetimeField(name string) *Datetime {
	return NewDatetime(FieldNode(name))
}

func MakeDatetimeValue(value any) *Datetime {
	return NewDatetime(s.Value(value))
}

func (d *Datetime) Eq(other *Datetime) *Logical {
	return NewLogical(s.Equal(d.Delegate(), other.Delegate()))
}

func (d *Datetime) Ne(other *Datetime) *Logical {
	return NewLogical(s.NotEqual(d.Delegate(), other.Delegate()))
}

func (d *Datetime) Gt(other *Datetime) *Logical {
	return NewLogical(s.GreaterThan(d.Delegate(), other.Delegate()))
}

func (d *Datetime) Gte(other *Datetime) *Logical {
	return NewLogical(s.GreaterThanEqual(d.Delegate(), other.Delegate()))
}

func (d *Datetime) Lt(other *Datetime) *Logical {
	return NewLogical(s.LessThan(d.Delegate(), other.Delegate()))
}

func (d *Datetime) Lte(other *Datetime) *Logical {
	return NewLogical(s.LessThanEqual(d.Delegate(), other.Delegate()))
}

// Add and Sub shift a timestamp by an interval value.
func (d *Datetime) Add(interval *Number) *Datetime {
	return NewDatetime(s.Add(d.Delegate(), interval.Delegate()))
}

func (d *Datetime) Sub(interval *Number) *Datetime {
	return NewDatetime(s.Sub(d.Delegate(), interval.Delegate()))
}

func (d *Datetime) IsNull() *Logical {
	return NewLogical(s.IsNull(d.Delegate()))
}

func (d *Datetime) IsNotNull() *Logical {
	return NewLogical(s.IsNotNull(d.Delegate()))
}

// Text is a string field or constant.
type Text struct {
	*Delegating
}

func NewText(delegate s.Visitable) *Text {
	return &Text{Delegating: NewDelegating(delegate)}
}

func MakeTextField(name string) *Text {
	return NewText(FieldNode(name))
}

func MakeTextValue(value string) *Text {
	return NewText(s.Value(value))
}

// MakeTextItemField addresses a text field of the current wildcard item.
func MakeTextItemField(name string) *Text {
	return NewText(s.Field(s.Item(), name))
}

func (t *Text) Eq(other *Text) *Logical {
	return NewLogical(s.Equal(t.Delegate(), other.Delegate()))
}

func (t *Text) Ne(other *Text) *Logical {
	return NewLogical(s.NotEqual(t.Delegate(), other.Delegate()))
}

func (t *Text) Gt(other *Text) *Logical {
	return NewLogical(s.GreaterThan(t.Delegate(), other.Delegate()))
}

func (t *Text) Lt(other *Text) *Logical {
	return NewLogical(s.LessThan(t.Delegate(), other.Delegate()))
}

func (t *Text) IsNull() *Logical {
	return NewLogical(s.IsNull(t.Delegate()))
}

func (t *Text) IsNotNull() *Logical {
	return NewLogical(s.IsNotNull(t.Delegate()))
}

// Identifier is an opaque id field or constant (uuid and friends).
type Identifier struct {
	*Delegating
}

func NewIdentifier(delegate s.Visitable) *Identifier {
	return &Identifier{Delegating: NewDelegating(delegate)}
}

func MakeIdentifierField(name string) *Identifier {
	return NewIdentifier(FieldNode(name))
}

func MakeIdentifierValue(value any) *Identifier {
	return NewIdentifier(s.Value(value))
}

func (i *Identifier) Eq(other *Identifier) *Logical {
	return NewLogical(s.Equal(i.Delegate(), other.Delegate()))
}

func (i *Identifier) Ne(other *Identifier) *Logical {
	return NewLogical(s.NotEqual(i.Delegate(), other.Delegate()))
}
