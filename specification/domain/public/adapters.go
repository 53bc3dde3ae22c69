package public

import (
	"strings"

	s "github.com/krew-solutions/specification-go/specification/domain"
)

// Delegating wraps an expression node so typed builders can share it.
type Delegating struct {
	delegate s.Visitable
}

func NewDelegating(delegate s.Visitable) *Delegating {
	return &Delegating{delegate: delegate}
}

// Delegate returns the wrapped expression node.
func (d *Delegating) Delegate() s.Visitable {
	return d.delegate
}

// Logical is a boolean-valued expression under construction.
type Logical struct {
	*Delegating
}

func NewLogical(delegate s.Visitable) *Logical {
	return &Logical{Delegating: NewDelegating(delegate)}
}

func (l *Logical) And(other *Logical) *Logical {
	return NewLogical(s.And(l.Delegate(), other.Delegate()))
}

func (l *Logical) Or(other *Logical) *Logical {
	return NewLogical(s.Or(l.Delegate(), other.Delegate()))
}

func (l *Logical) Not() *Logical {
	return NewLogical(s.Not(l.Delegate()))
}

// Scope_ builds a nested object scope from a dotted path.
// Scope_("user.profile") nests Object nodes under the global scope.
func Scope_(path string) s.Scope {
	var parent s.Scope = s.GlobalScope()
	for _, part := range strings.Split(path, ".") {
		parent = s.Object(parent, part)
	}
	return parent
}

// FieldNode builds a field node from a dotted path.
// FieldNode("user.name") resolves "name" inside the "user" object.
func FieldNode(path string) s.FieldNode {
	idx := strings.LastIndex(path, ".")
	if idx != -1 {
		return s.Field(Scope_(path[:idx]), path[idx+1:])
	}
	return s.Field(s.GlobalScope(), path)
}

// MatchAny is satisfied when at least one element of the named collection
// satisfies the item predicate. Build item predicates with the *Item field
// factories.
func MatchAny(collection string, predicate *Logical) *Logical {
	return NewLogical(s.Wildcard(Scope_(collection), predicate.Delegate()))
}
