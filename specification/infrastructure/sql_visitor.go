package specification

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"

	s "github.com/krew-solutions/specification-go/specification/domain"
)

type SQLVisitorOption func(*SQLVisitor)

// PlaceholderOffset shifts parameter numbering, for embedding the rendered
// clause into a statement that already binds parameters.
func PlaceholderOffset(offset int) SQLVisitorOption {
	return func(v *SQLVisitor) {
		v.placeholderOffset = offset
	}
}

// WithSchema sets the schema registry used to map collection fields onto
// child tables.
func WithSchema(schema *SchemaRegistry) SQLVisitorOption {
	return func(v *SQLVisitor) {
		v.schema = schema
	}
}

// NewSQLVisitor renders an expression tree into a WHERE clause for the given
// dialect. Rendering is structural: the tree is rewritten into SQL text and
// bind parameters, never evaluated.
func NewSQLVisitor(dialect Dialect, opts ...SQLVisitorOption) *SQLVisitor {
	v := &SQLVisitor{
		dialect:           dialect,
		precedenceMapping: make(map[string]int),
	}
	// https://www.postgresql.org/docs/14/sql-syntax-lexical.html#SQL-PRECEDENCE-TABLE
	// SQLite agrees on the relative order of everything rendered here.
	v.setPrecedence(110, "+ LEFT", "- LEFT")
	v.setPrecedence(100, "(any other operator) LEFT")
	v.setPrecedence(80, "< NON", "> NON", "= NON", "<= NON", ">= NON", "!= NON")
	v.setPrecedence(70, "IS NULL NON", "IS NOT NULL NON")
	v.setPrecedence(60, "NOT RIGHT")
	v.setPrecedence(50, "AND LEFT")
	v.setPrecedence(40, "OR LEFT")
	for i := range opts {
		opts[i](v)
	}
	return v
}

func NewPostgresqlVisitor(opts ...SQLVisitorOption) *SQLVisitor {
	return NewSQLVisitor(Postgresql{}, opts...)
}

func NewSqliteVisitor(opts ...SQLVisitorOption) *SQLVisitor {
	return NewSQLVisitor(Sqlite{}, opts...)
}

type SQLVisitor struct {
	dialect           Dialect
	sql               strings.Builder
	placeholderOffset int
	parameters        []any
	precedence        int
	precedenceMapping map[string]int
	// wildcard context
	inWildcard      bool
	wildcardAlias   string
	wildcardCounter int
	schema          *SchemaRegistry
}

func (v *SQLVisitor) setPrecedence(precedence int, keys ...string) {
	for _, key := range keys {
		v.precedenceMapping[key] = precedence
	}
}

func (v *SQLVisitor) precedenceKey(n s.Operable) string {
	return fmt.Sprintf("%s %s", n.Operator(), n.Associativity())
}

// visit wraps the rendering of an operator node in parentheses when its
// precedence is lower than the surrounding one.
func (v *SQLVisitor) visit(precedenceKey string, render func() error) error {
	outer := v.precedence
	inner, ok := v.precedenceMapping[precedenceKey]
	if !ok {
		inner, ok = v.precedenceMapping["(any other operator) LEFT"]
		if !ok {
			inner = outer
		}
	}
	v.precedence = inner
	if inner < outer {
		v.sql.WriteString("(")
	}
	if err := render(); err != nil {
		return err
	}
	if inner < outer {
		v.sql.WriteString(")")
	}
	v.precedence = outer
	return nil
}

func (v *SQLVisitor) VisitGlobalScope(s.GlobalScopeNode) error {
	return nil
}

func (v *SQLVisitor) VisitObject(s.ObjectNode) error {
	return nil
}

func (v *SQLVisitor) VisitCollection(n s.CollectionNode) error {
	// A wildcard renders as an EXISTS subquery. Two storage layouts:
	// relational (child table joined by FK) and embedded (array/JSONB
	// searched with unnest, PostgreSQL only).
	fieldName := v.collectionFieldName(n)

	if v.schema != nil && v.schema.IsRelational(fieldName) {
		return v.visitRelationalCollection(n, fieldName)
	}

	if !v.dialect.SupportsEmbeddedCollections() {
		return errors.Wrapf(ErrUntranslatable,
			"dialect %q cannot search embedded collection %q; register it as relational",
			v.dialect.Name(), fieldName)
	}
	return v.visitEmbeddedCollection(n)
}

func (v *SQLVisitor) visitEmbeddedCollection(n s.CollectionNode) error {
	collectionPath := v.collectionPath(n)

	v.wildcardCounter++
	alias := fmt.Sprintf("%s_%d", strings.ToLower(v.itemAlias(n)), v.wildcardCounter)

	outerInWildcard := v.inWildcard
	outerAlias := v.wildcardAlias
	v.inWildcard = true
	v.wildcardAlias = alias

	v.sql.WriteString("EXISTS (SELECT 1 FROM unnest(")
	v.sql.WriteString(collectionPath)
	v.sql.WriteString(") AS ")
	v.sql.WriteString(alias)
	v.sql.WriteString(" WHERE ")

	if err := n.Predicate().Accept(v); err != nil {
		return err
	}
	v.sql.WriteString(")")

	v.inWildcard = outerInWildcard
	v.wildcardAlias = outerAlias
	return nil
}

func (v *SQLVisitor) visitRelationalCollection(n s.CollectionNode, fieldName string) error {
	mapping, _ := v.schema.Get(fieldName)

	v.wildcardCounter++
	alias := mapping.Alias
	if alias == "" {
		alias = strings.ToLower(v.itemAlias(n))
	}
	alias = fmt.Sprintf("%s_%d", alias, v.wildcardCounter)

	// The FK condition references the scope surrounding this wildcard, so
	// the parent reference is resolved before entering the new context.
	outerInWildcard := v.inWildcard
	outerAlias := v.wildcardAlias
	parentRef := v.parentRef(outerInWildcard, outerAlias)

	v.inWildcard = true
	v.wildcardAlias = alias

	v.sql.WriteString("EXISTS (SELECT 1 FROM ")
	v.sql.WriteString(mapping.Table)
	v.sql.WriteString(" AS ")
	v.sql.WriteString(alias)
	v.sql.WriteString(" WHERE ")

	for i, fk := range mapping.ForeignKeys {
		if i > 0 {
			v.sql.WriteString(" AND ")
		}
		v.sql.WriteString(alias)
		v.sql.WriteString(".")
		v.sql.WriteString(fk.ChildColumn)
		v.sql.WriteString(" = ")
		v.sql.WriteString(parentRef)
		v.sql.WriteString(".")
		v.sql.WriteString(fk.ParentColumn)
	}
	v.sql.WriteString(" AND ")

	if err := n.Predicate().Accept(v); err != nil {
		return err
	}
	v.sql.WriteString(")")

	v.inWildcard = outerInWildcard
	v.wildcardAlias = outerAlias
	return nil
}

func (v *SQLVisitor) parentRef(outerInWildcard bool, outerAlias string) string {
	if outerInWildcard && outerAlias != "" {
		return outerAlias
	}
	if v.schema != nil {
		return v.schema.ParentRef()
	}
	return ""
}

func (v *SQLVisitor) collectionFieldName(n s.CollectionNode) string {
	parent := n.Parent()
	if !parent.IsRoot() {
		return parent.Name()
	}
	return ""
}

func (v *SQLVisitor) collectionPath(n s.CollectionNode) string {
	var parts []string
	parent := n.Parent()
	for !parent.IsRoot() {
		parts = append([]string{parent.Name()}, parts...)
		parent = parent.Parent()
	}

	// Inside a nested wildcard the path hangs off the current item alias.
	if v.inWildcard && isItemScope(parent) {
		if len(parts) > 0 {
			return v.wildcardAlias + "." + strings.Join(parts, ".")
		}
		return v.wildcardAlias
	}
	return strings.Join(parts, ".")
}

func (v *SQLVisitor) itemAlias(n s.CollectionNode) string {
	parent := n.Parent()
	if !parent.IsRoot() {
		return inflection.Singular(parent.Name())
	}
	return "item"
}

func (v *SQLVisitor) VisitItem(s.ItemNode) error {
	// Handled in VisitField when the field's scope is the current item.
	return nil
}

func (v *SQLVisitor) VisitField(n s.FieldNode) error {
	if v.inWildcard && isItemScope(n.Scope()) {
		v.sql.WriteString(v.wildcardAlias)
		v.sql.WriteString(".")
		v.sql.WriteString(n.Name())
		return nil
	}
	v.sql.WriteString(strings.Join(s.ExtractFieldPath(n), "."))
	return nil
}

func isItemScope(scope s.Scope) bool {
	_, ok := scope.(s.ItemNode)
	return ok
}

func (v *SQLVisitor) VisitValue(n s.ValueNode) error {
	value := n.Value()
	if err := checkBindable(value); err != nil {
		return err
	}
	v.parameters = append(v.parameters, value)
	v.sql.WriteString(v.dialect.Placeholder(v.placeholderOffset + len(v.parameters)))
	return nil
}

// checkBindable rejects parameter values no SQL driver can bind.
func checkBindable(value any) error {
	if value == nil {
		return nil
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return errors.Wrapf(ErrUntranslatable, "parameter of type %T cannot be bound", value)
	}
	return nil
}

func (v *SQLVisitor) VisitPrefix(n s.PrefixNode) error {
	return v.visit(v.precedenceKey(n), func() error {
		v.sql.WriteString(fmt.Sprintf("%s ", n.Operator()))
		return n.Operand().Accept(v)
	})
}

func (v *SQLVisitor) VisitInfix(n s.InfixNode) error {
	return v.visit(v.precedenceKey(n), func() error {
		if err := n.Left().Accept(v); err != nil {
			return err
		}
		v.sql.WriteString(fmt.Sprintf(" %s ", n.Operator()))
		return n.Right().Accept(v)
	})
}

func (v *SQLVisitor) VisitPostfix(n s.PostfixNode) error {
	return v.visit(v.precedenceKey(n), func() error {
		if err := n.Operand().Accept(v); err != nil {
			return err
		}
		v.sql.WriteString(fmt.Sprintf(" %s", n.Operator()))
		return nil
	})
}

func (v *SQLVisitor) Result() (sql string, params []any, err error) {
	return v.sql.String(), v.parameters, nil
}
