package specification

import (
	s "github.com/krew-solutions/specification-go/specification/domain"
)

// Compile renders an expression tree into a PostgreSQL WHERE clause with
// positional bind parameters. Compiling the same tree twice yields identical
// SQL and parameters; trees are never mutated.
func Compile(expr s.Visitable, opts ...SQLVisitorOption) (sql string, params []any, err error) {
	return CompileWith(Postgresql{}, expr, opts...)
}

// CompileSqlite renders an expression tree into a SQLite WHERE clause with ?
// placeholders.
func CompileSqlite(expr s.Visitable, opts ...SQLVisitorOption) (sql string, params []any, err error) {
	return CompileWith(Sqlite{}, expr, opts...)
}

// CompileWith renders for an arbitrary dialect.
func CompileWith(dialect Dialect, expr s.Visitable, opts ...SQLVisitorOption) (sql string, params []any, err error) {
	v := NewSQLVisitor(dialect, opts...)
	if err := expr.Accept(v); err != nil {
		return "", nil, err
	}
	return v.Result()
}
