package specification

import (
	"errors"
	"fmt"
)

// ErrUntranslatable reports an expression shape or parameter the target SQL
// dialect cannot represent. Callers that want in-memory evaluation instead
// must fall back explicitly; compilation never degrades silently.
var ErrUntranslatable = errors.New("expression cannot be translated")

// Dialect captures the differences between target SQL engines that matter
// for rendering a predicate.
type Dialect interface {
	Name() string
	// Placeholder renders the parameter marker for the n-th parameter,
	// counting from 1.
	Placeholder(n int) string
	// SupportsEmbeddedCollections reports whether collections stored inline
	// in a row (arrays, JSONB) can be searched with a wildcard.
	SupportsEmbeddedCollections() bool
}

// Postgresql renders $1, $2, ... placeholders and searches embedded
// collections with unnest.
type Postgresql struct{}

func (Postgresql) Name() string {
	return "postgresql"
}

func (Postgresql) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (Postgresql) SupportsEmbeddedCollections() bool {
	return true
}

// Sqlite renders ? placeholders. Embedded collections are not translatable;
// map collections to child tables in a SchemaRegistry instead.
type Sqlite struct{}

func (Sqlite) Name() string {
	return "sqlite"
}

func (Sqlite) Placeholder(int) string {
	return "?"
}

func (Sqlite) SupportsEmbeddedCollections() bool {
	return false
}
