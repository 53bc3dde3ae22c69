package specification

// StorageType defines how a collection field is stored.
type StorageType int

const (
	// StorageEmbedded keeps the collection inside the parent row (array or
	// JSONB column).
	StorageEmbedded StorageType = iota
	// StorageRelational keeps the collection in a child table.
	StorageRelational
)

// ForeignKeyPair is a single FK column mapping between child and parent.
type ForeignKeyPair struct {
	ChildColumn  string
	ParentColumn string
}

// CollectionMapping describes where a collection field lives.
type CollectionMapping struct {
	Storage StorageType

	// Table is the child table name, StorageRelational only.
	Table string

	// ForeignKeys joins the child to the parent; more than one pair makes a
	// composite key.
	ForeignKeys []ForeignKeyPair

	// Alias overrides the generated subquery alias.
	Alias string
}

// SchemaRegistry maps the collection fields of one aggregate to storage, so
// wildcards over them can compile to EXISTS subqueries.
type SchemaRegistry struct {
	// ParentTable is the aggregate's table.
	ParentTable string

	// ParentAlias is the alias the surrounding query uses for ParentTable.
	ParentAlias string

	collections map[string]CollectionMapping
}

func NewSchemaRegistry(parentTable string) *SchemaRegistry {
	return &SchemaRegistry{
		ParentTable: parentTable,
		collections: make(map[string]CollectionMapping),
	}
}

func (r *SchemaRegistry) WithParentAlias(alias string) *SchemaRegistry {
	r.ParentAlias = alias
	return r
}

// RegisterEmbedded marks a collection as stored inside the parent row.
func (r *SchemaRegistry) RegisterEmbedded(fieldName string) *SchemaRegistry {
	r.collections[fieldName] = CollectionMapping{Storage: StorageEmbedded}
	return r
}

// RegisterRelational maps a collection onto a child table with a simple FK.
func (r *SchemaRegistry) RegisterRelational(fieldName, table, childColumn, parentColumn string) *SchemaRegistry {
	r.collections[fieldName] = CollectionMapping{
		Storage: StorageRelational,
		Table:   table,
		ForeignKeys: []ForeignKeyPair{
			{ChildColumn: childColumn, ParentColumn: parentColumn},
		},
	}
	return r
}

// Register maps a collection with a full mapping, for composite keys and
// custom aliases.
func (r *SchemaRegistry) Register(fieldName string, mapping CollectionMapping) *SchemaRegistry {
	r.collections[fieldName] = mapping
	return r
}

func (r *SchemaRegistry) Get(fieldName string) (CollectionMapping, bool) {
	mapping, ok := r.collections[fieldName]
	return mapping, ok
}

// IsRelational reports whether the collection lives in a child table.
// Unregistered collections default to embedded.
func (r *SchemaRegistry) IsRelational(fieldName string) bool {
	mapping, ok := r.collections[fieldName]
	return ok && mapping.Storage == StorageRelational
}

// ParentRef is how the parent row is referenced inside subqueries.
func (r *SchemaRegistry) ParentRef() string {
	if r.ParentAlias != "" {
		return r.ParentAlias
	}
	return r.ParentTable
}
