package ddl

// ColumnDef describes a single column in a table definition. The fields are
// database-agnostic; SQLType holds a logical kind ("integer", "date", ...)
// until a backend dialect maps it to a concrete SQL type.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns. The FQN is expected in dotted form (e.g., "schema.table") and will
// be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
