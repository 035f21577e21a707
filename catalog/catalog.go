// Package catalog reads the databases, schemas, tables, and columns visible
// through a DuckDB connection and assembles them into a nested tree.
//
// The package issues a fixed set of introspection queries:
//   - ListDatabases: attached, non-internal databases
//   - ListSchemas: schemas of one database (system schemas excluded)
//   - ListTables: tables and views of one schema, with their kind
//   - ListColumns: columns of one table, with their declared type
//
// GetCatalog composes the four into a Tree. Every level is sorted by name
// and child slices are never nil. Unknown names yield empty slices, not errors.
package catalog

// Tree is the full catalog visible through a connection, sorted by database name.
type Tree []Database

// Database is an attached database and its schemas.
type Database struct {
	Name    string   `msgpack:"name"`
	Schemas []Schema `msgpack:"schemas"`
}

// Schema is a schema and its tables.
type Schema struct {
	Name   string  `msgpack:"name"`
	Tables []Table `msgpack:"tables"`
}

// Table is a table or view. Kind is the information_schema table_type
// (e.g., "BASE TABLE", "VIEW", "LOCAL TEMPORARY").
type Table struct {
	Name    string   `msgpack:"name"`
	Kind    string   `msgpack:"kind"`
	Columns []Column `msgpack:"columns"`
}

// Column is a column with its declared type (e.g., "BIGINT", "DECIMAL(18,3)").
type Column struct {
	Name string `msgpack:"name"`
	Type string `msgpack:"type"`
}

// Table kinds reported by DuckDB.
const (
	KindBaseTable = "BASE TABLE"
	KindView      = "VIEW"
)

// Database returns the database with the given name.
// Returns (Database{}, false) if it doesn't exist.
func (t Tree) Database(name string) (Database, bool) {
	for _, db := range t {
		if db.Name == name {
			return db, true
		}
	}
	return Database{}, false
}

// Schema returns the schema with the given name.
func (d Database) Schema(name string) (Schema, bool) {
	for _, s := range d.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}

// Table returns the table with the given name.
func (s Schema) Table(name string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// IsView reports whether the table is a view.
func (t Table) IsView() bool {
	return t.Kind == KindView
}
