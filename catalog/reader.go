package catalog

import (
	"cmp"
	"context"
	"database/sql"
	"log/slog"
	"slices"
	"time"
)

// Querier runs a read-only query. *sql.DB, *sql.Conn, *sql.Tx and
// *duckcat.Conn all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QueryError is returned when an introspection query fails, for example
// because the connection is closed.
type QueryError struct {
	// Object is what was being listed ("databases", "schemas", "tables", "columns").
	Object string
	Err    error
}

func (e *QueryError) Error() string {
	return "failed to list " + e.Object + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

const (
	databasesQuery = `SELECT database_name
		FROM duckdb_databases()
		WHERE NOT internal
		ORDER BY database_name`

	schemasQuery = `SELECT schema_name
		FROM information_schema.schemata
		WHERE catalog_name = ?
		AND schema_name NOT IN ('information_schema', 'pg_catalog')
		ORDER BY schema_name`

	tablesQuery = `SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_catalog = ?
		AND table_schema = ?
		ORDER BY table_name`

	columnsQuery = `SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_catalog = ?
		AND table_schema = ?
		AND table_name = ?
		ORDER BY column_name`
)

// Reader reads catalog metadata through a Querier.
// It keeps no state between calls.
type Reader struct {
	q      Querier
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger uses slog.Default().
func NewReader(q Querier, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{q: q, logger: logger}
}

// Databases returns the attached databases, sorted by name.
func (r *Reader) Databases(ctx context.Context) ([]string, error) {
	names, err := queryAll(ctx, r.q, "databases", scanString, databasesQuery)
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Schemas returns the schemas of database, sorted by name.
func (r *Reader) Schemas(ctx context.Context, database string) ([]string, error) {
	names, err := queryAll(ctx, r.q, "schemas", scanString, schemasQuery, database)
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Tables returns the tables of database.schema, sorted by name.
// Columns of the returned tables are empty; use Columns or Catalog to fill them.
func (r *Reader) Tables(ctx context.Context, database, schema string) ([]Table, error) {
	tables, err := queryAll(ctx, r.q, "tables", scanTable, tablesQuery, database, schema)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tables, func(a, b Table) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return tables, nil
}

// Columns returns the columns of database.schema.table, sorted by name.
func (r *Reader) Columns(ctx context.Context, database, schema, table string) ([]Column, error) {
	cols, err := queryAll(ctx, r.q, "columns", scanColumn, columnsQuery, database, schema, table)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(cols, func(a, b Column) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return cols, nil
}

// Catalog reads every database, schema, table, and column into a Tree.
// Databases and schemas without children are kept with empty slices.
func (r *Reader) Catalog(ctx context.Context) (Tree, error) {
	start := time.Now()

	dbNames, err := r.Databases(ctx)
	if err != nil {
		return nil, err
	}

	tree := make(Tree, 0, len(dbNames))
	var tableCount, viewCount int
	for _, dbName := range dbNames {
		schemaNames, err := r.Schemas(ctx, dbName)
		if err != nil {
			return nil, err
		}

		db := Database{Name: dbName, Schemas: make([]Schema, 0, len(schemaNames))}
		for _, schemaName := range schemaNames {
			tables, err := r.Tables(ctx, dbName, schemaName)
			if err != nil {
				return nil, err
			}
			for i := range tables {
				cols, err := r.Columns(ctx, dbName, schemaName, tables[i].Name)
				if err != nil {
					return nil, err
				}
				tables[i].Columns = cols
				if tables[i].IsView() {
					viewCount++
				}
			}
			tableCount += len(tables)
			db.Schemas = append(db.Schemas, Schema{Name: schemaName, Tables: tables})
		}
		tree = append(tree, db)
	}

	r.logger.Debug("catalog read",
		"databases", len(tree),
		"tables", tableCount,
		"views", viewCount,
		"duration", time.Since(start),
	)
	return tree, nil
}

// ListDatabases returns the attached databases, sorted by name.
func ListDatabases(ctx context.Context, q Querier) ([]string, error) {
	return NewReader(q, nil).Databases(ctx)
}

// ListSchemas returns the schemas of database, sorted by name.
func ListSchemas(ctx context.Context, q Querier, database string) ([]string, error) {
	return NewReader(q, nil).Schemas(ctx, database)
}

// ListTables returns the tables of database.schema, sorted by name.
func ListTables(ctx context.Context, q Querier, database, schema string) ([]Table, error) {
	return NewReader(q, nil).Tables(ctx, database, schema)
}

// ListColumns returns the columns of database.schema.table, sorted by name.
func ListColumns(ctx context.Context, q Querier, database, schema, table string) ([]Column, error) {
	return NewReader(q, nil).Columns(ctx, database, schema, table)
}

// GetCatalog reads the full catalog tree.
func GetCatalog(ctx context.Context, q Querier) (Tree, error) {
	return NewReader(q, nil).Catalog(ctx)
}

// queryAll runs query and scans every row. Rows are closed before it
// returns, so callers can issue the next query on a single connection.
func queryAll[T any](ctx context.Context, q Querier, object string, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Object: object, Err: err}
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, &QueryError{Object: object, Err: err}
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Object: object, Err: err}
	}
	return result, nil
}

func scanString(rows *sql.Rows) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}

func scanTable(rows *sql.Rows) (Table, error) {
	t := Table{Columns: []Column{}}
	err := rows.Scan(&t.Name, &t.Kind)
	return t, err
}

func scanColumn(rows *sql.Rows) (Column, error) {
	var c Column
	err := rows.Scan(&c.Name, &c.Type)
	return c, err
}
