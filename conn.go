package duckcat

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"

	"github.com/hugr-lab/duckcat/catalog"
)

// Conn is an open DuckDB session spanning every attached location.
// It is not safe for concurrent use without external synchronization.
type Conn struct {
	db     *sql.DB
	locs   []Location
	opts   Options
	logger *slog.Logger
}

// DB returns the underlying database handle.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Locations returns the parsed locations in the order they were attached.
func (c *Conn) Locations() []Location {
	return slices.Clone(c.locs)
}

// Options returns the options the connection was opened with.
func (c *Conn) Options() Options {
	return c.opts
}

// QueryContext runs a query on the session connection.
// It makes Conn a catalog.Querier.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// Close closes the session and every attached database.
func (c *Conn) Close() error {
	return c.db.Close()
}

// ListDatabases returns the names of the attached databases, sorted.
func (c *Conn) ListDatabases(ctx context.Context) ([]string, error) {
	names, err := catalog.ListDatabases(ctx, c)
	return names, wrapQueryErr(err)
}

// ListSchemas returns the schemas of database, sorted.
func (c *Conn) ListSchemas(ctx context.Context, database string) ([]string, error) {
	names, err := catalog.ListSchemas(ctx, c, database)
	return names, wrapQueryErr(err)
}

// ListTables returns the tables and views of database.schema, sorted.
func (c *Conn) ListTables(ctx context.Context, database, schema string) ([]catalog.Table, error) {
	tables, err := catalog.ListTables(ctx, c, database, schema)
	return tables, wrapQueryErr(err)
}

// ListColumns returns the columns of database.schema.table, sorted by name.
func (c *Conn) ListColumns(ctx context.Context, database, schema, table string) ([]catalog.Column, error) {
	cols, err := catalog.ListColumns(ctx, c, database, schema, table)
	return cols, wrapQueryErr(err)
}

// Catalog reads the full database → schema → table → column tree.
func (c *Conn) Catalog(ctx context.Context) (catalog.Tree, error) {
	tree, err := catalog.NewReader(c, c.logger).Catalog(ctx)
	return tree, wrapQueryErr(err)
}

func wrapQueryErr(err error) error {
	if err == nil {
		return nil
	}
	var queryErr *catalog.QueryError
	if errors.As(err, &queryErr) {
		return &EngineError{Op: "query", Err: err}
	}
	return err
}
