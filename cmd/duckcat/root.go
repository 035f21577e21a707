package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/duckcat"
	"github.com/hugr-lab/duckcat/catalog"
	"github.com/hugr-lab/duckcat/internal/serialize"
)

type app struct {
	out    io.Writer
	flags  optionFlags
	root   *cobra.Command
	level  *slog.LevelVar
	logger *slog.Logger
}

func newApp(out io.Writer) *app {
	a := &app{out: out, level: new(slog.LevelVar)}
	a.level.Set(slog.LevelWarn)
	a.logger = newLogger(a.level)

	a.root = &cobra.Command{
		Use:           "duckcat",
		Short:         "Browse the catalog of DuckDB and MotherDuck databases.",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.flags.verbose {
				a.level.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}
	a.flags.register(a.root.PersistentFlags())

	a.root.AddCommand(
		a.databasesCmd(),
		a.schemasCmd(),
		a.tablesCmd(),
		a.columnsCmd(),
		a.treeCmd(),
		a.exportCmd(),
	)
	return a
}

// withConn opens the configured databases, runs fn, and closes the connection.
func (a *app) withConn(ctx context.Context, fn func(ctx context.Context, conn *duckcat.Conn) error) error {
	opts, err := a.flags.resolve(a.root.PersistentFlags(), a.logger)
	if err != nil {
		return err
	}
	conn, err := duckcat.Open(ctx, a.flags.databases, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			opts.Logger.Error("failed to close connection", "error", err)
		}
	}()
	return fn(ctx, conn)
}

func (a *app) databasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List attached databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				names, err := conn.ListDatabases(ctx)
				if err != nil {
					return err
				}
				printNames(a.out, "Database", names)
				return nil
			})
		},
	}
}

func (a *app) schemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas <database>",
		Short: "List schemas of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				names, err := conn.ListSchemas(ctx, args[0])
				if err != nil {
					return err
				}
				printNames(a.out, "Schema", names)
				return nil
			})
		},
	}
}

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <database> <schema>",
		Short: "List tables and views of a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				tables, err := conn.ListTables(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printTables(a.out, tables)
				return nil
			})
		},
	}
}

func (a *app) columnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <database> <schema> <table>",
		Short: "List columns of a table",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				cols, err := conn.ListColumns(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				printColumns(a.out, cols)
				return nil
			})
		},
	}
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the full catalog as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				tree, err := conn.Catalog(ctx)
				if err != nil {
					return err
				}
				printTree(a.out, tree)
				return nil
			})
		},
	}
}

const (
	formatArrow   = "arrow"
	formatMsgpack = "msgpack"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		format   string
		table    string
		compress bool
		output   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as Arrow IPC or MessagePack",
		Long: "Write the catalog as Arrow IPC or MessagePack.\n\n" +
			"With --table db.schema.table, write only that table's Arrow schema.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatArrow && format != formatMsgpack {
				return &duckcat.ExitError{
					Msg: fmt.Sprintf("unknown export format %q (want %s or %s)", format, formatArrow, formatMsgpack),
					Err: duckcat.ErrInvalidOptions,
				}
			}
			var ref tableRef
			if table != "" {
				var err error
				if ref, err = parseTableRef(table); err != nil {
					return err
				}
				if format != formatArrow {
					return &duckcat.ExitError{
						Msg: "--table exports an Arrow schema and cannot be combined with --format " + format,
						Err: duckcat.ErrInvalidOptions,
					}
				}
			}

			return a.withConn(cmd.Context(), func(ctx context.Context, conn *duckcat.Conn) error {
				tree, err := conn.Catalog(ctx)
				if err != nil {
					return err
				}

				var data []byte
				switch {
				case table != "":
					t, err := ref.lookup(tree)
					if err != nil {
						return err
					}
					data, err = serialize.SerializeTableSchema(t, nil)
					if err != nil {
						return err
					}
				case format == formatArrow:
					data, err = serialize.SerializeCatalog(tree, nil)
				case format == formatMsgpack:
					data, err = serialize.EncodeCatalog(tree)
				}
				if err != nil {
					return err
				}
				if compress {
					if data, err = serialize.CompressCatalog(data); err != nil {
						return err
					}
				}

				if output == "" || output == "-" {
					_, err = a.out.Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatArrow, "export format: arrow or msgpack")
	cmd.Flags().StringVarP(&table, "table", "t", "", "export only the Arrow schema of db.schema.table")
	cmd.Flags().BoolVarP(&compress, "compress", "z", false, "compress the output with zstd")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// tableRef names a table as database.schema.table.
type tableRef struct {
	database, schema, table string
}

func parseTableRef(s string) (tableRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return tableRef{}, &duckcat.ExitError{
			Msg: fmt.Sprintf("invalid table %q (want database.schema.table)", s),
			Err: duckcat.ErrInvalidOptions,
		}
	}
	return tableRef{database: parts[0], schema: parts[1], table: parts[2]}, nil
}

func (r tableRef) lookup(tree catalog.Tree) (catalog.Table, error) {
	notFound := func(what string) error {
		return &duckcat.ExitError{
			Msg: fmt.Sprintf("%s not found in %s.%s.%s", what, r.database, r.schema, r.table),
			Err: duckcat.ErrInvalidOptions,
		}
	}
	db, ok := tree.Database(r.database)
	if !ok {
		return catalog.Table{}, notFound("database " + r.database)
	}
	schema, ok := db.Schema(r.schema)
	if !ok {
		return catalog.Table{}, notFound("schema " + r.schema)
	}
	table, ok := schema.Table(r.table)
	if !ok {
		return catalog.Table{}, notFound("table " + r.table)
	}
	return table, nil
}
