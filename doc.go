// Package duckcat opens DuckDB sessions over one or more data sources and
// reads the catalog visible through them.
//
// The duckcat package:
//   - Attaches on-disk files, in-memory databases, and MotherDuck (md:) databases
//     to a single session, optionally read-only
//   - Installs and loads extensions, optionally from a custom repository
//   - Rejects conflicting options (read-only + :memory:) before the engine is touched
//   - Lists databases, schemas, tables, and columns, and assembles them into a tree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/hugr-lab/duckcat"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    conn, err := duckcat.Open(ctx, []string{"small.db", "tiny.db"}, duckcat.Options{
//	        ReadOnly: true,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer conn.Close()
//
//	    tree, err := conn.Catalog(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, db := range tree {
//	        fmt.Println(db.Name, len(db.Schemas))
//	    }
//	}
//
// # Locations
//
// A location is one of:
//   - ":memory:" for an in-memory database
//   - "md:" or "md:<database>" (also "motherduck:") for MotherDuck
//   - any other string, treated as a database file path
//
// With no locations the session uses a single unnamed in-memory database,
// which cannot be opened read-only.
// Otherwise the first location is the primary database and the rest are
// attached in order, each named after its file stem ("data/small.db" → "small").
//
// # Errors
//
// Open returns two kinds of errors:
//   - *ExitError: the request is invalid and the engine was never contacted.
//     Print its Msg and exit.
//   - *EngineError: DuckDB rejected a step (open, attach, install, load, ...).
//
// Catalog reads never treat missing objects as errors: an unknown database,
// schema, or table yields an empty slice.
//
// # Logging
//
// Options.Logger receives connection events; slog.Default() is used when nil.
// MotherDuck tokens are redacted before anything is logged.
//
// # Concurrency
//
// A Conn pins a single engine connection and is meant for one owner at a
// time. Calls block until DuckDB (or the network, for md: locations) responds;
// nothing is cached or retried.
package duckcat
