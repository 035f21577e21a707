package duckcat

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/duckdb/duckdb-go/v2"
)

// Open validates locations and options and opens a DuckDB session spanning
// every location.
//
// The function:
//  1. Parses every location and rejects conflicting options with an *ExitError
//  2. Opens the first location as the primary database (an unnamed in-memory
//     database when no location is given)
//  3. Attaches the remaining locations in order
//  4. Installs and loads Options.Extensions in order
//
// Engine failures are returned as *EngineError and leave nothing open.
// The caller owns the returned Conn and MUST Close it.
//
// Example:
//
//	conn, err := duckcat.Open(ctx, []string{"small.db", "tiny.db"}, duckcat.Options{
//	    ReadOnly:   true,
//	    Extensions: []string{"spatial"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
func Open(ctx context.Context, locations []string, opts Options) (*Conn, error) {
	logger := opts.logger()

	locs, err := ParseLocations(locations)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(locs, opts); err != nil {
		return nil, err
	}

	var attached []Location
	primary := Location{Raw: MemoryMarker, Kind: KindMemory, Path: MemoryMarker, Alias: defaultMemoryAlias}
	if len(locs) > 0 {
		primary, attached = locs[0], locs[1:]
	}

	dsn := primaryDSN(primary, opts)
	logger.Debug("opening duckdb", "dsn", redact(dsn), "read_only", opts.ReadOnly)

	connector, err := duckdb.NewConnector(dsn, nil)
	if err != nil {
		return nil, &EngineError{Op: "open", Err: fmt.Errorf("failed to open %s: %w", redact(primary.Raw), err)}
	}
	db := sql.OpenDB(connector)

	// One connection carries the whole session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	conn := &Conn{
		db:     db,
		locs:   locs,
		opts:   opts,
		logger: logger,
	}

	if err := conn.attach(ctx, attached); err != nil {
		conn.closeAfterFailure()
		return nil, err
	}
	if err := conn.loadExtensions(ctx); err != nil {
		conn.closeAfterFailure()
		return nil, err
	}

	logger.Info("duckdb connection opened",
		"databases", len(locs),
		"read_only", opts.ReadOnly,
		"extensions", len(opts.Extensions),
	)
	return conn, nil
}

// primaryDSN builds the connector DSN. Engine settings travel as query
// parameters, which duckdb-go applies as database config.
func primaryDSN(loc Location, opts Options) string {
	params := url.Values{}
	if opts.ReadOnly {
		params.Set("access_mode", "read_only")
	}
	if opts.AllowUnsignedExtensions {
		params.Set("allow_unsigned_extensions", "true")
	}

	path := loc.Path
	switch loc.Kind {
	case KindMemory:
		path = ""
	case KindCloud:
		for k, v := range cloudParams(opts) {
			params[k] = v
		}
	}
	return withParams(path, params)
}

func (c *Conn) attach(ctx context.Context, locs []Location) error {
	for _, loc := range locs {
		stmt := attachStatement(loc, c.opts)
		c.logger.Debug("attaching database", "location", redact(loc.Raw), "alias", loc.Alias, "kind", loc.Kind)
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return &EngineError{Op: "attach", Err: fmt.Errorf("failed to attach %s: %w", redact(loc.Raw), err)}
		}
	}
	return nil
}

func attachStatement(loc Location, opts Options) string {
	var b strings.Builder
	b.WriteString("ATTACH ")
	switch loc.Kind {
	case KindCloud:
		b.WriteString(quoteString(withParams(loc.Path, cloudParams(opts))))
	default:
		b.WriteString(quoteString(loc.Path))
		b.WriteString(" AS ")
		b.WriteString(quoteIdent(loc.Alias))
	}
	if opts.ReadOnly {
		b.WriteString(" (READ_ONLY)")
	}
	return b.String()
}

func (c *Conn) loadExtensions(ctx context.Context) error {
	if c.opts.CustomExtensionRepo != "" {
		stmt := "SET custom_extension_repository = " + quoteString(c.opts.CustomExtensionRepo)
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return &EngineError{Op: "configure", Err: fmt.Errorf("failed to set custom extension repository: %w", err)}
		}
	}

	for _, ext := range c.opts.Extensions {
		ext = strings.TrimSpace(ext)
		install := "INSTALL " + quoteString(ext)
		if c.opts.ForceInstallExtensions {
			install = "FORCE " + install
		}
		c.logger.Debug("installing extension", "extension", ext, "force", c.opts.ForceInstallExtensions)
		if _, err := c.db.ExecContext(ctx, install); err != nil {
			return &EngineError{Op: "install", Err: fmt.Errorf("failed to install extension %s: %w", ext, err)}
		}
		if _, err := c.db.ExecContext(ctx, "LOAD "+quoteString(ext)); err != nil {
			return &EngineError{Op: "load", Err: fmt.Errorf("failed to load extension %s: %w", ext, err)}
		}
	}
	return nil
}

func (c *Conn) closeAfterFailure() {
	if err := c.db.Close(); err != nil {
		c.logger.Warn("failed to close duckdb after open failure", slog.Any("error", err))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
