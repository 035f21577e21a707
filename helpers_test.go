package duckcat_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
)

// createDatabase creates a DuckDB file named name in dir, runs stmts against
// it, and closes it so the file can be reopened by the code under test.
func createDatabase(t *testing.T, dir, name string, stmts ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	db, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatalf("Failed to open fixture %s: %v", name, err)
	}
	defer db.Close()

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to run fixture statement %q: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close fixture %s: %v", name, err)
	}
	return path
}

// fixtures holds the paths of the test databases.
type fixtures struct {
	dir   string
	small string
	tiny  string
}

// newFixtures creates small.db (schemas main and empty, table main.drivers)
// and tiny.db (table main.foo) in a temporary directory.
func newFixtures(t *testing.T) fixtures {
	t.Helper()

	dir := t.TempDir()
	return fixtures{
		dir: dir,
		small: createDatabase(t, dir, "small.db",
			`CREATE SCHEMA empty`,
			`CREATE TABLE main.drivers (
				driverId BIGINT,
				driverRef VARCHAR,
				"number" VARCHAR,
				code VARCHAR,
				forename VARCHAR,
				surname VARCHAR,
				dob DATE,
				nationality VARCHAR,
				url VARCHAR
			)`,
			`INSERT INTO main.drivers VALUES
				(1, 'hamilton', '44', 'HAM', 'Lewis', 'Hamilton', DATE '1985-01-07', 'British', 'http://en.wikipedia.org/wiki/Lewis_Hamilton')`,
		),
		tiny: createDatabase(t, dir, "tiny.db",
			`CREATE TABLE main.foo (foo_col INTEGER)`,
			`INSERT INTO main.foo VALUES (1)`,
		),
	}
}

// skipUnlessOnline skips tests that download extensions unless enabled.
func skipUnlessOnline(t *testing.T) {
	t.Helper()
	if os.Getenv("DUCKCAT_ONLINE_TESTS") == "" {
		t.Skip("set DUCKCAT_ONLINE_TESTS=1 to run tests that need network access")
	}
}
