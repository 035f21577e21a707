// Command duckcat opens DuckDB databases and prints their catalog.
//
// Usage:
//
//	duckcat --db small.db --db tiny.db --read-only tree
//	duckcat --db md:cloudf1 --md-saas databases
//	duckcat --db small.db columns small main drivers
//	duckcat --db small.db export --format arrow --compress -o catalog.arrow.zst
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/hugr-lab/duckcat"
	"github.com/hugr-lab/duckcat/internal/recovery"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
)

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
	exitCodeUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: failed to load .env: %v\n", err)
		return exitCodeError
	}

	a := newApp(os.Stdout)
	a.root.SetArgs(args)
	if err := recovery.RecoverToError(a.logger, "duckcat", a.root.Execute); err != nil {
		var exitErr *duckcat.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Msg)
			return exitCodeUsage
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeError
	}
	return exitCodeSuccess
}

// newLogger writes colored logs to stderr. The level is read on every
// record, so --verbose takes effect after flags are parsed.
func newLogger(level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
