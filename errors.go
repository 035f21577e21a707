package duckcat

import (
	"errors"

	"github.com/hugr-lab/duckcat/catalog"
)

// ExitError is a user-facing failure detected before the engine was contacted.
// Callers should print Msg and exit instead of reporting engine internals.
type ExitError struct {
	Msg string
	Err error
}

func (e *ExitError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// EngineError wraps a failure returned by DuckDB. Op names the step that
// failed (open, attach, configure, install, load, query).
type EngineError struct {
	Op  string
	Err error
}

// Error never includes MotherDuck tokens, even when the driver error
// repeats the connection string.
func (e *EngineError) Error() string {
	return e.Op + ": " + redactText(e.Err.Error())
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsExitError reports whether err is a user-facing validation failure.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// IsEngineError reports whether err came from the engine, either while
// opening the connection or while reading the catalog.
func IsEngineError(err error) bool {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return true
	}
	var queryErr *catalog.QueryError
	return errors.As(err, &queryErr)
}
