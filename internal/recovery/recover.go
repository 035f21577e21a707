// Package recovery turns panics in command handlers into errors so the CLI
// can log them and exit with a failure code instead of crashing.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// PanicError is returned by RecoverToError when fn panicked.
type PanicError struct {
	Operation string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Operation, e.Value)
}

// RecoverToError calls fn and converts a panic into a *PanicError.
// The panic value and stack are logged at error level.
//
// Example:
//
//	err := recovery.RecoverToError(logger, "duckcat", root.Execute)
func RecoverToError(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = &PanicError{Operation: operation, Value: r}
		}
	}()

	return fn()
}
