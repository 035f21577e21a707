package duckcat

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hugr-lab/duckcat/catalog"
)

func TestEngineErrorRedactsTokens(t *testing.T) {
	driverErr := errors.New(`Binder Error: failed to attach 'md:sales?motherduck_token=s3cr3t&saas_mode=true': unauthorized`)
	err := &EngineError{Op: "attach", Err: fmt.Errorf("failed to attach md:sales: %w", driverErr)}

	msg := err.Error()
	if strings.Contains(msg, "s3cr3t") {
		t.Fatalf("Error() leaked the token: %s", msg)
	}
	if !strings.Contains(msg, "motherduck_token=REDACTED&saas_mode=true") {
		t.Errorf("Error() = %s, want redacted token with other params kept", msg)
	}
	if !strings.HasPrefix(msg, "attach: ") {
		t.Errorf("Error() = %s, want attach prefix", msg)
	}
	if !errors.Is(err, driverErr) {
		t.Error("EngineError no longer wraps the driver error")
	}
}

func TestRedactText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "no secrets here", want: "no secrets here"},
		{in: "open md:?MOTHERDUCK_TOKEN=abc", want: "open md:?MOTHERDUCK_TOKEN=REDACTED"},
		{in: "'md:x?motherduck_token=abc' failed", want: "'md:x?motherduck_token=REDACTED' failed"},
	}
	for _, tt := range tests {
		if got := redactText(tt.in); got != tt.want {
			t.Errorf("redactText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	exitErr := &ExitError{Msg: "bad input", Err: ErrInvalidOptions}
	if !IsExitError(fmt.Errorf("wrapped: %w", exitErr)) || IsEngineError(exitErr) {
		t.Error("ExitError misclassified")
	}
	if (&ExitError{Err: ErrEmptyLocation}).Error() != ErrEmptyLocation.Error() {
		t.Error("ExitError without Msg should use the wrapped error text")
	}

	queryErr := &catalog.QueryError{Object: "tables", Err: errors.New("closed")}
	if !IsEngineError(queryErr) || IsExitError(queryErr) {
		t.Error("QueryError misclassified")
	}
}
