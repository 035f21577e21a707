package duckcat

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, raw ...string) []Location {
	t.Helper()
	locs, err := ParseLocations(raw)
	if err != nil {
		t.Fatalf("ParseLocations failed: %v", err)
	}
	return locs
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		locs    []string
		opts    Options
		wantErr error
	}{
		{name: "no locations", opts: Options{}},
		{name: "read only default memory", opts: Options{ReadOnly: true}, wantErr: ErrReadOnlyInMemory},
		{name: "memory writable", locs: []string{":memory:"}},
		{name: "read only files", locs: []string{"a.db", "b.db"}, opts: Options{ReadOnly: true}},
		{name: "read only cloud", locs: []string{"md:"}, opts: Options{ReadOnly: true}},
		{name: "read only memory", locs: []string{":memory:"}, opts: Options{ReadOnly: true}, wantErr: ErrReadOnlyInMemory},
		{name: "read only memory among files", locs: []string{"a.db", ":memory:", "b.db"}, opts: Options{ReadOnly: true}, wantErr: ErrReadOnlyInMemory},
		{name: "duplicate stems", locs: []string{"x/a.db", "y/a.db"}, wantErr: ErrDuplicateAlias},
		{name: "duplicate stems differing in case", locs: []string{"x/Small.db", "y/small.db"}, wantErr: ErrDuplicateAlias},
		{name: "memory and Memory file", locs: []string{":memory:", "data/MEMORY.db"}, wantErr: ErrDuplicateAlias},
		{name: "two memories", locs: []string{":memory:", ":memory:"}, wantErr: ErrDuplicateAlias},
		{name: "bare cloud twice", locs: []string{"md:", "md:"}},
		{name: "empty extension", opts: Options{Extensions: []string{"spatial", " "}}, wantErr: ErrInvalidOptions},
		{name: "extensions", opts: Options{Extensions: []string{"spatial", "httpfs"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(mustParse(t, tt.locs...), tt.opts)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("validateOptions() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("validateOptions() error = %v, want %v", err, tt.wantErr)
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("validateOptions() error %T is not an *ExitError", err)
			}
			if exitErr.Msg == "" {
				t.Fatal("ExitError has no message")
			}
		})
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duckcat.yaml")
	content := `read_only: true
allow_unsigned_extensions: true
extensions:
  - spatial
  - prql
custom_extension_repo: welsch.lu/duckdb/prql/latest
force_install_extensions: true
md_token: abc
md_saas: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	want := Options{
		ReadOnly:                true,
		AllowUnsignedExtensions: true,
		Extensions:              []string{"spatial", "prql"},
		CustomExtensionRepo:     "welsch.lu/duckdb/prql/latest",
		ForceInstallExtensions:  true,
		MotherDuckToken:         "abc",
		MotherDuckSaaS:          true,
	}
	if diff := cmp.Diff(want, opts, cmpopts.IgnoreFields(Options{}, "Logger", "LogLevel")); diff != "" {
		t.Errorf("LoadOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOptions(filepath.Join(dir, "missing.yaml")); err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadOptions(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("extensions: [unterminated"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := LoadOptions(bad)
	if !errors.Is(err, ErrInvalidOptions) || !IsExitError(err) {
		t.Errorf("LoadOptions(bad) error = %v, want ExitError wrapping ErrInvalidOptions", err)
	}
}

func TestOptionsLogger(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if got := (Options{Logger: custom}).logger(); got != custom {
		t.Error("logger() should return the configured Logger")
	}
	if got := (Options{}).logger(); got != slog.Default() {
		t.Error("logger() should fall back to slog.Default()")
	}
	level := slog.LevelDebug
	if got := (Options{LogLevel: &level}).logger(); got == slog.Default() || got == nil {
		t.Error("logger() should build a new logger when LogLevel is set")
	}
}
