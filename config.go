package duckcat

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options contains configuration for opening a DuckDB connection.
type Options struct {
	// ReadOnly opens every location in read-only mode.
	// OPTIONAL: Defaults to false.
	// MUST NOT be combined with an in-memory location.
	ReadOnly bool `yaml:"read_only"`

	// AllowUnsignedExtensions lets the engine load extensions that are not
	// signed by the DuckDB project.
	// OPTIONAL: Defaults to false.
	AllowUnsignedExtensions bool `yaml:"allow_unsigned_extensions"`

	// Extensions are installed and loaded in order after the databases are attached.
	// OPTIONAL: nil or empty means no extensions.
	Extensions []string `yaml:"extensions"`

	// CustomExtensionRepo overrides the repository extensions are installed from
	// (e.g., "welsch.lu/duckdb/prql/latest").
	// OPTIONAL: Empty string uses the engine default.
	CustomExtensionRepo string `yaml:"custom_extension_repo"`

	// ForceInstallExtensions reinstalls extensions even if already present
	// in the local extension cache.
	// OPTIONAL: Defaults to false.
	ForceInstallExtensions bool `yaml:"force_install_extensions"`

	// MotherDuckToken authenticates md: locations.
	// OPTIONAL: If empty, the engine falls back to the motherduck_token
	// environment variable.
	MotherDuckToken string `yaml:"md_token"`

	// MotherDuckSaaS enables MotherDuck SaaS mode, which disables local
	// file access for md: locations.
	// OPTIONAL: Defaults to false.
	MotherDuckSaaS bool `yaml:"md_saas"`

	// Logger for connection events.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger `yaml:"-"`

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, the default logger is used as is.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level `yaml:"-"`
}

// Standard errors returned by the duckcat package.
var (
	// ErrReadOnlyInMemory indicates read-only mode was requested together with
	// an in-memory database, which cannot exist before the connection does.
	ErrReadOnlyInMemory = errors.New("cannot open an in-memory database in read-only mode")

	// ErrDuplicateAlias indicates two locations resolve to the same database name.
	ErrDuplicateAlias = errors.New("duplicate database name")

	// ErrInvalidOptions indicates Options validation failed.
	ErrInvalidOptions = errors.New("invalid connection options")

	// ErrEmptyLocation indicates an empty string was passed as a location.
	ErrEmptyLocation = errors.New("location cannot be empty")
)

// LoadOptions reads Options from a YAML file.
//
// Example file:
//
//	read_only: true
//	extensions:
//	  - spatial
//	  - httpfs
//	custom_extension_repo: welsch.lu/duckdb/prql/latest
func LoadOptions(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, &ExitError{
			Msg: fmt.Sprintf("config file %s is not valid YAML", path),
			Err: fmt.Errorf("%w: %v", ErrInvalidOptions, err),
		}
	}
	return opts, nil
}

// validateOptions checks option combinations that are knowable before
// touching the engine.
func validateOptions(locs []Location, opts Options) error {
	if opts.ReadOnly {
		if len(locs) == 0 {
			return &ExitError{
				Msg: "cannot open the default in-memory database in read-only mode: pass at least one database file",
				Err: ErrReadOnlyInMemory,
			}
		}
		for _, loc := range locs {
			if loc.Kind == KindMemory {
				return &ExitError{
					Msg: fmt.Sprintf("cannot open %s in read-only mode: in-memory databases do not exist before the connection", loc.Raw),
					Err: ErrReadOnlyInMemory,
				}
			}
		}
	}

	// Database names are case-insensitive in DuckDB.
	seen := make(map[string]string, len(locs))
	for _, loc := range locs {
		if loc.Alias == "" {
			continue
		}
		key := strings.ToLower(loc.Alias)
		if prev, ok := seen[key]; ok {
			return &ExitError{
				Msg: fmt.Sprintf("%s and %s would both be attached as %q", prev, loc.Raw, loc.Alias),
				Err: ErrDuplicateAlias,
			}
		}
		seen[key] = loc.Raw
	}

	for i, ext := range opts.Extensions {
		if strings.TrimSpace(ext) == "" {
			return &ExitError{
				Msg: fmt.Sprintf("extension #%d has an empty name", i+1),
				Err: ErrInvalidOptions,
			}
		}
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *o.LogLevel}))
	}
	return slog.Default()
}
