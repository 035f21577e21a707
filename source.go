package duckcat

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies a source location.
type Kind int

const (
	// KindFile is a database file on the local filesystem.
	KindFile Kind = iota
	// KindMemory is an in-memory database (":memory:").
	KindMemory
	// KindCloud is a MotherDuck database ("md:" or "motherduck:" prefix).
	KindCloud
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindMemory:
		return "memory"
	case KindCloud:
		return "cloud"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	// MemoryMarker is the location that selects an in-memory database.
	MemoryMarker = ":memory:"

	// defaultMemoryAlias is the name the engine gives an unnamed in-memory database.
	defaultMemoryAlias = "memory"
)

var cloudPrefixes = []string{"md:", "motherduck:"}

// Location is a parsed data source reference.
type Location struct {
	// Raw is the location exactly as supplied by the caller.
	Raw string
	// Kind classifies the location.
	Kind Kind
	// Path is the string handed to the engine, without query parameters.
	Path string
	// Alias is the database name the location is attached as.
	// Empty for a bare cloud location, which attaches every database of the account.
	Alias string
}

// ParseLocation classifies a location string and derives its database name.
func ParseLocation(raw string) (Location, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Location{}, &ExitError{Msg: "a database location cannot be empty", Err: ErrEmptyLocation}
	}

	if strings.HasPrefix(s, MemoryMarker) {
		return Location{Raw: raw, Kind: KindMemory, Path: MemoryMarker, Alias: defaultMemoryAlias}, nil
	}

	for _, prefix := range cloudPrefixes {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok {
			continue
		}
		// md:db?motherduck_token=... keeps its own parameters out of the alias.
		name, _, _ := strings.Cut(rest, "?")
		return Location{Raw: raw, Kind: KindCloud, Path: s, Alias: name}, nil
	}

	return Location{Raw: raw, Kind: KindFile, Path: s, Alias: fileStem(s)}, nil
}

// ParseLocations parses every location, preserving order.
func ParseLocations(raw []string) ([]Location, error) {
	locs := make([]Location, 0, len(raw))
	for _, r := range raw {
		loc, err := ParseLocation(r)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// cloudParams returns the query parameters the engine needs for md: locations.
func cloudParams(opts Options) url.Values {
	params := url.Values{}
	if opts.MotherDuckToken != "" {
		params.Set("motherduck_token", opts.MotherDuckToken)
	}
	if opts.MotherDuckSaaS {
		params.Set("saas_mode", "true")
	}
	return params
}

// withParams appends params to a location path that may already carry some.
func withParams(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// redact hides secrets in a DSN or location before it is logged.
func redact(s string) string {
	base, query, ok := strings.Cut(s, "?")
	if !ok {
		return s
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return base + "?[REDACTED]"
	}
	for key := range params {
		if strings.Contains(strings.ToLower(key), "token") {
			params.Set(key, "REDACTED")
		}
	}
	return base + "?" + params.Encode()
}

// tokenParam matches a token query parameter embedded in free text, such as
// a driver error that echoes the statement it failed on.
var tokenParam = regexp.MustCompile(`(?i)([a-z_]*token=)[^&\s'"]*`)

// redactText hides token parameters anywhere in s.
func redactText(s string) string {
	return tokenParam.ReplaceAllString(s, "${1}REDACTED")
}
