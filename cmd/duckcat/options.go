package main

import (
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/hugr-lab/duckcat"
)

// optionFlags holds the raw flag values; resolve merges them over the
// config file so only flags the user actually set win.
type optionFlags struct {
	databases  []string
	configPath string
	verbose    bool
	opts       duckcat.Options
}

func (f *optionFlags) register(fs *flag.FlagSet) {
	fs.StringArrayVar(&f.databases, "db", nil, "database location to attach: a file path, :memory:, or md:<name> (repeatable)")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML file with connection options")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	fs.BoolVar(&f.opts.ReadOnly, "read-only", false, "open every database in read-only mode")
	fs.BoolVarP(&f.opts.AllowUnsignedExtensions, "allow-unsigned-extensions", "u", false, "allow loading unsigned extensions")
	fs.StringSliceVarP(&f.opts.Extensions, "extension", "e", nil, "extension to install and load (repeatable)")
	fs.StringVar(&f.opts.CustomExtensionRepo, "custom-extension-repo", "", "repository to install extensions from")
	fs.BoolVar(&f.opts.ForceInstallExtensions, "force-install-extensions", false, "reinstall extensions even if already installed")
	fs.StringVar(&f.opts.MotherDuckToken, "md-token", "", "MotherDuck token (or set MOTHERDUCK_TOKEN env var)")
	fs.BoolVar(&f.opts.MotherDuckSaaS, "md-saas", false, "run MotherDuck in SaaS mode")
}

func (f *optionFlags) resolve(fs *flag.FlagSet, logger *slog.Logger) (duckcat.Options, error) {
	var opts duckcat.Options
	if f.configPath != "" {
		loaded, err := duckcat.LoadOptions(f.configPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if fs.Changed("read-only") {
		opts.ReadOnly = f.opts.ReadOnly
	}
	if fs.Changed("allow-unsigned-extensions") {
		opts.AllowUnsignedExtensions = f.opts.AllowUnsignedExtensions
	}
	if fs.Changed("extension") {
		opts.Extensions = f.opts.Extensions
	}
	if fs.Changed("custom-extension-repo") {
		opts.CustomExtensionRepo = f.opts.CustomExtensionRepo
	}
	if fs.Changed("force-install-extensions") {
		opts.ForceInstallExtensions = f.opts.ForceInstallExtensions
	}
	if fs.Changed("md-token") {
		opts.MotherDuckToken = f.opts.MotherDuckToken
	}
	if fs.Changed("md-saas") {
		opts.MotherDuckSaaS = f.opts.MotherDuckSaaS
	}

	if opts.MotherDuckToken == "" {
		opts.MotherDuckToken = os.Getenv("MOTHERDUCK_TOKEN")
	}
	opts.Logger = logger
	return opts, nil
}
