package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default config file locations probed when --configfile is absent.
const (
	DefaultConfigFile = "caskdb.conf"
	SystemConfigFile  = "/etc/caskdb/caskdb.conf"
)

// Action tells the caller what the command line asked for.
type Action int

const (
	// ActionRun proceeds with normal startup.
	ActionRun Action = iota
	// ActionHelp prints the version banner and parameter usage, then exits.
	ActionHelp
	// ActionGenerateDoc dumps the parameter registry documentation, then
	// exits.
	ActionGenerateDoc
)

// DiscoverConfigFile is phase one of resolution: a tolerant scan of args
// for --configfile alone, plus detection of the informational
// short-circuits. Unknown flags are ignored since the full schema is not
// registered yet.
//
// An explicit --configfile must name an existing file. Without one, the
// current-directory default and then the system-wide default are probed;
// the first that exists wins, and none existing is not an error.
func DiscoverConfigFile(args []string) (string, Action, error) {
	fs := pflag.NewFlagSet("discovery", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}

	configFile := fs.String(ParamConfigFile, "", "")
	help := fs.BoolP("help", "h", false, "")
	generateDoc := fs.Bool("generate-doc", false, "")

	if err := fs.Parse(args); err != nil {
		return "", ActionRun, fmt.Errorf("failed to parse command line: %w", err)
	}

	switch {
	case *help:
		return "", ActionHelp, nil
	case *generateDoc:
		return "", ActionGenerateDoc, nil
	}

	if *configFile != "" {
		if _, err := os.Stat(*configFile); err != nil {
			return "", ActionRun, fmt.Errorf("configuration file not found: %s", *configFile)
		}
		return *configFile, ActionRun, nil
	}

	for _, candidate := range []string{DefaultConfigFile, SystemConfigFile} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, ActionRun, nil
		}
	}
	return "", ActionRun, nil
}

// Resolve performs the full two-phase resolution: config file discovery,
// file parse, command-line parse on top (command-line values override
// file values for the same parameter name), and the mandatory-parameter
// check reporting every missing name at once.
//
// args is the command line without the program name, as in os.Args[1:].
func Resolve(args []string) (*Options, Action, error) {
	opts := NewOptions()

	configFile, action, err := DiscoverConfigFile(args)
	if err != nil {
		return nil, ActionRun, err
	}
	if action != ActionRun {
		return opts, action, nil
	}

	if configFile != "" {
		if err := applyFile(opts.registry, configFile); err != nil {
			return nil, ActionRun, err
		}
		opts.General.ConfigFile = configFile
		opts.registry.found[ParamConfigFile] = true
	}

	fs := pflag.NewFlagSet("caskd", pflag.ContinueOnError)
	fs.Usage = func() {}
	opts.registry.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, ActionRun, fmt.Errorf("failed to parse command line: %w", err)
	}
	opts.registry.MarkChanged(fs)

	if missing := opts.registry.MissingMandatory(); len(missing) > 0 {
		return nil, ActionRun, &MissingParamsError{Names: missing}
	}

	return opts, ActionRun, nil
}

// applyFile reads a config file and applies every assignment through the
// registry. Keys may be written flat ("db.path: /var/lib/caskdb") or
// nested; viper flattens both to the dotted parameter names the registry
// knows. Unrecognized keys are an error so typos do not silently
// disappear.
func applyFile(r *Registry, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := filepath.Ext(path); ext == ".conf" || ext == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		if !r.Has(key) {
			return fmt.Errorf("unknown parameter %q in config file %s", key, path)
		}
		if err := r.Apply(key, v.GetString(key)); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return nil
}
