// Package config implements the layered configuration for caskd: a
// parameter registry consumed by a two-phase resolver (config file
// discovery, then full resolution with command-line overrides), followed
// by enum validation that materializes typed engine options.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/caskdb/caskdb/internal/bytesize"
)

// paramValue is the typed destination slot of a parameter.
type paramValue interface {
	// set parses raw and stores it in the destination.
	set(raw string) error
	// get renders the current destination value as a string.
	get() string
}

// Parameter is a single declared configuration parameter.
type Parameter struct {
	Name      string
	Default   string
	Mandatory bool
	Help      string

	value  paramValue
	isFlag bool // presence flag, takes no value on the command line
}

// Registry is an ordered, name-unique collection of parameter
// declarations. Registration order is preserved for usage listings,
// documentation dumps, and missing-parameter reports.
type Registry struct {
	params []*Parameter
	byName map[string]*Parameter
	found  map[string]bool // parameters resolved from file or command line
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Parameter),
		found:  make(map[string]bool),
	}
}

// add registers a parameter. Duplicate names are a programming error.
func (r *Registry) add(p *Parameter) {
	if _, exists := r.byName[p.Name]; exists {
		panic(fmt.Sprintf("config: parameter %q registered twice", p.Name))
	}
	r.params = append(r.params, p)
	r.byName[p.Name] = p
}

// AddString registers a string parameter and applies its default.
func (r *Registry) AddString(name, def string, dest *string, mandatory bool, help string) {
	*dest = def
	r.add(&Parameter{Name: name, Default: def, Mandatory: mandatory, Help: help,
		value: &stringValue{dest}})
}

// AddBool registers a boolean parameter and applies its default.
func (r *Registry) AddBool(name string, def bool, dest *bool, help string) {
	*dest = def
	r.add(&Parameter{Name: name, Default: strconv.FormatBool(def), Help: help,
		value: &boolValue{dest}})
}

// AddFlag registers a presence flag. Flags default to false and take no
// value on the command line.
func (r *Registry) AddFlag(name string, dest *bool, help string) {
	*dest = false
	r.add(&Parameter{Name: name, Default: "false", Help: help,
		value: &boolValue{dest}, isFlag: true})
}

// AddInt registers an integer parameter and applies its default.
func (r *Registry) AddInt(name string, def int, dest *int, help string) {
	*dest = def
	r.add(&Parameter{Name: name, Default: strconv.Itoa(def), Help: help,
		value: &intValue{dest}})
}

// AddSize registers a byte-size parameter ("32MB", "64KB") and applies
// its default. An unparsable default is a programming error.
func (r *Registry) AddSize(name, def string, dest *bytesize.ByteSize, help string) {
	size, err := bytesize.Parse(def)
	if err != nil {
		panic(fmt.Sprintf("config: invalid default %q for parameter %q: %v", def, name, err))
	}
	*dest = size
	r.add(&Parameter{Name: name, Default: def, Help: help,
		value: &sizeValue{dest}})
}

// SetDefault retunes a declared default after registration. The new
// default is applied to the destination immediately; later file or
// command-line values still win.
func (r *Registry) SetDefault(name, def string) {
	p, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("config: cannot retune unknown parameter %q", name))
	}
	if err := p.value.set(def); err != nil {
		panic(fmt.Sprintf("config: invalid default %q for parameter %q: %v", def, name, err))
	}
	p.Default = def
}

// Apply parses raw into the named parameter's destination and marks the
// parameter as resolved. Unknown names report an error so config-file
// typos fail loudly.
func (r *Registry) Apply(name, raw string) error {
	p, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if err := p.value.set(raw); err != nil {
		return fmt.Errorf("parameter %q: %w", name, err)
	}
	r.found[name] = true
	return nil
}

// Has reports whether a parameter name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// BindFlags registers every parameter on fs, bound to its destination.
func (r *Registry) BindFlags(fs *pflag.FlagSet) {
	for _, p := range r.params {
		switch v := p.value.(type) {
		case *stringValue:
			fs.StringVar(v.dest, p.Name, *v.dest, p.Help)
		case *boolValue:
			fs.BoolVar(v.dest, p.Name, *v.dest, p.Help)
		case *intValue:
			fs.IntVar(v.dest, p.Name, *v.dest, p.Help)
		case *sizeValue:
			fs.Var(v, p.Name, p.Help)
		}
	}
}

// MarkChanged records every flag the command line explicitly set.
// Command-line values land directly in the bound destinations during
// fs.Parse, so only the resolution bookkeeping is updated here.
func (r *Registry) MarkChanged(fs *pflag.FlagSet) {
	for _, p := range r.params {
		if fs.Changed(p.Name) {
			r.found[p.Name] = true
		}
	}
}

// MissingMandatory returns the names of all mandatory parameters that no
// source resolved, in registration order.
func (r *Registry) MissingMandatory() []string {
	var missing []string
	for _, p := range r.params {
		if p.Mandatory && !r.found[p.Name] {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

// Parameters returns the declarations in registration order.
func (r *Registry) Parameters() []*Parameter {
	return r.params
}

// typed destinations

type stringValue struct{ dest *string }

func (v *stringValue) set(raw string) error { *v.dest = raw; return nil }
func (v *stringValue) get() string          { return *v.dest }

type boolValue struct{ dest *bool }

func (v *boolValue) set(raw string) error {
	switch strings.ToLower(raw) {
	case "true", "1":
		*v.dest = true
	case "false", "0":
		*v.dest = false
	default:
		return fmt.Errorf("invalid boolean value %q", raw)
	}
	return nil
}
func (v *boolValue) get() string { return strconv.FormatBool(*v.dest) }

type intValue struct{ dest *int }

func (v *intValue) set(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid integer value %q", raw)
	}
	*v.dest = n
	return nil
}
func (v *intValue) get() string { return strconv.Itoa(*v.dest) }

// sizeValue also implements pflag.Value so byte-size parameters can be
// bound with FlagSet.Var.
type sizeValue struct{ dest *bytesize.ByteSize }

func (v *sizeValue) set(raw string) error {
	size, err := bytesize.Parse(raw)
	if err != nil {
		return err
	}
	*v.dest = size
	return nil
}
func (v *sizeValue) get() string { return v.dest.String() }

func (v *sizeValue) Set(raw string) error { return v.set(raw) }
func (v *sizeValue) String() string       { return v.get() }
func (v *sizeValue) Type() string         { return "bytesize" }
