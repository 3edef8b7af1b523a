package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintUsage writes the human-readable parameter listing for --help.
func (r *Registry) PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Parameters:")
	for _, p := range r.params {
		switch {
		case p.isFlag:
			fmt.Fprintf(w, "  --%s\n", p.Name)
		case p.Mandatory:
			fmt.Fprintf(w, "  --%s=<value> (mandatory)\n", p.Name)
		default:
			fmt.Fprintf(w, "  --%s=<value> (default: %s)\n", p.Name, p.Default)
		}
		fmt.Fprintf(w, "      %s\n", p.Help)
	}
	fmt.Fprintln(w, "  --help, -h")
	fmt.Fprintln(w, "      Print this usage listing and exit.")
	fmt.Fprintln(w, "  --generate-doc")
	fmt.Fprintln(w, "      Dump the parameter documentation in YAML and exit.")
}

// paramDoc is one entry of the machine-readable documentation dump.
type paramDoc struct {
	Name        string `yaml:"name"`
	Default     string `yaml:"default,omitempty"`
	Mandatory   bool   `yaml:"mandatory,omitempty"`
	Flag        bool   `yaml:"flag,omitempty"`
	Description string `yaml:"description"`
}

// GenerateDoc writes the parameter registry as a YAML document, in
// registration order.
func (r *Registry) GenerateDoc(w io.Writer) error {
	docs := make([]paramDoc, 0, len(r.params))
	for _, p := range r.params {
		docs = append(docs, paramDoc{
			Name:        p.Name,
			Default:     p.Default,
			Mandatory:   p.Mandatory,
			Flag:        p.isFlag,
			Description: p.Help,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode parameter documentation: %w", err)
	}
	return nil
}
