package config

import (
	"fmt"
	"strings"
)

// MissingParamsError reports every mandatory parameter left unresolved
// after full resolution, not just the first.
type MissingParamsError struct {
	Names []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("missing mandatory parameters: %s", strings.Join(e.Names, ", "))
}

// ValidationError reports an enumerated option that resolved to a value
// outside its closed set.
type ValidationError struct {
	Param string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %q", e.Value, e.Param)
}
