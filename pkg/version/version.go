// Package version carries the three version triples that identify a caskd
// build: the server itself, the storage engine, and the on-disk data format.
// The data-format version only changes when persisted data stops being
// readable by older engines.
package version

import "fmt"

const (
	ServerMajor = 0
	ServerMinor = 9
	ServerPatch = 0

	EngineMajor = 0
	EngineMinor = 9
	EnginePatch = 0

	FormatMajor = 1
	FormatMinor = 0
	FormatPatch = 0
)

// Server returns the server version as "major.minor.patch".
func Server() string {
	return fmt.Sprintf("%d.%d.%d", ServerMajor, ServerMinor, ServerPatch)
}

// Engine returns the storage engine version as "major.minor.patch".
func Engine() string {
	return fmt.Sprintf("%d.%d.%d", EngineMajor, EngineMinor, EnginePatch)
}

// DataFormat returns the on-disk data format version as "major.minor.patch".
func DataFormat() string {
	return fmt.Sprintf("%d.%d.%d", FormatMajor, FormatMinor, FormatPatch)
}

// Banner returns the version banner printed by --help.
func Banner() string {
	return fmt.Sprintf("caskd %s (engine %s, data format %s)", Server(), Engine(), DataFormat())
}
