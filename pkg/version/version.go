// Package version carries build metadata for the flatscan binary. The
// variables are stamped with -ldflags at release time and keep their
// placeholders in development builds.
package version

// Build metadata, overridden via -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)
