// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Squiggle is the canonical application identifier used for filesystem paths and CLI branding.
	Squiggle = "squiggle"

	// Version is the current application semantic version string.
	Version = "0.3.0"
)

// Build metadata, overridden at link time through -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
