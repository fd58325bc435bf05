// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Presenter is the canonical application identifier used for filesystem paths and CLI branding.
	Presenter = "presenter"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// Repository is the GitHub owner/name the releases are published under.
	Repository = "video-presenter/presenter"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
