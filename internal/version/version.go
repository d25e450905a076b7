// Package version holds build metadata stamped in via -ldflags.
package version

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/axlocate/axlocate/internal/version.Version=v1.2.3".
var Version = "dev"

// Commit is the short git commit hash of the build.
var Commit = "unknown"

// BuildDate is the UTC timestamp of the build.
var BuildDate = "unknown"
