// Package version exposes build metadata for the create-aptos-dapp binary.
package version

import "fmt"

// Build-time variables injected via -ldflags:
//
//	-X github.com/aptos-labs/create-aptos-dapp/pkg/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// IsDev reports whether this is an unreleased development build.
func IsDev() bool {
	return Version == "dev" || Commit == "none"
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
