// Package version exposes the snowswarm release version.
package version

// version is overridden at build time via
// -ldflags "-X github.com/snowswarm/snowswarm/internal/version.version=...".
var version = "0.3.0-dev"

// Get returns the current version.
func Get() string {
	return version
}
