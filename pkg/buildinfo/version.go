// Package buildinfo carries version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/alnglyph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/alnglyph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/alnglyph
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a one-line summary, as printed by --version.
func String() string {
	return fmt.Sprintf("alnglyph %s (%s, built %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return String() + "\n"
}

// CacheScope returns the cache key prefix for this build. Development builds
// are scoped by commit so layouts from stale binaries are not reused.
func CacheScope() string {
	if Version == "dev" {
		return "dev-" + Commit + ":"
	}
	return Version + ":"
}
