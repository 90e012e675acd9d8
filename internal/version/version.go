// Package version holds build metadata stamped by the linker, for example:
//
//	go build -ldflags "-X github.com/dkoosis/ut/internal/version.Version=v1.2.0"
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String renders the metadata on one line, as printed by --version.
func String() string {
	return fmt.Sprintf("ut %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
