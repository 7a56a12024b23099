// Package version holds build metadata set with -ldflags -X at link time.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata on one line.
func String() string {
	return fmt.Sprintf("solrdex %s (commit %s, built %s)", Version, Commit, Date)
}
