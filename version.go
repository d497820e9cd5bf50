package rangka

import (
	"fmt"
	"runtime"
)

// Build metadata. Version is a fallback for source builds; release binaries
// override all three via -ldflags, e.g.
//
//	-X github.com/ambiyansyah-risyal/rangka.Version=v1.2.0
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns a one-line description of the build.
func GetVersion() string {
	return fmt.Sprintf("rangka %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
