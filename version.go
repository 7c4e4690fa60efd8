package pocsag

import "fmt"

// Version information, set at build time via -ldflags.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionString returns a short formatted version string.
func VersionString() string {
	return fmt.Sprintf("pisag v%s", Version)
}

// FullVersionInfo returns detailed version information for --version output.
func FullVersionInfo() string {
	return fmt.Sprintf(`pisag v%s
POCSAG encoder and transmission pipeline
Build Time: %s
Git Commit: %s
`, Version, BuildTime, GitCommit)
}
