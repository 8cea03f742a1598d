package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the publisher release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/publisher/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, set alongside Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Resolved returns Version, falling back to the main module version recorded
// by the Go toolchain when no ldflags were given (go install ...@v1.2.3).
func Resolved() string {
	if Version != "unknown" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("publisher %s (commit %s, built %s)", Resolved(), GitCommit, BuildTime)
}
